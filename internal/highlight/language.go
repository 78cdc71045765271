package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/rs/zerolog/log"
)

// Syntax is a highlight rule set for one file type.
type Syntax struct {
	FileType   string   // shown on the status bar
	Aliases    []string // extra language names this rule set answers to
	Extensions []string // e.g. ".go"; matched against the file name suffix

	Keywords []string // primary keywords (Keyword1)
	Types    []string // type names and constants (Keyword2)

	LineComment       string
	BlockCommentStart string
	BlockCommentEnd   string

	Numbers bool // highlight numeric literals
	Strings bool // highlight quoted strings
}

var builtin = []Syntax{
	{
		FileType:   "c",
		Aliases:    []string{"c++", "cpp", "objective-c"},
		Extensions: []string{".c", ".h", ".cpp", ".hpp", ".cc"},
		Keywords: []string{
			"auto", "break", "case", "continue", "default", "do", "else", "enum",
			"extern", "for", "goto", "if", "register", "return", "sizeof", "static",
			"struct", "switch", "typedef", "union", "volatile", "while", "NULL",
			"alignas", "alignof", "and", "and_eq", "asm", "bitand", "bitor", "class",
			"compl", "constexpr", "const_cast", "deltype", "delete", "dynamic_cast",
			"explicit", "export", "false", "friend", "inline", "mutable", "namespace",
			"new", "noexcept", "not", "not_eq", "nullptr", "operator", "or", "or_eq",
			"private", "protected", "public", "reinterpret_cast", "static_assert",
			"static_cast", "template", "this", "thread_local", "throw", "true", "try",
			"typeid", "typename", "virtual", "xor", "xor_eq",
		},
		Types: []string{
			"int", "long", "double", "float", "char", "unsigned", "signed",
			"void", "short", "const", "bool",
		},
		LineComment:       "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Numbers:           true,
		Strings:           true,
	},
	{
		FileType:   "go",
		Aliases:    []string{"golang"},
		Extensions: []string{".go"},
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if",
			"import", "interface", "map", "package", "range", "return",
			"select", "struct", "switch", "type", "var",
			"append", "cap", "close", "copy", "delete", "len", "make",
			"new", "panic", "print", "println", "recover",
		},
		Types: []string{
			"bool", "byte", "complex64", "complex128", "error",
			"float32", "float64", "int", "int8", "int16", "int32",
			"int64", "rune", "string", "uint", "uint8", "uint16",
			"uint32", "uint64", "uintptr", "any",
			"true", "false", "nil", "iota",
		},
		LineComment:       "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Numbers:           true,
		Strings:           true,
	},
	{
		FileType:   "python",
		Aliases:    []string{"py", "python3"},
		Extensions: []string{".py"},
		Keywords: []string{
			"and", "as", "assert", "async", "await", "break", "class",
			"continue", "def", "del", "elif", "else", "except", "finally",
			"for", "from", "global", "if", "import", "in", "is", "lambda",
			"nonlocal", "not", "or", "pass", "raise", "return", "try",
			"while", "with", "yield",
			"print", "len", "input", "open", "super", "self",
			"isinstance", "issubclass", "hasattr", "getattr", "setattr",
		},
		Types: []string{
			"True", "False", "None",
			"int", "float", "str", "bool", "list", "dict", "set",
			"tuple", "bytes", "type", "object", "range",
		},
		LineComment: "#",
		Numbers:     true,
		Strings:     true,
	},
}

// Database is the syntax rule table, keyed by file extension.
type Database struct {
	syntaxes []*Syntax
}

// NewDatabase returns the built-in rule sets preceded by extra, so a user
// rule set wins over a built-in one claiming the same extension.
func NewDatabase(extra ...Syntax) *Database {
	db := &Database{}
	for i := range extra {
		s := extra[i]
		db.syntaxes = append(db.syntaxes, &s)
	}
	for i := range builtin {
		s := builtin[i]
		db.syntaxes = append(db.syntaxes, &s)
	}
	return db
}

// Select returns the rule set for filename, or nil when highlighting should
// be disabled. Extensions are matched first; otherwise chroma's filename
// registry names the language, and a rule set answering to that name is used.
func (db *Database) Select(filename string) *Syntax {
	if filename == "" {
		return nil
	}
	for _, s := range db.syntaxes {
		for _, ext := range s.Extensions {
			if strings.HasSuffix(filename, ext) {
				return s
			}
		}
	}

	lex := lexers.Match(filepath.Base(filename))
	if lex == nil {
		return nil
	}
	cfg := lex.Config()
	names := append([]string{cfg.Name}, cfg.Aliases...)
	for _, name := range names {
		if s := db.byName(name); s != nil {
			log.Debug().Str("file", filename).Str("lexer", cfg.Name).Str("filetype", s.FileType).Msg("syntax selected by lexer match")
			return s
		}
	}
	return nil
}

func (db *Database) byName(name string) *Syntax {
	name = strings.ToLower(name)
	for _, s := range db.syntaxes {
		if strings.ToLower(s.FileType) == name {
			return s
		}
		for _, a := range s.Aliases {
			if strings.ToLower(a) == name {
				return s
			}
		}
	}
	return nil
}
