// Package highlight classifies the characters of a line for syntax coloring.
// It is a single left-to-right lexer pass; the only state that crosses line
// boundaries is whether a block comment is still open at the end of a line.
package highlight

import "bytes"

// Class is the highlight class of one character.
type Class uint8

const (
	Normal Class = iota
	Comment
	BlockComment
	Keyword1
	Keyword2
	String
	Number
	Match
)

// Color returns the ANSI foreground color code for the class.
func (c Class) Color() int {
	switch c {
	case Comment, BlockComment:
		return 36 // cyan
	case Keyword1:
		return 33 // yellow
	case Keyword2:
		return 32 // green
	case String:
		return 35 // magenta
	case Number:
		return 31 // red
	case Match:
		return 34 // blue
	default:
		return 37 // white
	}
}

// IsSeparator reports whether c ends a keyword, number or identifier token.
func IsSeparator(c byte) bool {
	switch c {
	case 0, ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return bytes.IndexByte([]byte(",.()+-/*=~%<>[];"), c) >= 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Line highlights text using syn. inComment is the open-comment state carried
// from the previous line. It returns one class per byte of text and whether a
// block comment is still open at the end of the line. A nil syn classifies
// everything as Normal.
func Line(text []byte, syn *Syntax, inComment bool) ([]Class, bool) {
	hl := make([]Class, len(text))
	if syn == nil {
		return hl, false
	}

	scs := []byte(syn.LineComment)
	mcs := []byte(syn.BlockCommentStart)
	mce := []byte(syn.BlockCommentEnd)
	hasBlock := len(mcs) > 0 && len(mce) > 0
	if !hasBlock {
		inComment = false
	}

	prevSep := true
	var inString byte

	i := 0
	for i < len(text) {
		c := text[i]
		prevHL := Normal
		if i > 0 {
			prevHL = hl[i-1]
		}

		// Line comment: the rest of the row.
		if len(scs) > 0 && inString == 0 && !inComment && bytes.HasPrefix(text[i:], scs) {
			fill(hl[i:], Comment)
			break
		}

		if hasBlock && inString == 0 {
			if inComment {
				hl[i] = BlockComment
				if bytes.HasPrefix(text[i:], mce) {
					fill(hl[i:i+len(mce)], BlockComment)
					i += len(mce)
					inComment = false
					prevSep = true
					continue
				}
				i++
				continue
			}
			if bytes.HasPrefix(text[i:], mcs) {
				fill(hl[i:i+len(mcs)], BlockComment)
				i += len(mcs)
				inComment = true
				continue
			}
		}

		if syn.Strings {
			if inString != 0 {
				hl[i] = String
				if c == '\\' && i+1 < len(text) {
					hl[i+1] = String
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				hl[i] = String
				i++
				continue
			}
		}

		if syn.Numbers {
			if (isDigit(c) && (prevSep || prevHL == Number)) || (c == '.' && prevHL == Number) {
				hl[i] = Number
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if n, class := matchKeyword(text[i:], syn); n > 0 {
				fill(hl[i:i+n], class)
				i += n
				prevSep = false
				continue
			}
		}

		prevSep = IsSeparator(c)
		i++
	}

	return hl, inComment
}

// matchKeyword returns the length and class of the keyword at the start of
// rest, or 0 if none matches. Primary keywords are tried before types.
func matchKeyword(rest []byte, syn *Syntax) (int, Class) {
	for _, group := range []struct {
		words []string
		class Class
	}{
		{syn.Keywords, Keyword1},
		{syn.Types, Keyword2},
	} {
		for _, kw := range group.words {
			n := len(kw)
			if n == 0 || n > len(rest) || string(rest[:n]) != kw {
				continue
			}
			if n == len(rest) || IsSeparator(rest[n]) {
				return n, group.class
			}
		}
	}
	return 0, Normal
}

func fill(hl []Class, c Class) {
	for i := range hl {
		hl[i] = c
	}
}
