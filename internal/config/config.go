// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/xonecas/ted/internal/constants"
	"github.com/xonecas/ted/internal/highlight"
)

// Config is the root configuration structure.
type Config struct {
	Editor  EditorConfig   `toml:"editor"`
	Log     LogConfig      `toml:"log"`
	History HistoryConfig  `toml:"history"`
	Syntax  []SyntaxConfig `toml:"syntax"`
}

// EditorConfig holds session behavior settings.
type EditorConfig struct {
	// QuitTimes is how many warnings a dirty document gets before Ctrl-Q
	// exits. Zero means the default.
	QuitTimes int `toml:"quit_times"`
	// MessageTimeout is how long status messages stay visible, in seconds.
	MessageTimeout int `toml:"message_timeout"`
}

// QuitTimesOrDefault returns the configured warning count or the default if unset.
func (e EditorConfig) QuitTimesOrDefault() int {
	if e.QuitTimes <= 0 {
		return constants.QuitTimes
	}
	return e.QuitTimes
}

// MessageTimeoutOrDefault returns the configured message timeout or five seconds if unset.
func (e EditorConfig) MessageTimeoutOrDefault() time.Duration {
	if e.MessageTimeout <= 0 {
		return constants.MessageTimeout
	}
	return time.Duration(e.MessageTimeout) * time.Second
}

// LogConfig holds logger settings. The log never goes to the terminal.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LevelOrDefault parses the configured level, falling back to info.
func (l LogConfig) LevelOrDefault() zerolog.Level {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return level
}

// HistoryConfig holds cursor position history settings.
type HistoryConfig struct {
	Disabled bool `toml:"disabled"`
	TTLDays  int  `toml:"ttl_days"`
}

// TTLOrDefault returns how long unused positions are kept.
func (h HistoryConfig) TTLOrDefault() time.Duration {
	if h.TTLDays <= 0 {
		return constants.PositionTTL
	}
	return time.Duration(h.TTLDays) * 24 * time.Hour
}

// SyntaxConfig is a user-defined highlighting rule set.
type SyntaxConfig struct {
	FileType          string   `toml:"filetype"`
	Extensions        []string `toml:"extensions"`
	Keywords          []string `toml:"keywords"`
	Types             []string `toml:"types"`
	LineComment       string   `toml:"line_comment"`
	BlockCommentStart string   `toml:"block_comment_start"`
	BlockCommentEnd   string   `toml:"block_comment_end"`
	HighlightNumbers  bool     `toml:"highlight_numbers"`
	HighlightStrings  bool     `toml:"highlight_strings"`
}

// Syntax converts the entry into a highlighting rule set.
func (s SyntaxConfig) Syntax() highlight.Syntax {
	return highlight.Syntax{
		FileType:          s.FileType,
		Extensions:        s.Extensions,
		Keywords:          s.Keywords,
		Types:             s.Types,
		LineComment:       s.LineComment,
		BlockCommentStart: s.BlockCommentStart,
		BlockCommentEnd:   s.BlockCommentEnd,
		Numbers:           s.HighlightNumbers,
		Strings:           s.HighlightStrings,
	}
}

// Syntaxes returns the user rule sets in file order.
func (c *Config) Syntaxes() []highlight.Syntax {
	out := make([]highlight.Syntax, 0, len(c.Syntax))
	for _, s := range c.Syntax {
		out = append(out, s.Syntax())
	}
	return out
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		_, err := toml.DecodeFile(path, cfg)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Editor.QuitTimes < 0 {
		errs = append(errs, fmt.Errorf("editor.quit_times=%d must not be negative", c.Editor.QuitTimes))
	}
	if c.Editor.MessageTimeout < 0 {
		errs = append(errs, fmt.Errorf("editor.message_timeout=%d must not be negative", c.Editor.MessageTimeout))
	}
	if c.History.TTLDays < 0 {
		errs = append(errs, fmt.Errorf("history.ttl_days=%d must not be negative", c.History.TTLDays))
	}
	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
		}
	}

	for i, s := range c.Syntax {
		errs = append(errs, validateSyntax(i, s)...)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func validateSyntax(i int, s SyntaxConfig) []error {
	var errs []error
	if s.FileType == "" {
		errs = append(errs, fmt.Errorf("syntax[%d].filetype is required", i))
	}
	if len(s.Extensions) == 0 {
		errs = append(errs, fmt.Errorf("syntax[%d].extensions must list at least one extension", i))
	}
	for _, ext := range s.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("syntax[%d].extensions: %q must start with a dot", i, ext))
		}
	}
	if (s.BlockCommentStart == "") != (s.BlockCommentEnd == "") {
		errs = append(errs, fmt.Errorf("syntax[%d]: block_comment_start and block_comment_end must be set together", i))
	}
	return errs
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"TED_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
		{"TED_LOG_FILE", func(v string) {
			if v != "" {
				cfg.Log.File = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the Ted data directory (~/.config/ted).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ted"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
