package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/ted/internal/config"
	"github.com/xonecas/ted/internal/highlight"
	"github.com/xonecas/ted/internal/store"
	"github.com/xonecas/ted/internal/term"
	"github.com/xonecas/ted/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ted: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 1 {
		return errors.New("usage: ted [file]")
	}

	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	cfg, err := config.Load(filepath.Join(dataDir, "config.toml"))
	if err != nil {
		return err
	}

	closeLog := setupLogging(cfg.Log, dataDir)
	defer closeLog()

	opts := tui.Options{
		QuitTimes:      cfg.Editor.QuitTimesOrDefault(),
		MessageTimeout: cfg.Editor.MessageTimeoutOrDefault(),
		Syntaxes:       highlight.NewDatabase(cfg.Syntaxes()...),
	}

	if !cfg.History.Disabled {
		positions, err := store.Open(filepath.Join(dataDir, "history.db"), cfg.History.TTLOrDefault())
		if err != nil {
			log.Warn().Err(err).Msg("Cursor history unavailable")
		} else {
			defer positions.Close()
			opts.Positions = positions
		}
	}

	t := term.New(os.Stdin, os.Stdout)
	if err := t.EnableRawMode(); err != nil {
		return err
	}
	defer t.Restore()

	rows, cols, err := t.Size()
	if err != nil {
		return fmt.Errorf("window size: %w", err)
	}
	opts.WindowSize = t.PollSize

	s := tui.New(term.NewDecoder(t), t, rows-2, cols, opts)
	if len(args) == 1 {
		if err := s.Open(args[0]); err != nil {
			return err
		}
	}
	return s.Run()
}

// setupLogging points the global logger at a file, since the terminal
// belongs to the editor. Logging is disabled if the file cannot be opened.
func setupLogging(cfg config.LogConfig, dataDir string) func() {
	zerolog.SetGlobalLevel(cfg.LevelOrDefault())

	path := cfg.File
	if path == "" {
		path = filepath.Join(dataDir, "ted.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Logger = zerolog.Nop()
		return func() {}
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { f.Close() }
}
