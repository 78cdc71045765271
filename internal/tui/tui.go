// Package tui is the editor session: it owns the document, the cursor and
// the viewport, turns keys into edits, and draws full frames to the terminal.
package tui

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/ted/internal/constants"
	"github.com/xonecas/ted/internal/document"
	"github.com/xonecas/ted/internal/highlight"
	"github.com/xonecas/ted/internal/term"
)

// KeyReader is the source of decoded keys. A KeyNone key means the read
// timed out with nothing typed.
type KeyReader interface {
	ReadKey() (term.Key, error)
}

// PositionStore remembers where the cursor was when a file was last closed.
type PositionStore interface {
	Position(path string) (row, col int, ok bool)
	SetPosition(path string, row, col int)
}

// Options tune a Session. Zero values select the defaults.
type Options struct {
	QuitTimes      int
	MessageTimeout time.Duration
	Syntaxes       *highlight.Database
	Positions      PositionStore
	Now            func() time.Time

	// WindowSize reports the terminal size. It is polled while idle; two
	// lines are kept for the status and message bars.
	WindowSize func() (rows, cols int, err error)
}

// errQuit ends Run without an error.
var errQuit = errors.New("quit")

// Session is one editing session over one document.
type Session struct {
	doc *document.Document

	cx, cy int // cursor in text space
	rx     int // cursor column in render space, derived on every refresh
	view   Viewport

	keys KeyReader
	out  io.Writer

	syntaxes   *highlight.Database
	positions  PositionStore
	now        func() time.Time
	msgTimeout time.Duration
	windowSize func() (rows, cols int, err error)

	status     string
	statusTime time.Time
	msgShown   bool // message bar visibility in the last frame

	quitTimes int
}

// New returns a session over an empty document. rows and cols are the size
// of the text area, without the status and message bars.
func New(keys KeyReader, out io.Writer, rows, cols int, opts Options) *Session {
	s := &Session{
		doc:        document.New(),
		keys:       keys,
		out:        out,
		view:       Viewport{Rows: max(rows, 1), Cols: max(cols, 1)},
		syntaxes:   opts.Syntaxes,
		positions:  opts.Positions,
		now:        opts.Now,
		msgTimeout: opts.MessageTimeout,
		quitTimes:  opts.QuitTimes,
		windowSize: opts.WindowSize,
	}
	if s.syntaxes == nil {
		s.syntaxes = highlight.NewDatabase()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.msgTimeout <= 0 {
		s.msgTimeout = constants.MessageTimeout
	}
	if s.quitTimes <= 0 {
		s.quitTimes = constants.QuitTimes
	}
	return s
}

// Document exposes the edited document.
func (s *Session) Document() *document.Document { return s.doc }

// Cursor returns the cursor position in text space.
func (s *Session) Cursor() (row, col int) { return s.cy, s.cx }

// Open loads path into the session, selects its syntax and puts the cursor
// where it was left the last time the file was closed.
func (s *Session) Open(path string) error {
	if err := s.doc.Open(path); err != nil {
		return err
	}
	s.doc.SetSyntax(s.syntaxes.Select(path))
	s.restorePosition()

	ev := log.Info().Str("file", path).Int("rows", s.doc.Len())
	if syn := s.doc.Syntax(); syn != nil {
		ev = ev.Str("filetype", syn.FileType)
	}
	ev.Msg("Opened file")
	return nil
}

// Run processes keys until the user quits or the key source or output
// fails. A confirmed quit clears the screen and returns nil.
func (s *Session) Run() error {
	s.setStatus(constants.HelpMessage)
	if err := s.refresh(); err != nil {
		return err
	}
	for {
		err := s.step()
		if errors.Is(err, errQuit) {
			s.rememberPosition()
			_, err = io.WriteString(s.out, "\x1b[2J\x1b[H")
			return err
		}
		if err != nil {
			return err
		}
	}
}

// step handles one key. An idle tick only redraws when the window was
// resized or the message bar has to disappear.
func (s *Session) step() error {
	key, err := s.keys.ReadKey()
	if err != nil {
		return fmt.Errorf("read key: %w", err)
	}
	if key.Kind == term.KeyNone {
		if s.checkResize() || s.messageVisible() != s.msgShown {
			return s.refresh()
		}
		return nil
	}
	if err := s.processKey(key); err != nil {
		return err
	}
	return s.refresh()
}

// readKey blocks until a key other than KeyNone arrives.
func (s *Session) readKey() (term.Key, error) {
	for {
		key, err := s.keys.ReadKey()
		if err != nil {
			return term.Key{}, fmt.Errorf("read key: %w", err)
		}
		if key.Kind != term.KeyNone {
			return key, nil
		}
	}
}

func (s *Session) setStatus(format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
	s.statusTime = s.now()
}

func (s *Session) messageVisible() bool {
	return s.status != "" && s.now().Sub(s.statusTime) < s.msgTimeout
}

func (s *Session) restorePosition() {
	if s.positions == nil || s.doc.Filename() == "" {
		return
	}
	row, col, ok := s.positions.Position(positionKey(s.doc.Filename()))
	if !ok {
		return
	}
	s.cy = min(max(row, 0), s.doc.Len())
	s.cx = max(col, 0)
	s.clampColumn()
}

func (s *Session) rememberPosition() {
	if s.positions == nil || s.doc.Filename() == "" {
		return
	}
	s.positions.SetPosition(positionKey(s.doc.Filename()), s.cy, s.cx)
}

func positionKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
