package tui

import (
	"github.com/rs/zerolog/log"

	"github.com/xonecas/ted/internal/term"
)

// moveCursor moves one step. Left and right wrap across row boundaries;
// up and down stop at the first row and at the empty line past the last.
func (s *Session) moveCursor(dir term.KeyKind) {
	row := s.doc.Row(s.cy)
	switch dir {
	case term.KeyLeft:
		if s.cx > 0 {
			s.cx--
		} else if s.cy > 0 {
			s.cy--
			s.cx = s.doc.Row(s.cy).Len()
		}
	case term.KeyRight:
		if row != nil && s.cx < row.Len() {
			s.cx++
		} else if row != nil && s.cx == row.Len() {
			s.cy++
			s.cx = 0
		}
	case term.KeyUp:
		if s.cy > 0 {
			s.cy--
		}
	case term.KeyDown:
		if s.cy < s.doc.Len() {
			s.cy++
		}
	}
	s.clampColumn()
}

// page jumps to the top or bottom edge of the screen, then moves a full
// screen further.
func (s *Session) page(dir term.KeyKind) {
	step := term.KeyUp
	if dir == term.KeyPageUp {
		s.cy = s.view.RowOff
	} else {
		step = term.KeyDown
		s.cy = min(s.view.RowOff+s.view.Rows-1, s.doc.Len())
	}
	for range s.view.Rows {
		s.moveCursor(step)
	}
}

func (s *Session) clampColumn() {
	n := 0
	if row := s.doc.Row(s.cy); row != nil {
		n = row.Len()
	}
	if s.cx > n {
		s.cx = n
	}
}

// insertChar types c at the cursor. On the line past the end a new row is
// appended first.
func (s *Session) insertChar(c byte) {
	if s.cy == s.doc.Len() {
		s.doc.InsertRow(s.doc.Len(), nil)
	}
	s.doc.InsertChar(s.cy, s.cx, c)
	s.cx++
}

func (s *Session) insertNewline() {
	if s.cx == 0 {
		s.doc.InsertRow(s.cy, nil)
	} else {
		s.doc.SplitRow(s.cy, s.cx)
	}
	s.cy++
	s.cx = 0
}

// deleteChar removes the character left of the cursor, joining with the
// previous row at column 0.
func (s *Session) deleteChar() {
	if s.cy == s.doc.Len() || (s.cx == 0 && s.cy == 0) {
		return
	}
	if s.cx > 0 {
		s.doc.DeleteChar(s.cy, s.cx-1)
		s.cx--
		return
	}
	s.cx = s.doc.Row(s.cy - 1).Len()
	s.doc.JoinWithPrevious(s.cy)
	s.cy--
}

// quit asks for confirmation while the document has unsaved changes. The
// counter only ever counts down.
func (s *Session) quit() error {
	if s.doc.Dirty() > 0 && s.quitTimes > 0 {
		s.setStatus("WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", s.quitTimes)
		s.quitTimes--
		return nil
	}
	log.Info().Str("file", s.doc.Filename()).Int("dirty", s.doc.Dirty()).Msg("Quit")
	return errQuit
}

// save writes the document, asking for a file name first if it has none.
// Write failures end up on the message bar.
func (s *Session) save() error {
	if s.doc.Filename() == "" {
		name, err := s.prompt("Save as: %s (ESC to cancel)", nil)
		if err != nil {
			return err
		}
		if name == "" {
			s.setStatus("Save aborted")
			return nil
		}
		s.doc.SetFilename(name)
		s.doc.SetSyntax(s.syntaxes.Select(name))
	}

	n, err := s.doc.Save()
	if err != nil {
		log.Error().Err(err).Str("file", s.doc.Filename()).Msg("Save failed")
		s.setStatus("Can't save! I/O error: %s", err)
		return nil
	}
	log.Info().Str("file", s.doc.Filename()).Int("bytes", n).Msg("Saved file")
	s.setStatus("%d bytes written to disk", n)
	return nil
}
