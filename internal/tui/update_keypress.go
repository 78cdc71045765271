package tui

import (
	"fmt"

	"github.com/xonecas/ted/internal/term"
)

// processKey applies one key to the session. Every key kind is handled
// here; errQuit reports a confirmed quit.
func (s *Session) processKey(key term.Key) error {
	switch key.Kind {
	case term.KeyNone, term.KeyEscape, term.KeyCtrlL:
		// Nothing to do; the caller redraws.
	case term.KeyCtrlQ:
		return s.quit()
	case term.KeyCtrlS:
		return s.save()
	case term.KeyCtrlF:
		return s.find()
	case term.KeyEnter:
		s.insertNewline()
	case term.KeyBackspace:
		s.deleteChar()
	case term.KeyDelete:
		s.moveCursor(term.KeyRight)
		s.deleteChar()
	case term.KeyHome:
		s.cx = 0
	case term.KeyEnd:
		if row := s.doc.Row(s.cy); row != nil {
			s.cx = row.Len()
		}
	case term.KeyPageUp, term.KeyPageDown:
		s.page(key.Kind)
	case term.KeyUp, term.KeyDown, term.KeyLeft, term.KeyRight:
		s.moveCursor(key.Kind)
	case term.KeyChar:
		s.insertChar(key.Char)
	default:
		return fmt.Errorf("unhandled key %s", key.Kind)
	}
	return nil
}
