package tui

import (
	"strings"

	"github.com/xonecas/ted/internal/document"
	"github.com/xonecas/ted/internal/highlight"
	"github.com/xonecas/ted/internal/term"
)

// searchSession is the state of one incremental search, from Ctrl-F until
// the prompt closes.
type searchSession struct {
	lastMatch int // row of the current match, -1 for none
	dir       int // +1 forward, -1 backward

	savedRow int
	savedHL  []highlight.Class // highlight of savedRow before the match overlay
}

func newSearchSession() *searchSession {
	return &searchSession{lastMatch: -1, dir: 1, savedRow: -1}
}

// restore removes the match overlay, if any.
func (ss *searchSession) restore(doc *document.Document) {
	if ss.savedHL == nil {
		return
	}
	if row := doc.Row(ss.savedRow); row != nil {
		row.RestoreHighlight(ss.savedHL)
	}
	ss.savedRow, ss.savedHL = -1, nil
}

// onKey runs after every prompt key. Arrows step between matches; any
// other key restarts the search from the top of the document.
func (ss *searchSession) onKey(s *Session, query string, key term.Key) {
	ss.restore(s.doc)

	switch key.Kind {
	case term.KeyEnter, term.KeyEscape:
		ss.lastMatch, ss.dir = -1, 1
		return
	case term.KeyRight, term.KeyDown:
		ss.dir = 1
	case term.KeyLeft, term.KeyUp:
		ss.dir = -1
	default:
		ss.lastMatch, ss.dir = -1, 1
	}
	if query == "" {
		return
	}
	if ss.lastMatch == -1 {
		ss.dir = 1
	}

	n := s.doc.Len()
	current := ss.lastMatch
	for range n {
		current += ss.dir
		switch current {
		case -1:
			current = n - 1
		case n:
			current = 0
		}

		row := s.doc.Row(current)
		at := strings.Index(row.Render(), query)
		if at < 0 {
			continue
		}
		ss.lastMatch = current
		s.cy = current
		s.cx = row.RxToCx(at)
		// Past the end, so the next scroll puts the match at the top.
		s.view.RowOff = n
		ss.savedRow = current
		ss.savedHL = row.OverlayRender(at, at+len(query), highlight.Match)
		return
	}
}

// find runs an incremental search. Escape puts the cursor and the viewport
// back where they were.
func (s *Session) find() error {
	cx, cy := s.cx, s.cy
	view := s.view

	ss := newSearchSession()
	query, err := s.prompt("Search: %s (Use ESC/Arrows/Enter)", func(input string, key term.Key) {
		ss.onKey(s, input, key)
	})
	if err != nil {
		return err
	}
	if query == "" {
		s.cx, s.cy = cx, cy
		s.view = view
	}
	return nil
}
