package tui

import "github.com/rs/zerolog/log"

// checkResize polls the window size. It reports whether the text area
// changed.
func (s *Session) checkResize() bool {
	if s.windowSize == nil {
		return false
	}
	rows, cols, err := s.windowSize()
	if err != nil {
		log.Debug().Err(err).Msg("Window size unavailable")
		return false
	}
	return s.resize(rows-2, cols)
}

// resize sets the text area size, keeping the cursor on screen.
func (s *Session) resize(rows, cols int) bool {
	rows, cols = max(rows, 1), max(cols, 1)
	if rows == s.view.Rows && cols == s.view.Cols {
		return false
	}
	s.view.Rows, s.view.Cols = rows, cols
	log.Debug().Int("rows", rows).Int("cols", cols).Msg("Window resized")
	return true
}
