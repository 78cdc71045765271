package tui

// Viewport is the visible window into the document: RowOff is the first
// visible row and ColOff the first visible render column.
type Viewport struct {
	RowOff, ColOff int
	Rows, Cols     int
}

// Fit scrolls the viewport so that row cy and render column rx are on
// screen. Vertical checks run before horizontal ones.
func (v *Viewport) Fit(cy, rx int) {
	if cy < v.RowOff {
		v.RowOff = cy
	}
	if cy >= v.RowOff+v.Rows {
		v.RowOff = cy - v.Rows + 1
	}
	if rx < v.ColOff {
		v.ColOff = rx
	}
	if rx >= v.ColOff+v.Cols {
		v.ColOff = rx - v.Cols + 1
	}
}

// scroll derives rx from the cursor and fits the viewport around it.
func (s *Session) scroll() {
	s.rx = 0
	if row := s.doc.Row(s.cy); row != nil {
		s.rx = row.CxToRx(s.cx)
	}
	s.view.Fit(s.cy, s.rx)
}
