package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/xonecas/ted/internal/constants"
	"github.com/xonecas/ted/internal/document"
)

// refresh draws a full frame and writes it in one call.
func (s *Session) refresh() error {
	s.scroll()

	var b strings.Builder
	b.WriteString("\x1b[?25l\x1b[H")
	s.drawRows(&b)
	s.drawStatusBar(&b)
	s.drawMessageBar(&b)
	fmt.Fprintf(&b, "\x1b[%d;%dH", s.cy-s.view.RowOff+1, s.rx-s.view.ColOff+1)
	b.WriteString("\x1b[?25h")

	s.msgShown = s.messageVisible()
	_, err := io.WriteString(s.out, b.String())
	return err
}

func (s *Session) drawRows(b *strings.Builder) {
	for y := range s.view.Rows {
		row := s.doc.Row(y + s.view.RowOff)
		switch {
		case row != nil:
			drawRow(b, row, s.view.ColOff, s.view.Cols)
		case s.doc.Len() == 0 && y == s.view.Rows/3:
			drawWelcome(b, s.view.Cols)
		default:
			b.WriteByte('~')
		}
		b.WriteString("\x1b[K\r\n")
	}
}

func drawWelcome(b *strings.Builder, cols int) {
	welcome := fmt.Sprintf("%s editor -- version %s", constants.Name, constants.Version)
	if len(welcome) > cols {
		welcome = welcome[:cols]
	}
	padding := (cols - len(welcome)) / 2
	if padding > 0 {
		b.WriteByte('~')
		padding--
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(welcome)
}

// drawRow writes the visible part of row. A color code is only written when
// the class color changes from the previous cell. Control characters show
// in inverse video as ^-notation letters.
func drawRow(b *strings.Builder, row *document.Row, coloff, cols int) {
	render := row.Render()
	hl := row.RenderHighlight()
	start := min(coloff, len(render))
	end := min(coloff+cols, len(render))

	current := -1
	for i := start; i < end; i++ {
		c := render[i]
		if c < 32 || c == 127 {
			sym := byte('?')
			if c <= 26 {
				sym = '@' + c
			}
			b.WriteString("\x1b[7m")
			b.WriteByte(sym)
			b.WriteString("\x1b[m")
			if current != -1 {
				fmt.Fprintf(b, "\x1b[%dm", current)
			}
			continue
		}
		if color := hl[i].Color(); color != current {
			fmt.Fprintf(b, "\x1b[%dm", color)
			current = color
		}
		b.WriteByte(c)
	}
	b.WriteString("\x1b[39m")
}
