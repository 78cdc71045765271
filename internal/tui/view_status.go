package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// drawStatusBar writes the inverse-video bar: file, line count, cursor and
// modified flag on the left; filetype and line position on the right.
func (s *Session) drawStatusBar(b *strings.Builder) {
	name := s.doc.Filename()
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if s.doc.Dirty() > 0 {
		modified = "(modified)"
	}
	left := fmt.Sprintf("%.20s - %d lines %d:%d %s", name, s.doc.Len(), s.cy, s.cx, modified)

	ft := "no ft"
	if syn := s.doc.Syntax(); syn != nil {
		ft = syn.FileType
	}
	right := fmt.Sprintf("%s | %d/%d", ft, s.cy+1, s.doc.Len())

	cols := s.view.Cols
	line := left
	if gap := cols - len(left) - len(right); gap >= 0 {
		line += strings.Repeat(" ", gap) + right
	} else if len(left) < cols {
		line += strings.Repeat(" ", cols-len(left))
	}

	b.WriteString("\x1b[7m")
	b.WriteString(ansi.Truncate(line, cols, ""))
	b.WriteString("\x1b[m\r\n")
}

func (s *Session) drawMessageBar(b *strings.Builder) {
	b.WriteString("\x1b[K")
	if s.messageVisible() {
		b.WriteString(ansi.Truncate(s.status, s.view.Cols, ""))
	}
}
