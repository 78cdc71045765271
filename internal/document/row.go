package document

import (
	"github.com/xonecas/ted/internal/constants"
	"github.com/xonecas/ted/internal/highlight"
)

// Row is one line of a Document. render and hl are derived from chars and
// are never edited directly, except for the temporary search overlay.
type Row struct {
	index  int
	chars  []byte
	render string
	hl     []highlight.Class

	openComment bool // block comment still open at end of row
	hlIn        bool // open-comment state hl was computed with
	hlValid     bool
}

func newRow(at int, text []byte) *Row {
	r := &Row{index: at, chars: append([]byte(nil), text...)}
	r.update()
	return r
}

// update re-derives render after chars changed and invalidates hl.
func (r *Row) update() {
	r.render = expandTabs(r.chars)
	r.hlValid = false
}

// Index is the row's position in its Document.
func (r *Row) Index() int { return r.index }

// Len is the number of characters in the row.
func (r *Row) Len() int { return len(r.chars) }

// Text returns a copy of the row's characters.
func (r *Row) Text() string { return string(r.chars) }

// Render returns the row with tabs expanded.
func (r *Row) Render() string { return r.render }

// Highlight returns one class per character of Text.
func (r *Row) Highlight() []highlight.Class { return r.hl }

// OpenComment reports whether a block comment is still open at the end of
// the row.
func (r *Row) OpenComment() bool { return r.openComment }

func (r *Row) CxToRx(cx int) int { return CxToRx(r.chars, cx) }
func (r *Row) RxToCx(rx int) int { return RxToCx(r.chars, rx) }

// RenderHighlight expands Highlight to render space: the cells a tab expands
// to all carry the tab's class.
func (r *Row) RenderHighlight() []highlight.Class {
	out := make([]highlight.Class, 0, len(r.render))
	for i, c := range r.chars {
		class := highlight.Normal
		if i < len(r.hl) {
			class = r.hl[i]
		}
		out = append(out, class)
		if c == '\t' {
			for len(out)%constants.TabStop != 0 {
				out = append(out, class)
			}
		}
	}
	return out
}

// OverlayRender marks the render-space span [from, to) with class and returns
// a copy of the highlight it replaced, for RestoreHighlight.
func (r *Row) OverlayRender(from, to int, class highlight.Class) []highlight.Class {
	saved := append([]highlight.Class(nil), r.hl...)
	if to <= from {
		return saved
	}
	start := r.RxToCx(from)
	end := r.RxToCx(to-1) + 1
	if end > len(r.hl) {
		end = len(r.hl)
	}
	for i := start; i < end; i++ {
		r.hl[i] = class
	}
	return saved
}

// RestoreHighlight puts back a highlight returned by OverlayRender. It is
// ignored if the row changed length since.
func (r *Row) RestoreHighlight(saved []highlight.Class) {
	if len(saved) != len(r.hl) {
		return
	}
	copy(r.hl, saved)
}
