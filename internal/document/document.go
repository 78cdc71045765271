// Package document holds the text being edited: an ordered, index-stable
// sequence of rows, each with its tab-expanded render form and highlight.
// Every mutation re-derives the render form of the rows it touched and
// re-highlights downward for as long as the block-comment state carried
// into a row differs from the state its cached highlight was computed with.
package document

import (
	"bytes"

	"github.com/xonecas/ted/internal/highlight"
)

// Document is the edited text plus its file identity.
type Document struct {
	rows     []*Row
	dirty    int
	filename string
	syntax   *highlight.Syntax
}

// New returns an empty document with no file name.
func New() *Document {
	return &Document{}
}

// Len is the number of rows.
func (d *Document) Len() int { return len(d.rows) }

// Row returns the row at index at, or nil if there is none.
func (d *Document) Row(at int) *Row {
	if at < 0 || at >= len(d.rows) {
		return nil
	}
	return d.rows[at]
}

// Dirty counts mutations since the document was loaded or last saved.
func (d *Document) Dirty() int { return d.dirty }

func (d *Document) Filename() string { return d.filename }

func (d *Document) SetFilename(name string) { d.filename = name }

func (d *Document) Syntax() *highlight.Syntax { return d.syntax }

// SetSyntax switches the highlight rule set and re-highlights every row.
func (d *Document) SetSyntax(s *highlight.Syntax) {
	d.syntax = s
	for _, row := range d.rows {
		row.hlValid = false
	}
	d.rehighlight(0)
}

// InsertRow inserts a row holding text at index at, clamped to [0, Len()].
func (d *Document) InsertRow(at int, text []byte) {
	d.rehighlight(d.insertRow(at, text))
	d.dirty++
}

// DeleteRow removes the row at index at. Out of range is a no-op.
func (d *Document) DeleteRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	d.deleteRow(at)
	d.rehighlight(at)
	d.dirty++
}

// SplitRow splits row at at column cx: the row keeps text[:cx] and a new row
// holding text[cx:] is inserted right after it.
func (d *Document) SplitRow(at, cx int) {
	row := d.Row(at)
	if row == nil {
		return
	}
	cx = clamp(cx, 0, len(row.chars))
	tail := append([]byte(nil), row.chars[cx:]...)
	row.chars = row.chars[:cx:cx]
	row.update()
	d.insertRow(at+1, tail)
	d.rehighlight(at)
	d.dirty++
}

// JoinWithPrevious appends row at onto the previous row and deletes it.
// It is a no-op for the first row.
func (d *Document) JoinWithPrevious(at int) {
	if at <= 0 || at >= len(d.rows) {
		return
	}
	prev, row := d.rows[at-1], d.rows[at]
	prev.chars = append(prev.chars, row.chars...)
	prev.update()
	d.deleteRow(at)
	d.rehighlight(at - 1)
	d.dirty++
}

// InsertChar inserts c into row at at column cx, clamped to the row length.
func (d *Document) InsertChar(at, cx int, c byte) {
	row := d.Row(at)
	if row == nil {
		return
	}
	cx = clamp(cx, 0, len(row.chars))
	row.chars = append(row.chars, 0)
	copy(row.chars[cx+1:], row.chars[cx:])
	row.chars[cx] = c
	row.update()
	d.rehighlight(at)
	d.dirty++
}

// DeleteChar removes the character at column cx of row at. Out of range is
// a no-op.
func (d *Document) DeleteChar(at, cx int) {
	row := d.Row(at)
	if row == nil || cx < 0 || cx >= len(row.chars) {
		return
	}
	row.chars = append(row.chars[:cx], row.chars[cx+1:]...)
	row.update()
	d.rehighlight(at)
	d.dirty++
}

// Bytes joins all rows with newlines.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for i, row := range d.rows {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(row.chars)
	}
	return buf.Bytes()
}

// insertRow and deleteRow leave highlighting to the caller.
func (d *Document) insertRow(at int, text []byte) int {
	at = clamp(at, 0, len(d.rows))
	d.rows = append(d.rows, nil)
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = newRow(at, text)
	d.reindex(at + 1)
	return at
}

func (d *Document) deleteRow(at int) {
	copy(d.rows[at:], d.rows[at+1:])
	d.rows[len(d.rows)-1] = nil
	d.rows = d.rows[:len(d.rows)-1]
	d.reindex(at)
}

func (d *Document) reindex(from int) {
	for i := from; i < len(d.rows); i++ {
		d.rows[i].index = i
	}
}

// rehighlight recomputes row from, then continues with the rows below it
// until one whose cached highlight was computed with the same incoming
// block-comment state it would get now.
func (d *Document) rehighlight(from int) {
	for i := from; i < len(d.rows); i++ {
		row := d.rows[i]
		in := i > 0 && d.rows[i-1].openComment
		if i > from && row.hlValid && row.hlIn == in {
			return
		}
		row.hl, row.openComment = highlight.Line(row.chars, d.syntax, in)
		row.hlIn = in
		row.hlValid = true
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
