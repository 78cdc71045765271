package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrNoFilename is returned by Save when the document has no file name yet.
var ErrNoFilename = errors.New("no filename")

// Load replaces the document's rows with the lines read from r. A trailing
// CR is stripped from each line; a final line terminator yields one trailing
// empty row. The document is clean afterwards.
func (d *Document) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.rows = d.rows[:0]
	if len(data) > 0 {
		for i, line := range bytes.Split(data, []byte("\n")) {
			d.rows = append(d.rows, newRow(i, bytes.TrimSuffix(line, []byte("\r"))))
		}
	}
	d.rehighlight(0)
	d.dirty = 0
	return nil
}

// Open loads filename. A file that does not exist yet leaves the document
// empty with its name set, so the first save creates it.
func (d *Document) Open(filename string) error {
	d.filename = filename
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		d.rows = nil
		d.dirty = 0
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()
	if err := d.Load(f); err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	return nil
}

// Save writes the rows joined by newlines to the document's file and marks
// the document clean. On failure the dirty count is left untouched.
func (d *Document) Save() (int, error) {
	if d.filename == "" {
		return 0, ErrNoFilename
	}
	data := d.Bytes()
	if err := os.WriteFile(d.filename, data, 0o644); err != nil {
		return 0, err
	}
	d.dirty = 0
	return len(data), nil
}
