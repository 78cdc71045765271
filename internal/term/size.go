package term

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

var errBadReport = errors.New("malformed cursor position report")

// QuerySize moves the cursor to the bottom-right corner and reads back the
// position the terminal reports for it.
func QuerySize(rw io.ReadWriter) (rows, cols int, err error) {
	if _, err := io.WriteString(rw, "\x1b[999C\x1b[999B\x1b[6n"); err != nil {
		return 0, 0, fmt.Errorf("query size: %w", err)
	}

	var reply []byte
	var b [1]byte
	for len(reply) < 32 {
		n, err := rw.Read(b[:])
		if n == 0 || err != nil {
			break
		}
		if b[0] == 'R' {
			break
		}
		reply = append(reply, b[0])
	}
	return parseCursorReport(reply)
}

// parseCursorReport parses "ESC [ rows ; cols" with the trailing R removed.
func parseCursorReport(reply []byte) (rows, cols int, err error) {
	body, ok := bytes.CutPrefix(reply, []byte("\x1b["))
	if !ok {
		return 0, 0, errBadReport
	}
	if _, err := fmt.Sscanf(string(body), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", errBadReport, body)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, errBadReport
	}
	return rows, cols, nil
}
