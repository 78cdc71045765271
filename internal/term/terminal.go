// Package term is the editor's connection to the controlling terminal: raw
// mode, window size and key decoding.
package term

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// ErrNotTerminal is returned by EnableRawMode when input is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Terminal reads keystrokes from in and writes frames to out.
type Terminal struct {
	in   *os.File
	out  *os.File
	orig *unix.Termios
}

func New(in, out *os.File) *Terminal {
	return &Terminal{in: in, out: out}
}

// EnableRawMode switches input to raw mode and remembers the previous
// settings for Restore. Reads return after at most a tenth of a second even
// when no byte arrived, so a lone Escape can be told apart from the start of
// an escape sequence.
func (t *Terminal) EnableRawMode() error {
	if t.orig != nil {
		return nil
	}
	fd := int(t.in.Fd())
	if !xterm.IsTerminal(fd) {
		return ErrNotTerminal
	}

	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}

	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	t.orig = orig
	return nil
}

// Restore puts back the settings saved by EnableRawMode.
func (t *Terminal) Restore() error {
	if t.orig == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlSetTermios, t.orig); err != nil {
		return fmt.Errorf("restore termios: %w", err)
	}
	t.orig = nil
	return nil
}

func (t *Terminal) Read(p []byte) (int, error) { return t.in.Read(p) }

func (t *Terminal) Write(p []byte) (int, error) { return t.out.Write(p) }

// Size reports the window size. When the ioctl is unavailable it asks the
// terminal where the cursor lands after moving to the far corner, which
// needs raw mode to be enabled.
func (t *Terminal) Size() (rows, cols int, err error) {
	rows, cols, err = t.PollSize()
	if err == nil && cols > 0 && rows > 0 {
		return rows, cols, nil
	}
	return QuerySize(t)
}

// PollSize is Size without the cursor query fallback. It never reads input,
// so it can run between key reads.
func (t *Terminal) PollSize() (rows, cols int, err error) {
	cols, rows, err = xterm.GetSize(int(t.out.Fd()))
	return rows, cols, err
}
