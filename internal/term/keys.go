package term

import (
	"errors"
	"io"
)

// KeyKind is the closed set of keys the editor reacts to.
type KeyKind int

const (
	KeyNone KeyKind = iota // read timed out
	KeyChar
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyCtrlQ
	KeyCtrlS
	KeyCtrlF
	KeyCtrlL
)

var keyNames = [...]string{
	KeyNone:      "none",
	KeyChar:      "char",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyCtrlQ:     "ctrl+q",
	KeyCtrlS:     "ctrl+s",
	KeyCtrlF:     "ctrl+f",
	KeyCtrlL:     "ctrl+l",
}

func (k KeyKind) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// Key is one decoded keystroke. Char is set for KeyChar only.
type Key struct {
	Kind KeyKind
	Char byte
}

const (
	ctrlF     = 6
	ctrlH     = 8
	ctrlL     = 12
	enter     = 13
	ctrlQ     = 17
	ctrlS     = 19
	esc       = 27
	backspace = 127
)

// Decoder turns the raw byte stream of a terminal into keys.
type Decoder struct {
	r   io.Reader
	buf [1]byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadKey reads one key. A read that returns no byte, which is how a raw
// mode read timeout surfaces, yields KeyNone and no error.
func (d *Decoder) ReadKey() (Key, error) {
	c, ok, err := d.next()
	if err != nil || !ok {
		return Key{}, err
	}

	switch c {
	case esc:
		return d.escape()
	case enter:
		return Key{Kind: KeyEnter}, nil
	case backspace, ctrlH:
		return Key{Kind: KeyBackspace}, nil
	case ctrlQ:
		return Key{Kind: KeyCtrlQ}, nil
	case ctrlS:
		return Key{Kind: KeyCtrlS}, nil
	case ctrlF:
		return Key{Kind: KeyCtrlF}, nil
	case ctrlL:
		return Key{Kind: KeyCtrlL}, nil
	}
	return Key{Kind: KeyChar, Char: c}, nil
}

// escape classifies the bytes following ESC. Anything it does not recognize,
// including a sequence cut short by a timeout, is a plain Escape.
func (d *Decoder) escape() (Key, error) {
	plain := Key{Kind: KeyEscape}

	s0, ok, err := d.next()
	if err != nil || !ok {
		return plain, err
	}
	s1, ok, err := d.next()
	if err != nil || !ok {
		return plain, err
	}

	switch s0 {
	case '[':
		if s1 >= '0' && s1 <= '9' {
			s2, ok, err := d.next()
			if err != nil || !ok || s2 != '~' {
				return plain, err
			}
			switch s1 {
			case '1', '7':
				return Key{Kind: KeyHome}, nil
			case '4', '8':
				return Key{Kind: KeyEnd}, nil
			case '3':
				return Key{Kind: KeyDelete}, nil
			case '5':
				return Key{Kind: KeyPageUp}, nil
			case '6':
				return Key{Kind: KeyPageDown}, nil
			}
			return plain, nil
		}
		switch s1 {
		case 'A':
			return Key{Kind: KeyUp}, nil
		case 'B':
			return Key{Kind: KeyDown}, nil
		case 'C':
			return Key{Kind: KeyRight}, nil
		case 'D':
			return Key{Kind: KeyLeft}, nil
		case 'H':
			return Key{Kind: KeyHome}, nil
		case 'F':
			return Key{Kind: KeyEnd}, nil
		}
	case 'O':
		switch s1 {
		case 'H':
			return Key{Kind: KeyHome}, nil
		case 'F':
			return Key{Kind: KeyEnd}, nil
		}
	}
	return plain, nil
}

// next reads a single byte. ok is false when the read timed out.
func (d *Decoder) next() (c byte, ok bool, err error) {
	n, err := d.r.Read(d.buf[:])
	if n == 1 {
		return d.buf[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	return 0, false, err
}
