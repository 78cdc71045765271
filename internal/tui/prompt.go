package tui

import "github.com/xonecas/ted/internal/term"

// prompt reads a line on the message bar. format gets the input typed so
// far. onKey, when set, sees every key together with the current input,
// including the Enter or Escape that ends the prompt. Escape returns "".
func (s *Session) prompt(format string, onKey func(input string, key term.Key)) (string, error) {
	var buf []byte
	for {
		s.setStatus(format, buf)
		if err := s.refresh(); err != nil {
			return "", err
		}

		key, err := s.readKey()
		if err != nil {
			return "", err
		}
		switch key.Kind {
		case term.KeyBackspace, term.KeyDelete:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case term.KeyEscape:
			s.setStatus("")
			if onKey != nil {
				onKey(string(buf), key)
			}
			return "", nil
		case term.KeyEnter:
			if len(buf) > 0 {
				s.setStatus("")
				if onKey != nil {
					onKey(string(buf), key)
				}
				return string(buf), nil
			}
		case term.KeyChar:
			if key.Char >= 32 && key.Char < 127 {
				buf = append(buf, key.Char)
			}
		}
		if onKey != nil {
			onKey(string(buf), key)
		}
	}
}
