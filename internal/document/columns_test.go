package document

import "testing"

func TestCxToRx(t *testing.T) {
	cases := []struct {
		text string
		cx   int
		want int
	}{
		{"abc", 2, 2},
		{"a\tb", 1, 1},
		{"a\tb", 2, 8},
		{"a\tb", 3, 9},
		{"\t\tx", 2, 16},
		{"1234567\tx", 8, 8},
		{"12345678\tx", 9, 16},
		{"abc", 10, 3},
	}
	for _, tc := range cases {
		if got := CxToRx([]byte(tc.text), tc.cx); got != tc.want {
			t.Errorf("CxToRx(%q, %d) = %d, want %d", tc.text, tc.cx, got, tc.want)
		}
	}
}

func TestRxToCxRoundTrip(t *testing.T) {
	for _, text := range []string{"", "plain", "a\tb", "\t\tx\ty", "12345678\t\tz", "\t"} {
		b := []byte(text)
		for cx := 0; cx <= len(b); cx++ {
			rx := CxToRx(b, cx)
			if rx < cx {
				t.Errorf("%q: rx %d < cx %d", text, rx, cx)
			}
			if got := RxToCx(b, rx); got != cx {
				t.Errorf("%q: RxToCx(CxToRx(%d)=%d) = %d", text, cx, rx, got)
			}
		}
	}
}

func TestRxToCxInsideTab(t *testing.T) {
	// Every render cell a tab covers maps back to the tab itself.
	b := []byte("a\tb")
	for rx := 1; rx < 8; rx++ {
		if got := RxToCx(b, rx); got != 1 {
			t.Errorf("RxToCx(%d) = %d, want 1", rx, got)
		}
	}
	if got := RxToCx(b, 100); got != len(b) {
		t.Errorf("RxToCx past end = %d, want %d", got, len(b))
	}
}

func TestExpandTabs(t *testing.T) {
	cases := []struct{ in, want string }{
		{"no tabs", "no tabs"},
		{"\tx", "        x"},
		{"ab\tc", "ab      c"},
		{"12345678\tx", "12345678        x"},
	}
	for _, tc := range cases {
		if got := expandTabs([]byte(tc.in)); got != tc.want {
			t.Errorf("expandTabs(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
