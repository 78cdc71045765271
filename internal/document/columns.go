package document

import "github.com/xonecas/ted/internal/constants"

// CxToRx converts a file column into a render column by expanding every tab
// before cx to the next multiple of TabStop.
func CxToRx(text []byte, cx int) int {
	if cx > len(text) {
		cx = len(text)
	}
	rx := 0
	for _, c := range text[:cx] {
		if c == '\t' {
			rx += (constants.TabStop - 1) - (rx % constants.TabStop)
		}
		rx++
	}
	return rx
}

// RxToCx is the inverse of CxToRx: it returns the smallest file column whose
// cumulative render width exceeds rx, or len(text) when none does.
func RxToCx(text []byte, rx int) int {
	cur := 0
	for cx, c := range text {
		if c == '\t' {
			cur += (constants.TabStop - 1) - (cur % constants.TabStop)
		}
		cur++
		if cur > rx {
			return cx
		}
	}
	return len(text)
}

// expandTabs returns text with each tab replaced by spaces up to the next
// tab stop.
func expandTabs(text []byte) string {
	tabs := 0
	for _, c := range text {
		if c == '\t' {
			tabs++
		}
	}
	if tabs == 0 {
		return string(text)
	}
	buf := make([]byte, 0, len(text)+tabs*(constants.TabStop-1))
	for _, c := range text {
		if c != '\t' {
			buf = append(buf, c)
			continue
		}
		buf = append(buf, ' ')
		for len(buf)%constants.TabStop != 0 {
			buf = append(buf, ' ')
		}
	}
	return string(buf)
}
