package tui

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/ted/internal/highlight"
	"github.com/xonecas/ted/internal/term"
)

func TestMain(m *testing.M) {
	log.Logger = zerolog.Nop()
	os.Exit(m.Run())
}

// script replays keys and fails with io.EOF once they run out.
type script struct {
	keys []term.Key
}

func (s *script) ReadKey() (term.Key, error) {
	if len(s.keys) == 0 {
		return term.Key{}, io.EOF
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

func key(kind term.KeyKind) term.Key { return term.Key{Kind: kind} }

func chars(text string) []term.Key {
	keys := make([]term.Key, len(text))
	for i := range len(text) {
		keys[i] = term.Key{Kind: term.KeyChar, Char: text[i]}
	}
	return keys
}

func keys(groups ...any) []term.Key {
	var out []term.Key
	for _, g := range groups {
		switch v := g.(type) {
		case term.KeyKind:
			out = append(out, key(v))
		case string:
			out = append(out, chars(v)...)
		case []term.Key:
			out = append(out, v...)
		}
	}
	return out
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

type testSession struct {
	*Session
	out   *bytes.Buffer
	clock *fakeClock
}

func newTestSession(t *testing.T, text string, opts Options) *testSession {
	t.Helper()
	out := &bytes.Buffer{}
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	if opts.Now == nil {
		opts.Now = clock.Now
	}
	s := New(&script{}, out, 10, 40, opts)
	if err := s.doc.Load(strings.NewReader(text)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return &testSession{Session: s, out: out, clock: clock}
}

// run feeds keys to the session and returns Run's result, with the error
// of an exhausted script mapped to nil.
func (ts *testSession) run(t *testing.T, groups ...any) (quit bool) {
	t.Helper()
	ts.keys = &script{keys: keys(groups...)}
	err := ts.Run()
	switch {
	case err == nil:
		return true
	case errors.Is(err, io.EOF):
		return false
	default:
		t.Fatalf("Run: %v", err)
		return false
	}
}

func (ts *testSession) rows() []string {
	out := make([]string, ts.doc.Len())
	for i := range out {
		out[i] = ts.doc.Row(i).Text()
	}
	return out
}

func (ts *testSession) wantCursor(t *testing.T, row, col int) {
	t.Helper()
	if ts.cy != row || ts.cx != col {
		t.Errorf("cursor = %d:%d, want %d:%d", ts.cy, ts.cx, row, col)
	}
}

func TestTabThenSearchScenario(t *testing.T) {
	ts := newTestSession(t, "a\tb\nc\nd", Options{})

	ts.run(t, term.KeyRight, term.KeyRight)
	ts.wantCursor(t, 0, 2)
	if ts.rx != 8 {
		t.Errorf("rx = %d, want 8", ts.rx)
	}

	ts.run(t, term.KeyCtrlF, "c", term.KeyEnter)
	ts.wantCursor(t, 1, 0)
}

func TestInsertAtEndOfDocument(t *testing.T) {
	ts := newTestSession(t, "a", Options{})
	ts.run(t, term.KeyDown, "x")

	got := ts.rows()
	if len(got) != 2 || got[0] != "a" || got[1] != "x" {
		t.Errorf("rows = %q", got)
	}
	ts.wantCursor(t, 1, 1)
}

func TestInsertIntoEmptyDocument(t *testing.T) {
	ts := newTestSession(t, "", Options{})
	ts.run(t, "x")
	if got := ts.rows(); len(got) != 1 || got[0] != "x" {
		t.Errorf("rows = %q", got)
	}
}

func TestQuitConfirmation(t *testing.T) {
	ts := newTestSession(t, "text", Options{})

	if ts.run(t, "x", term.KeyCtrlQ, term.KeyCtrlQ) {
		t.Fatal("quit after two presses")
	}
	if !strings.Contains(ts.status, "Press Ctrl-Q 2 more times") {
		t.Errorf("status = %q", ts.status)
	}

	// Edits in between do not reset the counter.
	if ts.run(t, "y", term.KeyCtrlQ) {
		t.Fatal("quit after three presses")
	}
	if !strings.Contains(ts.status, "Press Ctrl-Q 1 more times") {
		t.Errorf("status = %q", ts.status)
	}
	if !ts.run(t, term.KeyCtrlQ) {
		t.Fatal("fourth press did not quit")
	}
	if !strings.HasSuffix(ts.out.String(), "\x1b[2J\x1b[H") {
		t.Error("quit did not clear the screen")
	}
}

func TestQuitCleanDocument(t *testing.T) {
	ts := newTestSession(t, "text", Options{})
	if !ts.run(t, term.KeyCtrlQ) {
		t.Fatal("clean document did not quit at once")
	}
}

func TestQuitTimesOption(t *testing.T) {
	ts := newTestSession(t, "", Options{QuitTimes: 1})
	if ts.run(t, "x", term.KeyCtrlQ) {
		t.Fatal("quit without warning")
	}
	if !ts.run(t, term.KeyCtrlQ) {
		t.Fatal("second press did not quit")
	}
}

func TestEnterSplitsRow(t *testing.T) {
	ts := newTestSession(t, "hello", Options{})
	ts.run(t, term.KeyRight, term.KeyRight, term.KeyEnter)
	if got := ts.rows(); len(got) != 2 || got[0] != "he" || got[1] != "llo" {
		t.Errorf("rows = %q", got)
	}
	ts.wantCursor(t, 1, 0)

	ts.run(t, term.KeyHome, term.KeyEnter)
	if got := ts.rows(); len(got) != 3 || got[1] != "" || got[2] != "llo" {
		t.Errorf("rows = %q", got)
	}
	ts.wantCursor(t, 2, 0)
}

func TestBackspaceJoinsRows(t *testing.T) {
	ts := newTestSession(t, "ab\ncd", Options{})
	ts.run(t, term.KeyDown, term.KeyBackspace)
	if got := ts.rows(); len(got) != 1 || got[0] != "abcd" {
		t.Errorf("rows = %q", got)
	}
	ts.wantCursor(t, 0, 2)

	ts.run(t, term.KeyBackspace)
	if got := ts.rows()[0]; got != "acd" {
		t.Errorf("row = %q", got)
	}

	// Nothing before the first character.
	ts.run(t, term.KeyHome, term.KeyBackspace)
	if got := ts.rows()[0]; got != "acd" {
		t.Errorf("row = %q", got)
	}
}

func TestForwardDelete(t *testing.T) {
	ts := newTestSession(t, "abc\nd", Options{})
	ts.run(t, term.KeyDelete)
	if got := ts.rows()[0]; got != "bc" {
		t.Errorf("row = %q", got)
	}
	ts.run(t, term.KeyEnd, term.KeyDelete)
	if got := ts.rows(); len(got) != 1 || got[0] != "bcd" {
		t.Errorf("rows = %q", got)
	}
}

func TestCursorMovement(t *testing.T) {
	ts := newTestSession(t, "long line\nab", Options{})

	ts.run(t, term.KeyLeft, term.KeyUp)
	ts.wantCursor(t, 0, 0)

	ts.run(t, term.KeyEnd, term.KeyDown)
	ts.wantCursor(t, 1, 2)

	ts.run(t, term.KeyHome, term.KeyLeft)
	ts.wantCursor(t, 0, 9)

	ts.run(t, term.KeyRight)
	ts.wantCursor(t, 1, 0)

	// Down stops on the empty line past the last row.
	ts.run(t, term.KeyDown, term.KeyDown, term.KeyDown)
	ts.wantCursor(t, 2, 0)
}

func TestPageUpDown(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	ts := newTestSession(t, strings.Join(lines, "\n"), Options{})

	ts.run(t, term.KeyPageDown)
	ts.wantCursor(t, 19, 0)
	if ts.view.RowOff != 10 {
		t.Errorf("rowoff = %d, want 10", ts.view.RowOff)
	}

	ts.run(t, term.KeyPageUp)
	ts.wantCursor(t, 0, 0)

	ts.run(t, term.KeyPageDown, term.KeyPageDown, term.KeyPageDown, term.KeyPageDown)
	ts.wantCursor(t, 30, 0)
}

func TestSaveWithPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.go")
	ts := newTestSession(t, "", Options{})

	ts.run(t, "hi", term.KeyCtrlS, path, term.KeyEnter)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hi" {
		t.Errorf("file = %q", data)
	}
	if ts.doc.Dirty() != 0 {
		t.Errorf("dirty = %d after save", ts.doc.Dirty())
	}
	if ts.status != "2 bytes written to disk" {
		t.Errorf("status = %q", ts.status)
	}
	if syn := ts.doc.Syntax(); syn == nil || syn.FileType != "go" {
		t.Errorf("syntax not selected from the new name: %+v", syn)
	}
}

func TestSaveAborted(t *testing.T) {
	ts := newTestSession(t, "", Options{})
	ts.run(t, "x", term.KeyCtrlS, "name", term.KeyEscape)
	if ts.status != "Save aborted" {
		t.Errorf("status = %q", ts.status)
	}
	if ts.doc.Filename() != "" {
		t.Errorf("filename = %q", ts.doc.Filename())
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	ts := newTestSession(t, "", Options{})
	ts.doc.SetFilename(filepath.Join(t.TempDir(), "no", "such", "dir.txt"))

	ts.run(t, "x", term.KeyCtrlS)
	if !strings.HasPrefix(ts.status, "Can't save! I/O error: ") {
		t.Errorf("status = %q", ts.status)
	}
	if ts.doc.Dirty() == 0 {
		t.Error("failed save cleared dirty")
	}
}

type memPositions map[string][2]int

func (m memPositions) Position(path string) (int, int, bool) {
	p, ok := m[path]
	return p[0], p[1], ok
}

func (m memPositions) SetPosition(path string, row, col int) {
	m[path] = [2]int{row, col}
}

func TestOpenRestoresPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main\n\nfunc main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	positions := memPositions{path: {2, 99}}
	ts := newTestSession(t, "", Options{Positions: positions})

	if err := ts.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	ts.wantCursor(t, 2, len("func main() {}"))
	if syn := ts.doc.Syntax(); syn == nil || syn.FileType != "go" {
		t.Errorf("syntax = %+v", syn)
	}

	ts.run(t, term.KeyUp, term.KeyCtrlQ)
	if got := positions[path]; got != [2]int{1, 0} {
		t.Errorf("stored position = %v", got)
	}
}

func TestOpenClampsStoredRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("one\ntwo"), 0o644); err != nil {
		t.Fatal(err)
	}
	ts := newTestSession(t, "", Options{Positions: memPositions{path: {40, 3}}})
	if err := ts.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	ts.wantCursor(t, 2, 0)
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.c")
	ts := newTestSession(t, "", Options{})
	if err := ts.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if ts.doc.Len() != 0 || ts.doc.Filename() != path {
		t.Errorf("rows %d filename %q", ts.doc.Len(), ts.doc.Filename())
	}
	if syn := ts.doc.Syntax(); syn == nil || syn.FileType != "c" {
		t.Errorf("syntax = %+v", syn)
	}
}

func TestUserSyntaxOption(t *testing.T) {
	db := highlight.NewDatabase(highlight.Syntax{
		FileType:    "ini",
		Extensions:  []string{".ini"},
		LineComment: ";",
	})
	path := filepath.Join(t.TempDir(), "x.ini")
	ts := newTestSession(t, "", Options{Syntaxes: db})
	if err := ts.Open(path); err != nil {
		t.Fatal(err)
	}
	if syn := ts.doc.Syntax(); syn == nil || syn.FileType != "ini" {
		t.Errorf("syntax = %+v", syn)
	}
}
