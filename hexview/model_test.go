package hexview

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/hexed/bytestore"
	"github.com/iw2rmb/hexed/highlight"
	"github.com/iw2rmb/hexed/rangeset"
	"github.com/iw2rmb/hexed/viewport"
)

// countingFile records every ReadAt the store issues.
type countingFile struct {
	bytestore.File

	mu    *sync.Mutex
	reads *[]rangeset.Interval
}

func (f countingFile) ReadAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	*f.reads = append(*f.reads, rangeset.Interval{Start: off, End: off + int64(len(p))})
	f.mu.Unlock()
	return f.File.ReadAt(p, off)
}

type readLog struct {
	mu    sync.Mutex
	reads []rangeset.Interval
}

func (l *readLog) opener(path string, flag int) (bytestore.File, error) {
	f, err := bytestore.OSOpener(path, flag)
	if err != nil {
		return nil, err
	}
	return countingFile{File: f, mu: &l.mu, reads: &l.reads}, nil
}

func (l *readLog) take() []rangeset.Interval {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.reads
	l.reads = nil
	return out
}

func writeFixture(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func openStore(t *testing.T, path string, opts ...bytestore.Option) *bytestore.Store {
	t.Helper()
	s, err := bytestore.Open(path, opts...)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// drain runs cmd and every command it produces, feeding messages back into m.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatalf("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		var next tea.Cmd
		m, next = m.Update(msg)
		queue = append(queue, next)
	}
	return m
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		m = drain(t, m, cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newTestModel(t *testing.T, store *bytestore.Store, width, height int) Model {
	t.Helper()
	m := New(Config{Store: store})
	m = m.SetSize(width, height)
	return drain(t, m, m.Init())
}

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestView_RowLayout(t *testing.T) {
	content := seq(64)
	copy(content[16:], "Hello, hex view!")
	m := newTestModel(t, openStore(t, writeFixture(t, content)), 80, 5)

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines: got %d, want %d", len(lines), 5)
	}
	want0 := "00000000: 00 01 02 03 04 05 06 07  08 09 0a 0b 0c 0d 0e 0f  ................"
	if lines[0] != want0 {
		t.Fatalf("row 0:\n got: %q\nwant: %q", lines[0], want0)
	}
	want1 := "00000010: 48 65 6c 6c 6f 2c 20 68  65 78 20 76 69 65 77 21  Hello, hex view!"
	if lines[1] != want1 {
		t.Fatalf("row 1:\n got: %q\nwant: %q", lines[1], want1)
	}
}

func TestView_ShortLastRow(t *testing.T) {
	m := newTestModel(t, openStore(t, writeFixture(t, []byte("abc"))), 80, 3)

	lines := strings.Split(m.View(), "\n")
	want := "00000000: 61 62 63" + strings.Repeat(" ", 3*13+1) + "  abc"
	if lines[0] != want {
		t.Fatalf("row 0:\n got: %q\nwant: %q", lines[0], want)
	}
	if lines[1] != "" {
		t.Fatalf("row past end of file: got %q, want empty", lines[1])
	}
}

func TestModel_JumpReadsOnlyNewWindow(t *testing.T) {
	const size = 50 << 20
	path := filepath.Join(t.TempDir(), "big.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.Truncate(size); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	_ = f.Close()

	log := &readLog{}
	store := openStore(t, path, bytestore.WithOpener(log.opener))
	m := newTestModel(t, store, 80, 41)
	_ = log.take()

	m, cmd := m.GotoOffset(10_000_000)
	// Navigation itself does no I/O.
	if got := log.take(); len(got) != 0 {
		t.Fatalf("reads during navigation: %v", got)
	}
	m = drain(t, m, cmd)

	if got := m.Controller().Cursor().Offset; got != 10_000_000 {
		t.Fatalf("cursor: got %d, want %d", got, 10_000_000)
	}
	vp := m.Controller().Viewport()
	lo := (vp.Offset - windowMargin) / bytestore.DefaultPageSize * bytestore.DefaultPageSize
	hi := vp.Offset + vp.Length + windowMargin + bytestore.DefaultPageSize

	reads := log.take()
	if len(reads) == 0 {
		t.Fatalf("no reads after jump")
	}
	for _, r := range reads {
		if r.Start < lo || r.End > hi {
			t.Fatalf("read %v outside window pages [%d, %d)", r, lo, hi)
		}
	}

	if addr := "00989680:"; !strings.Contains(m.View(), addr) {
		t.Fatalf("view does not show the cursor row %s", addr)
	}
}

func TestModel_StaleWindowIgnored(t *testing.T) {
	m := newTestModel(t, openStore(t, writeFixture(t, make([]byte, 4096))), 80, 3)

	m, first := m.GotoOffset(3000)
	m, second := m.GotoOffset(100)

	m, _ = m.Update(second())
	m, _ = m.Update(first())

	if _, ok := m.win.byteAt(100); !ok {
		t.Fatalf("window for the latest jump was replaced by a stale one")
	}
	if _, ok := m.win.byteAt(3000); ok {
		t.Fatalf("stale window applied")
	}
}

func TestModel_EditHexAndCommit(t *testing.T) {
	path := writeFixture(t, make([]byte, 32))
	m := newTestModel(t, openStore(t, path), 80, 4)

	m = press(t, m, runes("i"), runes("a"), runes("b"), runes("c"))
	if m.Controller().Cursor().Mode != viewport.ModeEdit {
		t.Fatalf("mode: got %v, want edit", m.Controller().Cursor().Mode)
	}
	got, _ := m.Store().Read(0, 2)
	if !bytes.Equal(got, []byte{0xAB, 0xC0}) {
		t.Fatalf("edited bytes: got %x, want abc0", got)
	}
	if off := m.Controller().Cursor().Offset; off != 1 {
		t.Fatalf("cursor: got %d, want %d", off, 1)
	}
	if !strings.HasPrefix(m.View(), "00000000: ab c0 00") {
		t.Fatalf("view after edit: %q", strings.SplitN(m.View(), "\n", 2)[0])
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	disk, _ := os.ReadFile(path)
	if disk[0] != 0xAB || disk[1] != 0xC0 {
		t.Fatalf("disk after save: got %x", disk[:2])
	}
	if m.Store().HasPendingEdits() {
		t.Fatalf("pending edits after save")
	}
	if m.status != "saved 2 bytes" {
		t.Fatalf("status: got %q, want %q", m.status, "saved 2 bytes")
	}
}

func TestModel_EditASCIIColumn(t *testing.T) {
	m := newTestModel(t, openStore(t, writeFixture(t, make([]byte, 8))), 80, 3)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("i"), runes("Hi"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.Column() != ColumnASCII {
		t.Fatalf("column: got %v, want ascii", m.Column())
	}
	got, _ := m.Store().Read(0, 3)
	if string(got) != "Hi\x00" {
		t.Fatalf("content: got %q, want %q", got, "Hi\x00")
	}
	if m.Controller().Cursor().Mode != viewport.ModeNormal {
		t.Fatalf("esc did not leave edit mode")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if m.Store().HasPendingEdits() {
		t.Fatalf("edits left after discard")
	}
}

func TestModel_ReadOnlyConfigRefusesEdits(t *testing.T) {
	store := openStore(t, writeFixture(t, make([]byte, 8)))
	m := New(Config{Store: store, ReadOnly: true})
	m = drain(t, m.SetSize(80, 3), m.Init())

	m = press(t, m, runes("i"), runes("ff"), tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.Controller().Cursor().Mode != viewport.ModeNormal {
		t.Fatalf("entered edit mode in read-only view")
	}
	if store.HasPendingEdits() {
		t.Fatalf("read-only view wrote to the store")
	}
}

func TestModel_CommitOnReadOnlyFileReportsOffset(t *testing.T) {
	path := writeFixture(t, make([]byte, 8))
	open := func(p string, flag int) (bytestore.File, error) {
		if flag&os.O_RDWR != 0 {
			return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrPermission}
		}
		return bytestore.OSOpener(p, flag)
	}
	m := newTestModel(t, openStore(t, path, bytestore.WithOpener(open)), 80, 3)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, runes("i"), runes("7f"), tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.statusErr || !strings.HasPrefix(m.status, "save failed at 0x1") {
		t.Fatalf("status: got %q (err %v)", m.status, m.statusErr)
	}
	if !m.Store().HasPendingEdits() {
		t.Fatalf("edits lost after refused save")
	}
}

func TestModel_GotoPrompt(t *testing.T) {
	m := newTestModel(t, openStore(t, writeFixture(t, seq(4096))), 80, 5)

	m = press(t, m, runes("g"), runes("0x200"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Controller().Cursor().Offset; got != 0x200 {
		t.Fatalf("cursor after goto: got %#x, want %#x", got, 0x200)
	}

	m = press(t, m, runes("g"), runes("+16"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Controller().Cursor().Offset; got != 0x210 {
		t.Fatalf("cursor after relative goto: got %#x, want %#x", got, 0x210)
	}

	m = press(t, m, runes("g"), runes("zzz"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.statusErr {
		t.Fatalf("invalid goto input did not report an error")
	}

	m = press(t, m, runes("g"), runes("5"), tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.Controller().Cursor().Offset; got != 0x210 {
		t.Fatalf("cancelled goto moved the cursor to %#x", got)
	}
}

func TestModel_FindNextPrev(t *testing.T) {
	content := make([]byte, 1024)
	copy(content[100:], "NEEDLE")
	copy(content[700:], "NEEDLE")
	m := newTestModel(t, openStore(t, writeFixture(t, content)), 80, 5)

	m = press(t, m, runes("/"), runes("NEEDLE"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Controller().Cursor().Offset; got != 100 {
		t.Fatalf("first match: got %d, want %d", got, 100)
	}
	m = press(t, m, runes("n"))
	if got := m.Controller().Cursor().Offset; got != 700 {
		t.Fatalf("next match: got %d, want %d", got, 700)
	}
	m = press(t, m, runes("n"))
	if got := m.Controller().Cursor().Offset; got != 700 || m.status != "pattern not found" {
		t.Fatalf("past last match: cursor %d status %q", got, m.status)
	}
	m = press(t, m, runes("N"))
	if got := m.Controller().Cursor().Offset; got != 100 {
		t.Fatalf("previous match: got %d, want %d", got, 100)
	}

	// The prompt reopens with the previous query; ctrl+u clears it.
	m = press(t, m, runes("/"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes("hex:4e 45"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Controller().Cursor().Offset; got != 100 {
		t.Fatalf("hex query from cursor: got %d, want %d", got, 100)
	}
}

func TestModel_Mouse(t *testing.T) {
	m := newTestModel(t, openStore(t, writeFixture(t, seq(1024))), 80, 5)
	l := m.layout()

	m = press(t, m, tea.MouseMsg{X: l.hexX(5) + 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.Controller().Cursor().Offset; got != 21 || m.Column() != ColumnHex {
		t.Fatalf("hex click: cursor %d column %v", got, m.Column())
	}

	m = press(t, m, tea.MouseMsg{X: l.asciiX(3), Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.Controller().Cursor().Offset; got != 3 || m.Column() != ColumnASCII {
		t.Fatalf("ascii click: cursor %d column %v", got, m.Column())
	}

	m = press(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if top := m.Controller().TopRow(); top != wheelRows {
		t.Fatalf("top row after wheel: got %d, want %d", top, wheelRows)
	}
	if got := m.Controller().Cursor().Offset; got != 3+wheelRows*16 {
		t.Fatalf("cursor dragged by wheel: got %d, want %d", got, 3+wheelRows*16)
	}
}

func TestModel_OnChange(t *testing.T) {
	var events []ChangeEvent
	store := openStore(t, writeFixture(t, make([]byte, 64)))
	m := New(Config{Store: store, OnChange: func(ev ChangeEvent) { events = append(events, ev) }})
	m = drain(t, m.SetSize(80, 3), m.Init())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, runes("i"), runes("1"))
	if len(events) != 3 {
		t.Fatalf("change events: got %d, want %d", len(events), 3)
	}
	if events[0].Cursor.Offset != 1 ||
		events[1].Cursor.Mode != viewport.ModeEdit ||
		events[2].PendingBytes != 1 || events[2].Version == events[1].Version {
		t.Fatalf("change events: got %+v", events)
	}
}

func TestScreenToOffset_RoundTrip(t *testing.T) {
	m := newTestModel(t, openStore(t, writeFixture(t, seq(200))), 80, 5)
	for _, col := range []Column{ColumnHex, ColumnASCII} {
		for off := int64(0); off < 64; off++ {
			x, y, ok := m.OffsetToScreen(off, col)
			if !ok {
				t.Fatalf("offset %d not on screen", off)
			}
			got, gotCol, ok := m.ScreenToOffset(x, y)
			if !ok || got != off || gotCol != col {
				t.Fatalf("round trip of %d in %v: got %d in %v (%v)", off, col, got, gotCol, ok)
			}
		}
	}
	if _, _, ok := m.ScreenToOffset(8, 0); ok {
		t.Fatalf("address column maps to a byte")
	}
}

func TestParseOffset(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"0x1f00", 0x1f00, false},
		{"0X10", 16, false},
		{"7936", 7936, false},
		{"+16", 116, false},
		{"-0x10", 84, false},
		{"zz", 0, true},
		{"0x", 0, true},
	}
	for _, tc := range cases {
		got, err := parseOffset(tc.in, 100)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("parseOffset(%q): got %d, %v; want %d (error %v)", tc.in, got, err, tc.want, tc.wantErr)
		}
	}
}

func TestView_ColorProfileStylesCursor(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	store := openStore(t, writeFixture(t, []byte("\x00\x0a")))
	m := New(Config{Store: store, Style: DefaultStyle(), Theme: highlight.DefaultTheme()})
	m = drain(t, m.SetSize(80, 3), m.Init())
	row := strings.Split(m.View(), "\n")[0]
	if !strings.Contains(row, "\x1b[") {
		t.Fatalf("no styling in row %q", row)
	}

	// Zero styles render plain text whatever the profile.
	plain := newTestModel(t, store, 80, 3)
	want := "00000000: 00 0a"
	if row := strings.Split(plain.View(), "\n")[0]; !strings.HasPrefix(row, want) {
		t.Fatalf("unstyled row: got %q, want prefix %q", row, want)
	}
}
