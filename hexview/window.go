package hexview

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/hexed/rangeset"
)

// windowMargin extends every window read so search hits straddling the
// visible edges can still be found.
const windowMargin = 256

var errNotLoaded = errors.New("bytes outside loaded window")

// window is the most recently loaded span of content.
type window struct {
	offset  int64
	version uint64
	data    []byte
}

func (w window) interval() rangeset.Interval {
	return rangeset.Interval{Start: w.offset, End: w.offset + int64(len(w.data))}
}

func (w window) byteAt(off int64) (byte, bool) {
	i := off - w.offset
	if i < 0 || i >= int64(len(w.data)) {
		return 0, false
	}
	return w.data[i], true
}

// windowData serves highlighters from the loaded window so rendering never
// reads the file.
type windowData struct {
	w     window
	size  int64
	store interface {
		PendingRanges(iv rangeset.Interval) []rangeset.Interval
	}
}

func (d windowData) Read(off, n int64) ([]byte, error) {
	if n <= 0 || off >= d.size {
		return []byte{}, nil
	}
	iv := d.w.interval()
	if !iv.Contains(off) {
		return nil, errNotLoaded
	}
	end := min(off+n, iv.End)
	return d.w.data[off-iv.Start : end-iv.Start], nil
}

func (d windowData) Size() int64 { return d.size }

func (d windowData) PendingRanges(iv rangeset.Interval) []rangeset.Interval {
	return d.store.PendingRanges(iv)
}

// windowWant is the span the current viewport needs loaded.
func (m *Model) windowWant() rangeset.Interval {
	vp := m.ctl.Viewport()
	start := max(0, vp.Offset-windowMargin)
	end := min(m.ctl.FileLength(), vp.Offset+vp.Length+windowMargin)
	return rangeset.Interval{Start: start, End: end}
}

// syncWindow requests a fresh window when the viewport or the store content
// moved since the last request.
func (m *Model) syncWindow() tea.Cmd {
	if m.store == nil {
		return nil
	}
	want := m.windowWant()
	ver := m.store.Version()
	if want == m.requested && ver == m.requestedVer {
		return nil
	}
	if !want.Valid() {
		m.requested, m.requestedVer = want, ver
		m.win = window{offset: want.Start, version: ver}
		return nil
	}

	m.requested, m.requestedVer = want, ver
	m.seq++
	seq := m.seq
	store := m.store
	return func() tea.Msg {
		b, err := store.Read(want.Start, want.Len())
		return windowMsg{seq: seq, offset: want.Start, version: ver, data: b, err: err}
	}
}

func (m *Model) applyWindow(msg windowMsg) {
	if msg.seq != m.seq {
		return
	}
	if msg.err != nil {
		m.log.Error("window read failed", zap.Int64("offset", msg.offset), zap.Error(msg.err))
		m.setError("read failed: " + msg.err.Error())
		return
	}
	m.win = window{offset: msg.offset, version: msg.version, data: msg.data}
}
