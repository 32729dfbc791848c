package hexview

import "github.com/iw2rmb/hexed/viewport"

// ViewportState is a host-facing snapshot of the visible window.
type ViewportState struct {
	Offset      int64
	Length      int64
	TopRow      int64
	Rows        int
	BytesPerRow int
}

func (m Model) ViewportState() ViewportState {
	vp := m.ctl.Viewport()
	return ViewportState{
		Offset:      vp.Offset,
		Length:      vp.Length,
		TopRow:      m.ctl.TopRow(),
		Rows:        m.ctl.Rows(),
		BytesPerRow: m.ctl.BytesPerRow(),
	}
}

// ScreenToOffset maps view-local cell coordinates to the byte drawn there.
// ok is false for cells that show no byte.
func (m Model) ScreenToOffset(x, y int) (off int64, col Column, ok bool) {
	if y < 0 || y >= m.ctl.Rows() || x < 0 {
		return 0, ColumnHex, false
	}
	l := m.layout()
	c, col, ok := l.columnAt(x)
	if !ok {
		return 0, ColumnHex, false
	}
	off, ok = m.ctl.OffsetAt(y, c)
	return off, col, ok
}

// OffsetToScreen returns where byte off is drawn in col. ok is false when the
// byte is not visible.
func (m Model) OffsetToScreen(off int64, col Column) (x, y int, ok bool) {
	vp := m.ctl.Viewport()
	if !vp.Contains(off) {
		return 0, 0, false
	}
	bpr := int64(m.ctl.BytesPerRow())
	rel := off - vp.Offset
	l := m.layout()
	c := int(rel % bpr)
	if col == ColumnASCII {
		return l.asciiX(c), int(rel / bpr), true
	}
	return l.hexX(c), int(rel / bpr), true
}

// layout holds the horizontal geometry of one row:
//
//	00000010: 00 11 22 33 44 55 66 77  88 99 aa bb cc dd ee ff  ..".3DUfw........
type layout struct {
	addrDigits int
	bpr        int
}

func (m Model) layout() layout {
	digits := 8
	for n := m.ctl.FileLength() >> 32; n > 0; n >>= 4 {
		digits++
	}
	return layout{addrDigits: digits, bpr: m.ctl.BytesPerRow()}
}

func (l layout) hexStart() int { return l.addrDigits + 2 }

// hexX is the cell of the first digit of column c. Every group of eight
// bytes is followed by an extra space.
func (l layout) hexX(c int) int { return l.hexStart() + 3*c + c/8 }

func (l layout) hexWidth() int { return 3*l.bpr + (l.bpr-1)/8 }

func (l layout) asciiStart() int { return l.hexStart() + l.hexWidth() + 1 }

func (l layout) asciiX(c int) int { return l.asciiStart() + c }

func (l layout) width() int { return l.asciiStart() + l.bpr }

func (l layout) columnAt(x int) (int, Column, bool) {
	if x >= l.asciiStart() && x < l.asciiStart()+l.bpr {
		return x - l.asciiStart(), ColumnASCII, true
	}
	for c := 0; c < l.bpr; c++ {
		if hx := l.hexX(c); x >= hx && x < hx+2 {
			return c, ColumnHex, true
		}
	}
	return 0, ColumnHex, false
}

// cursorModeLabel is shown in the status line.
func cursorModeLabel(c viewport.Cursor, col Column) string {
	label := "HEX"
	if col == ColumnASCII {
		label = "ASCII"
	}
	if c.Mode == viewport.ModeEdit {
		return "EDIT " + label
	}
	return label
}
