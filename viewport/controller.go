package viewport

import (
	"math"

	"github.com/iw2rmb/hexed/rangeset"
)

const (
	DefaultBytesPerRow = 16
	DefaultRows        = 10
	DefaultWordSize    = 4
)

// Config configures a Controller. Zero values select the defaults.
type Config struct {
	FileLength  int64
	BytesPerRow int
	Rows        int
	WordSize    int
}

// Controller owns the cursor and the visible window.
type Controller struct {
	fileLen int64
	bpr     int64
	rows    int64
	word    int64

	top    int64 // first visible row
	cursor Cursor
}

func New(cfg Config) *Controller {
	c := &Controller{
		fileLen: max(0, cfg.FileLength),
		bpr:     DefaultBytesPerRow,
		rows:    DefaultRows,
		word:    DefaultWordSize,
	}
	if cfg.BytesPerRow > 0 {
		c.bpr = int64(cfg.BytesPerRow)
	}
	if cfg.Rows > 0 {
		c.rows = int64(cfg.Rows)
	}
	if cfg.WordSize > 0 {
		c.word = int64(cfg.WordSize)
	}
	return c
}

func (c *Controller) FileLength() int64 { return c.fileLen }
func (c *Controller) BytesPerRow() int  { return int(c.bpr) }
func (c *Controller) Rows() int         { return int(c.rows) }
func (c *Controller) TopRow() int64     { return c.top }
func (c *Controller) Cursor() Cursor    { return c.cursor }

// Viewport returns the visible window.
func (c *Controller) Viewport() Viewport {
	off := c.top * c.bpr
	if off >= c.fileLen {
		return Viewport{Offset: off, Length: 0}
	}
	return Viewport{Offset: off, Length: min(c.rows*c.bpr, c.fileLen-off)}
}

func (c *Controller) Window() rangeset.Interval { return c.Viewport().Interval() }

// CursorRowCol returns the cursor's absolute row and its column within the row.
func (c *Controller) CursorRowCol() (row, col int64) {
	return c.cursor.Offset / c.bpr, c.cursor.Offset % c.bpr
}

// OffsetAt maps a visible row and column to a file offset. ok is false when
// the cell is outside the window or past end of file.
func (c *Controller) OffsetAt(row, col int) (int64, bool) {
	if row < 0 || col < 0 || int64(row) >= c.rows || int64(col) >= c.bpr {
		return 0, false
	}
	off := (c.top+int64(row))*c.bpr + int64(col)
	if off >= c.fileLen {
		return 0, false
	}
	return off, true
}

// MoveCursor moves the cursor by delta bytes and scrolls the minimum needed
// to keep it visible.
func (c *Controller) MoveCursor(delta int64) {
	c.cursor.Offset = c.clampOffset(addSat(c.cursor.Offset, delta))
	c.follow()
}

// MoveRows moves the cursor by delta rows keeping its column. A move that
// would leave the file stops at the last row holding that column.
func (c *Controller) MoveRows(delta int64) {
	if c.fileLen == 0 {
		return
	}
	row, col := c.CursorRowCol()
	maxRow := (c.fileLen - 1 - col) / c.bpr
	row = clamp(addSat(row, delta), 0, maxRow)
	c.cursor.Offset = row*c.bpr + col
	c.follow()
}

// PageDown shifts the window down by one page and moves the cursor by the
// same number of bytes.
func (c *Controller) PageDown() { c.page(1) }

// PageUp shifts the window up by one page and moves the cursor by the same
// number of bytes.
func (c *Controller) PageUp() { c.page(-1) }

func (c *Controller) page(dir int64) {
	c.top = c.clampTop(c.top + dir*c.rows)
	c.cursor.Offset = c.clampOffset(addSat(c.cursor.Offset, dir*c.rows*c.bpr))
	c.follow()
}

func (c *Controller) HalfPageDown() { c.MoveRows(max(1, c.rows/2)) }
func (c *Controller) HalfPageUp()   { c.MoveRows(-max(1, c.rows/2)) }

func (c *Controller) WordForward()  { c.MoveCursor(c.word) }
func (c *Controller) WordBackward() { c.MoveCursor(-c.word) }

// JumpTo places the cursor at off (clamped) and centres the window on it.
func (c *Controller) JumpTo(off int64) {
	c.cursor.Offset = c.clampOffset(off)
	c.top = c.clampTop(c.cursor.Offset/c.bpr - c.rows/2)
}

// SetCursor places the cursor at off (clamped) with a minimal scroll.
func (c *Controller) SetCursor(off int64) {
	c.cursor.Offset = c.clampOffset(off)
	c.follow()
}

// Home moves to the first byte of the cursor's row.
func (c *Controller) Home() {
	c.cursor.Offset -= c.cursor.Offset % c.bpr
	c.follow()
}

// End moves to the last byte of the cursor's row.
func (c *Controller) End() {
	row := c.cursor.Offset / c.bpr
	c.cursor.Offset = c.clampOffset(row*c.bpr + c.bpr - 1)
	c.follow()
}

func (c *Controller) FileStart() {
	c.cursor.Offset = 0
	c.top = 0
}

func (c *Controller) FileEnd() {
	c.cursor.Offset = c.clampOffset(c.fileLen - 1)
	c.follow()
}

// ScrollRows moves the window by delta rows. The cursor stays put unless it
// would leave the window, in which case it is carried to the nearest visible
// row in the same column.
func (c *Controller) ScrollRows(delta int64) {
	if c.fileLen == 0 {
		return
	}
	c.top = c.clampTop(addSat(c.top, delta))
	row, col := c.CursorRowCol()
	switch {
	case row < c.top:
		row = c.top
	case row >= c.top+c.rows:
		row = c.top + c.rows - 1
	default:
		return
	}
	c.cursor.Offset = c.clampOffset(row*c.bpr + col)
}

// Resize changes the number of visible rows, keeping the cursor on the same
// screen row where possible.
func (c *Controller) Resize(rows int) {
	rel := c.cursor.Offset/c.bpr - c.top
	c.rows = max(1, int64(rows))
	c.top = c.clampTop(c.cursor.Offset/c.bpr - min(rel, c.rows-1))
	c.follow()
}

// SetBytesPerRow changes the row width, keeping the cursor on the same screen
// row where possible.
func (c *Controller) SetBytesPerRow(n int) {
	if n <= 0 {
		return
	}
	rel := c.cursor.Offset/c.bpr - c.top
	c.bpr = int64(n)
	c.top = c.clampTop(c.cursor.Offset/c.bpr - min(rel, c.rows-1))
	c.follow()
}

// SetFileLength updates the file length and re-clamps cursor and window.
func (c *Controller) SetFileLength(n int64) {
	c.fileLen = max(0, n)
	c.cursor.Offset = c.clampOffset(c.cursor.Offset)
	c.top = c.clampTop(c.top)
	c.follow()
}

func (c *Controller) SetMode(m Mode) { c.cursor.Mode = m }

func (c *Controller) totalRows() int64 {
	if c.fileLen == 0 {
		return 0
	}
	return (c.fileLen-1)/c.bpr + 1
}

func (c *Controller) clampTop(top int64) int64 {
	return clamp(top, 0, max(0, c.totalRows()-c.rows))
}

func (c *Controller) clampOffset(off int64) int64 {
	if c.fileLen == 0 {
		return 0
	}
	return clamp(off, 0, c.fileLen-1)
}

// follow scrolls the least amount that brings the cursor row into view.
func (c *Controller) follow() {
	row := c.cursor.Offset / c.bpr
	switch {
	case row < c.top:
		c.top = row
	case row >= c.top+c.rows:
		c.top = row - c.rows + 1
	}
	c.top = c.clampTop(c.top)
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// addSat adds without wrapping around.
func addSat(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	if b < 0 && a < math.MinInt64-b {
		return math.MinInt64
	}
	return a + b
}
