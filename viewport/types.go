package viewport

import "github.com/iw2rmb/hexed/rangeset"

// Mode is the cursor's editing mode.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Cursor is the byte the user is positioned on.
type Cursor struct {
	Offset int64
	Mode   Mode
}

// Viewport is the byte window currently shown.
// 0 <= Offset and Offset+Length <= file length.
type Viewport struct {
	Offset int64
	Length int64
}

// Interval returns the window as [Offset, Offset+Length). The result is not
// Valid when the window is empty.
func (v Viewport) Interval() rangeset.Interval {
	return rangeset.Interval{Start: v.Offset, End: v.Offset + v.Length}
}

func (v Viewport) Contains(off int64) bool {
	return off >= v.Offset && off < v.Offset+v.Length
}
