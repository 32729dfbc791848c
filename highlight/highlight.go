package highlight

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/hexed/rangeset"
	"github.com/iw2rmb/hexed/viewport"
)

// Kind names what a span marks.
type Kind uint8

const (
	KindNone Kind = iota
	KindNewline
	KindZero
	KindMatch
	KindEdit
	KindDiff
	KindCursor
	KindCursorInactive
	KindCursorEdit
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNewline:
		return "newline"
	case KindZero:
		return "zero"
	case KindMatch:
		return "match"
	case KindEdit:
		return "edit"
	case KindDiff:
		return "diff"
	case KindCursor:
		return "cursor"
	case KindCursorInactive:
		return "cursor-inactive"
	case KindCursorEdit:
		return "cursor-edit"
	default:
		return "unknown"
	}
}

type StyleSpan struct {
	Kind  Kind
	Style lipgloss.Style
}

// Span styles the bytes of Interval.
type Span struct {
	rangeset.Interval
	StyleSpan
}

// Data is the read-only view of file content a highlighter may use.
type Data interface {
	Read(offset, length int64) ([]byte, error)
	Size() int64
	PendingRanges(iv rangeset.Interval) []rangeset.Interval
}

type Context struct {
	Data    Data
	Cursor  viewport.Cursor
	Focused bool
}

// Highlighter annotates the bytes of iv. Spans outside iv are clipped.
type Highlighter interface {
	Annotate(iv rangeset.Interval, ctx Context) ([]Span, error)
}

// HighlighterFunc adapts a function to Highlighter.
type HighlighterFunc func(iv rangeset.Interval, ctx Context) ([]Span, error)

func (f HighlighterFunc) Annotate(iv rangeset.Interval, ctx Context) ([]Span, error) {
	return f(iv, ctx)
}

// At returns the span covering off in spans sorted by offset.
func At(spans []Span, off int64) (StyleSpan, bool) {
	lo, hi := 0, len(spans)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case off < spans[mid].Start:
			hi = mid
		case off >= spans[mid].End:
			lo = mid + 1
		default:
			return spans[mid].StyleSpan, true
		}
	}
	return StyleSpan{}, false
}
