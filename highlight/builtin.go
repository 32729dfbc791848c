package highlight

import (
	"github.com/iw2rmb/hexed/rangeset"
	"github.com/iw2rmb/hexed/viewport"
)

// Edits marks bytes with pending, uncommitted edits.
type Edits struct {
	style StyleSpan
}

func NewEdits(theme Theme) *Edits { return &Edits{style: theme.span(KindEdit)} }

func (e *Edits) Annotate(iv rangeset.Interval, ctx Context) ([]Span, error) {
	if ctx.Data == nil {
		return nil, nil
	}
	ranges := ctx.Data.PendingRanges(iv)
	spans := make([]Span, 0, len(ranges))
	for _, r := range ranges {
		spans = append(spans, Span{Interval: r, StyleSpan: e.style})
	}
	return spans, nil
}

// DiffSource supplies externally computed difference ranges.
type DiffSource interface {
	DiffRanges(iv rangeset.Interval) []rangeset.Interval
}

// DiffFunc adapts a function to DiffSource.
type DiffFunc func(iv rangeset.Interval) []rangeset.Interval

func (f DiffFunc) DiffRanges(iv rangeset.Interval) []rangeset.Interval { return f(iv) }

// Diff marks the ranges reported by a DiffSource. It computes nothing itself.
type Diff struct {
	src   DiffSource
	style StyleSpan
}

func NewDiff(theme Theme, src DiffSource) *Diff {
	return &Diff{src: src, style: theme.span(KindDiff)}
}

func (d *Diff) Annotate(iv rangeset.Interval, _ Context) ([]Span, error) {
	if d.src == nil {
		return nil, nil
	}
	var spans []Span
	for _, r := range d.src.DiffRanges(iv) {
		if !r.Valid() {
			continue
		}
		spans = append(spans, Span{Interval: r, StyleSpan: d.style})
	}
	return spans, nil
}

// Cursor marks the cursor byte.
type Cursor struct {
	theme Theme
}

func NewCursor(theme Theme) *Cursor { return &Cursor{theme: theme} }

func (c *Cursor) Annotate(iv rangeset.Interval, ctx Context) ([]Span, error) {
	off := ctx.Cursor.Offset
	if !iv.Contains(off) {
		return nil, nil
	}
	if ctx.Data != nil && off >= ctx.Data.Size() {
		return nil, nil
	}

	kind := KindCursorInactive
	if ctx.Focused {
		kind = KindCursor
		if ctx.Cursor.Mode == viewport.ModeEdit {
			kind = KindCursorEdit
		}
	}
	return []Span{{Interval: rangeset.Interval{Start: off, End: off + 1}, StyleSpan: c.theme.span(kind)}}, nil
}

// ByteClass marks runs of bytes accepted by a predicate.
type ByteClass struct {
	match func(byte) bool
	style StyleSpan
}

func NewByteClass(kind Kind, style StyleSpan, match func(byte) bool) *ByteClass {
	style.Kind = kind
	return &ByteClass{match: match, style: style}
}

// NewNewlines marks LF and CR bytes.
func NewNewlines(theme Theme) *ByteClass {
	return NewByteClass(KindNewline, theme.span(KindNewline), func(b byte) bool { return b == '\n' || b == '\r' })
}

func NewZeros(theme Theme) *ByteClass {
	return NewByteClass(KindZero, theme.span(KindZero), func(b byte) bool { return b == 0 })
}

func (bc *ByteClass) Annotate(iv rangeset.Interval, ctx Context) ([]Span, error) {
	if ctx.Data == nil || bc.match == nil {
		return nil, nil
	}
	data, err := ctx.Data.Read(iv.Start, iv.Len())
	if err != nil {
		return nil, err
	}

	var spans []Span
	runStart := -1
	for i := 0; i <= len(data); i++ {
		hit := i < len(data) && bc.match(data[i])
		switch {
		case hit && runStart < 0:
			runStart = i
		case !hit && runStart >= 0:
			spans = append(spans, Span{
				Interval:  rangeset.Interval{Start: iv.Start + int64(runStart), End: iv.Start + int64(i)},
				StyleSpan: bc.style,
			})
			runStart = -1
		}
	}
	return spans, nil
}

// NewDefault returns a pipeline with newline, search, edit and cursor
// highlighters registered, plus a diff highlighter when diff is non-nil.
// The returned Find controls the search pattern.
func NewDefault(theme Theme, diff DiffSource, opts ...Option) (*Pipeline, *Find) {
	p := NewPipeline(opts...)
	p.Add(StageByteClass, NewNewlines(theme))
	find := NewFind(theme)
	p.Add(StageSearch, find)
	p.Add(StageEdits, NewEdits(theme))
	if diff != nil {
		p.Add(StageDiff, NewDiff(theme, diff))
	}
	p.Add(StageCursor, NewCursor(theme))
	return p, find
}
