package rangeset

import (
	"errors"
	"fmt"
)

// ErrInvalidInterval reports an empty, reversed, or negative interval.
var ErrInvalidInterval = errors.New("invalid interval")

// Interval is a half-open byte range [Start, End).
// A valid interval satisfies 0 <= Start < End.
type Interval struct {
	Start int64
	End   int64
}

// NewInterval returns [start, end) or ErrInvalidInterval.
func NewInterval(start, end int64) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Interval{}, fmt.Errorf("%w: %s", ErrInvalidInterval, iv)
	}
	return iv, nil
}

// MustInterval is like NewInterval but panics on invalid input.
func MustInterval(start, end int64) Interval {
	iv, err := NewInterval(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

// OfLength returns [start, start+n). ok is false when the result is not valid.
func OfLength(start, n int64) (iv Interval, ok bool) {
	if n <= 0 || start < 0 {
		return Interval{}, false
	}
	iv = Interval{Start: start, End: start + n}
	return iv, iv.Valid()
}

func (iv Interval) Valid() bool { return iv.Start >= 0 && iv.Start < iv.End }

func (iv Interval) Len() int64 {
	if iv.End <= iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

func (iv Interval) Contains(off int64) bool { return off >= iv.Start && off < iv.End }

// Overlaps reports whether iv and o share at least one offset.
func (iv Interval) Overlaps(o Interval) bool { return iv.Start < o.End && o.Start < iv.End }

// Intersect returns the common part of iv and o.
func (iv Interval) Intersect(o Interval) (Interval, bool) {
	out := Interval{Start: max(iv.Start, o.Start), End: min(iv.End, o.End)}
	if out.Start >= out.End {
		return Interval{}, false
	}
	return out, true
}

func (iv Interval) String() string { return fmt.Sprintf("[%d, %d)", iv.Start, iv.End) }
