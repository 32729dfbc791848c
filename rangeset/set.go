package rangeset

import "github.com/google/btree"

const treeDegree = 16

// Entry is one stored interval and its payload.
type Entry[T any] struct {
	Interval
	Value T
}

// Set maps non-overlapping intervals to payloads.
//
// Entries are indexed by start offset in a B-tree, so a query costs
// O(log n + k) for k intersecting entries and an insert or remove costs
// O(log n + m) for m touched entries.
type Set[T any] struct {
	tree *btree.BTreeG[Entry[T]]
	eq   func(a, b T) bool
}

// New returns an empty set whose payloads are compared with ==.
func New[T comparable]() *Set[T] {
	return NewFunc(func(a, b T) bool { return a == b })
}

// NewFunc returns an empty set that merges adjacent entries when eq reports
// their payloads equal. A nil eq never merges.
func NewFunc[T any](eq func(a, b T) bool) *Set[T] {
	if eq == nil {
		eq = func(T, T) bool { return false }
	}
	return &Set[T]{
		tree: btree.NewG(treeDegree, func(a, b Entry[T]) bool { return a.Start < b.Start }),
		eq:   eq,
	}
}

func pivot[T any](off int64) Entry[T] {
	return Entry[T]{Interval: Interval{Start: off}}
}

// Len returns the number of stored entries.
func (s *Set[T]) Len() int { return s.tree.Len() }

func (s *Set[T]) Empty() bool { return s.tree.Len() == 0 }

func (s *Set[T]) Clear() { s.tree.Clear(false) }

// Insert overlays v on iv. Invalid intervals are ignored.
func (s *Set[T]) Insert(iv Interval, v T) {
	if !iv.Valid() {
		return
	}

	merged := iv
	for _, e := range s.collect(iv, true) {
		s.tree.Delete(e)

		// Every touching entry ends at or after iv.Start and starts at or
		// before iv.End, so a kept left part always ends at iv.Start and a
		// kept right part always starts at iv.End.
		if e.Start < iv.Start {
			if s.eq(e.Value, v) {
				merged.Start = e.Start
			} else {
				s.tree.ReplaceOrInsert(Entry[T]{Interval: Interval{Start: e.Start, End: iv.Start}, Value: e.Value})
			}
		}
		if e.End > iv.End {
			if s.eq(e.Value, v) {
				merged.End = e.End
			} else {
				s.tree.ReplaceOrInsert(Entry[T]{Interval: Interval{Start: iv.End, End: e.End}, Value: e.Value})
			}
		}
	}
	s.tree.ReplaceOrInsert(Entry[T]{Interval: merged, Value: v})
}

// Remove deletes all payload inside iv. Partially covered entries are
// trimmed; the resulting gap is not merged with anything.
func (s *Set[T]) Remove(iv Interval) {
	if !iv.Valid() {
		return
	}
	for _, e := range s.collect(iv, false) {
		s.tree.Delete(e)
		if e.Start < iv.Start {
			s.tree.ReplaceOrInsert(Entry[T]{Interval: Interval{Start: e.Start, End: iv.Start}, Value: e.Value})
		}
		if e.End > iv.End {
			s.tree.ReplaceOrInsert(Entry[T]{Interval: Interval{Start: iv.End, End: e.End}, Value: e.Value})
		}
	}
}

// Query returns the entries intersecting iv in ascending order, each
// truncated to iv.
func (s *Set[T]) Query(iv Interval) []Entry[T] {
	if !iv.Valid() {
		return nil
	}
	hits := s.collect(iv, false)
	for i := range hits {
		hits[i].Interval, _ = hits[i].Interval.Intersect(iv)
	}
	return hits
}

// All returns every entry in ascending order.
func (s *Set[T]) All() []Entry[T] {
	out := make([]Entry[T], 0, s.tree.Len())
	s.tree.Ascend(func(e Entry[T]) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Covers reports whether every offset of iv is stored.
func (s *Set[T]) Covers(iv Interval) bool {
	if !iv.Valid() {
		return false
	}
	next := iv.Start
	for _, e := range s.Query(iv) {
		if e.Start != next {
			return false
		}
		next = e.End
	}
	return next == iv.End
}

// Bounds returns the smallest interval enclosing every entry.
func (s *Set[T]) Bounds() (Interval, bool) {
	first, ok := s.tree.Min()
	if !ok {
		return Interval{}, false
	}
	last, _ := s.tree.Max()
	return Interval{Start: first.Start, End: last.End}, true
}

// collect returns the entries intersecting iv, or also those merely adjacent
// to it when touching is set, in ascending order.
func (s *Set[T]) collect(iv Interval, touching bool) []Entry[T] {
	var out []Entry[T]
	hit := func(e Entry[T]) bool {
		if touching {
			return e.End >= iv.Start && e.Start <= iv.End
		}
		return e.End > iv.Start && e.Start < iv.End
	}

	// At most one entry starting at or before iv.Start can reach into iv.
	// When touching, the entry ending exactly at iv.Start counts too, and it
	// sits behind one that starts at iv.Start.
	var before []Entry[T]
	s.tree.DescendLessOrEqual(pivot[T](iv.Start), func(e Entry[T]) bool {
		if hit(e) {
			before = append(before, e)
		}
		return touching && e.Start == iv.Start
	})
	for i := len(before) - 1; i >= 0; i-- {
		out = append(out, before[i])
	}
	s.tree.AscendGreaterOrEqual(pivot[T](iv.Start+1), func(e Entry[T]) bool {
		if !hit(e) {
			return false
		}
		out = append(out, e)
		return true
	})
	return out
}
