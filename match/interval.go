package match

import (
	"github.com/biogo/store/interval"
)

// matchInterval is a match stored in the interval tree over its site range.
type matchInterval struct {
	id uintptr
	Match
}

// Overlap uses half-open site intervals.
func (m matchInterval) Overlap(b interval.IntRange) bool {
	return m.Begin < b.End && b.Start < m.End
}

func (m matchInterval) ID() uintptr {
	return m.id
}

func (m matchInterval) Range() interval.IntRange {
	return interval.IntRange{Start: m.Begin, End: m.End}
}

// siteQuery is a half-open site range used to search the tree.
type siteQuery struct {
	begin, end int
}

func (q siteQuery) Overlap(b interval.IntRange) bool {
	return q.begin < b.End && b.Start < q.end
}

// IntervalIndex holds the site intervals of matches in an augmented
// interval tree so that the matches overlapping any site range can be found
// in O(log M + k).
type IntervalIndex struct {
	tree    interval.IntTree
	matches []Match
}

func NewIntervalIndex() *IntervalIndex {
	return &IntervalIndex{}
}

// Insert adds the match (first, second) over sites [begin, end).
func (x *IntervalIndex) Insert(first, second, begin, end int) error {
	if begin >= end {
		return ErrEmptyInterval
	}

	m := Match{First: first, Second: second, Begin: begin, End: end}
	if err := x.tree.Insert(matchInterval{id: uintptr(len(x.matches)), Match: m}, false); err != nil {
		return err
	}
	x.matches = append(x.matches, m)

	return nil
}

func (x *IntervalIndex) Len() int {
	return x.tree.Len()
}

// CountOverlapping returns how many stored intervals share at least one site
// with [begin, end).
func (x *IntervalIndex) CountOverlapping(begin, end int) int {
	if begin >= end || x.tree.Len() == 0 {
		return 0
	}

	n := 0
	x.tree.DoMatching(func(interval.IntInterface) bool {
		n++
		return false
	}, siteQuery{begin: begin, end: end})

	return n
}

// Overlapping returns the matches that share at least one site with
// [begin, end), ordered by their first site.
func (x *IntervalIndex) Overlapping(begin, end int) []Match {
	out := make([]Match, 0)
	if begin >= end || x.tree.Len() == 0 {
		return out
	}

	x.tree.DoMatching(func(e interval.IntInterface) bool {
		out = append(out, e.(matchInterval).Match)
		return false
	}, siteQuery{begin: begin, end: end})

	return out
}

// Merge inserts every interval of other.
func (x *IntervalIndex) Merge(other *IntervalIndex) error {
	for _, m := range other.matches {
		if err := x.Insert(m.First, m.Second, m.Begin, m.End); err != nil {
			return err
		}
	}

	return nil
}

// Intervals indexes the site interval of every match it consumes.
type Intervals struct {
	index *IntervalIndex
}

func NewIntervals() *Intervals {
	return &Intervals{}
}

func (r *Intervals) Consume(first, second, begin, end int) {
	if r.index == nil {
		r.index = NewIntervalIndex()
	}
	if err := r.index.Insert(first, second, begin, end); err != nil {
		panic(err)
	}
}

// Index returns the interval index, empty when nothing was consumed.
func (r *Intervals) Index() *IntervalIndex {
	if r.index == nil {
		return NewIntervalIndex()
	}

	return r.index
}

// Merge adds the intervals of other.
func (r *Intervals) Merge(other *Intervals) {
	if other.index == nil {
		return
	}
	if r.index == nil {
		r.index = NewIntervalIndex()
	}
	if err := r.index.Merge(other.index); err != nil {
		panic(err)
	}
}
