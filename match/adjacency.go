package match

import (
	"bufio"
	"fmt"
	"io"
)

// Adjacency writes each match as one edge line:
//
//	sample_a  sample_b  length  region_a  region_b[  begin  end]
//
// Writing stops at the first error, which Err reports.
type Adjacency struct {
	haps      Haplotypes
	n         int
	sites     int
	w         *bufio.Writer
	withSites bool
	err       error
}

func NewAdjacency(w io.Writer, h Haplotypes, withSites bool) *Adjacency {
	return &Adjacency{
		haps:      h,
		n:         h.NHaplotypes(),
		sites:     h.NSites(),
		w:         bufio.NewWriter(w),
		withSites: withSites,
	}
}

func (a *Adjacency) Consume(first, second, begin, end int) {
	checkMatch(a.n, a.sites, first, second, begin, end)

	if a.err != nil {
		return
	}

	_, a.err = fmt.Fprintf(a.w, "%s\t%s\t%1.4f\t%s\t%s",
		a.haps.HaplotypeID(first), a.haps.HaplotypeID(second),
		a.haps.GeneticLength(begin, end),
		a.haps.HaplotypeRegion(first), a.haps.HaplotypeRegion(second))
	if a.err != nil {
		return
	}

	if a.withSites {
		if _, a.err = fmt.Fprintf(a.w, "\t%d\t%d", begin, end); a.err != nil {
			return
		}
	}

	a.err = a.w.WriteByte('\n')
}

func (a *Adjacency) Err() error {
	return a.err
}

// Flush writes any buffered edges and reports the first error seen.
func (a *Adjacency) Flush() error {
	if a.err != nil {
		return a.err
	}
	a.err = a.w.Flush()

	return a.err
}
