package match

import (
	"bufio"
	"fmt"
	"io"
)

// Region sums, per region label, the genetic length a single query haplotype
// shares with haplotypes from that region. Matches that do not involve the
// query haplotype are ignored.
type Region struct {
	haps   Haplotypes
	n      int
	sites  int
	query  int
	totals map[string]float64
}

// NewRegion requires exactly one haplotype of h to be marked as a query.
func NewRegion(h Haplotypes) (*Region, error) {
	queries := h.QueryHaplotypes()
	switch {
	case len(queries) == 0:
		return nil, ErrNoQuery
	case len(queries) > 1:
		return nil, ErrMultipleQueries
	}

	return NewRegionFor(h, queries[0]), nil
}

// NewRegionFor reports on query regardless of which haplotypes of h are
// marked.
func NewRegionFor(h Haplotypes, query int) *Region {
	if query < 0 || query >= h.NHaplotypes() {
		panic(fmt.Sprintf("query haplotype %d is outside of the %d haplotypes", query, h.NHaplotypes()))
	}

	return &Region{haps: h, n: h.NHaplotypes(), sites: h.NSites(), query: query}
}

// Query is the haplotype the totals are reported for.
func (r *Region) Query() int {
	return r.query
}

func (r *Region) Consume(first, second, begin, end int) {
	checkMatch(r.n, r.sites, first, second, begin, end)

	var partner int
	switch r.query {
	case first:
		partner = second
	case second:
		partner = first
	default:
		return
	}

	if r.totals == nil {
		r.totals = make(map[string]float64)
	}
	r.totals[r.haps.HaplotypeRegion(partner)] += r.haps.GeneticLength(begin, end)
}

// Totals maps each region label to the shared length accumulated so far.
// Regions that share nothing are absent. It is nil when nothing was consumed.
func (r *Region) Totals() map[string]float64 {
	return r.totals
}

// Merge adds the totals of other.
func (r *Region) Merge(other *Region) {
	if other.query != r.query {
		panic(fmt.Sprintf("cannot merge the report on haplotype %d into that on %d", other.query, r.query))
	}
	if other.totals == nil {
		return
	}
	if r.totals == nil {
		r.totals = make(map[string]float64, len(other.totals))
	}
	for region, total := range other.totals {
		r.totals[region] += total
	}
}

// WriteReport writes one line per region, in the order given:
//
//	name  query_sample  query_region  region  total[  total/members]
//
// The last column is only written when counts, the number of members of each
// region, is non-nil. Regions without sharing report 0.
func (r *Region) WriteReport(w io.Writer, name string, regions []string, counts map[string]int) error {
	bw := bufio.NewWriter(w)

	sample := r.haps.HaplotypeID(r.query)
	sampleRegion := r.haps.HaplotypeRegion(r.query)
	for _, region := range regions {
		total := r.totals[region]
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%1.5f", name, sample, sampleRegion, region, total); err != nil {
			return err
		}

		if counts != nil {
			normalized := 0.0
			if members := counts[region]; members > 0 {
				normalized = total / float64(members)
			}
			if _, err := fmt.Fprintf(bw, "\t%1.5f", normalized); err != nil {
				return err
			}
		}

		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Regions keeps one Region per query haplotype over the same matches.
type Regions []*Region

// NewRegions reports on each of the queries separately.
func NewRegions(h Haplotypes, queries ...int) Regions {
	out := make(Regions, 0, len(queries))
	for _, q := range queries {
		out = append(out, NewRegionFor(h, q))
	}

	return out
}

func (rs Regions) Consume(first, second, begin, end int) {
	for _, r := range rs {
		r.Consume(first, second, begin, end)
	}
}

// Merge adds the totals of other, which must report on the same queries in
// the same order.
func (rs Regions) Merge(other Regions) {
	if len(other) != len(rs) {
		panic(fmt.Sprintf("cannot merge %d region reports into %d", len(other), len(rs)))
	}
	for i, r := range rs {
		r.Merge(other[i])
	}
}

// WriteReport writes the report of each query haplotype in turn.
func (rs Regions) WriteReport(w io.Writer, name string, regions []string, counts map[string]int) error {
	for _, r := range rs {
		if err := r.WriteReport(w, name, regions, counts); err != nil {
			return err
		}
	}

	return nil
}
