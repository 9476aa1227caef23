// Package match reduces streams of pairwise haplotype matches into
// relatedness matrices, per-region sharing totals, adjacency lists and
// interval pileups.
//
// A match (first, second, begin, end) says that haplotypes first and second
// are identical over the half-open site interval [begin, end). Matches come
// from a Source and are handed to one or more Reducers, each of which keeps
// its own aggregate.
package match

import (
	"fmt"
)

// Match is a shared segment between two haplotypes over the sites
// [Begin, End).
type Match struct {
	First  int
	Second int
	Begin  int
	End    int
}

func (m Match) String() string {
	return fmt.Sprintf("%d\t%d\t%d\t%d", m.First, m.Second, m.Begin, m.End)
}

// checkMatch panics when a match breaks the contract every Source must honor.
func checkMatch(nHaplotypes, nSites, first, second, begin, end int) {
	switch {
	case first < 0 || first >= nHaplotypes || second < 0 || second >= nHaplotypes:
		panic(fmt.Sprintf("match (%d, %d) is outside of the %d haplotypes", first, second, nHaplotypes))
	case first == second:
		panic(fmt.Sprintf("haplotype %d matched with itself", first))
	case begin >= end:
		panic(fmt.Sprintf("match (%d, %d) has an empty site interval [%d, %d)", first, second, begin, end))
	case begin < 0 || end > nSites:
		panic(fmt.Sprintf("match (%d, %d) site interval [%d, %d) is outside of the %d sites", first, second, begin, end, nSites))
	}
}
