package match

import (
	"sort"
)

// fakeHaplotypes is a dataset of len(ids) samples, each carrying two
// haplotypes, over sites at the given cM positions.
type fakeHaplotypes struct {
	cm      []float64
	ids     []string
	regions []string
	query   map[int]bool
}

func newFakeHaplotypes(cm []float64, ids, regions []string) *fakeHaplotypes {
	return &fakeHaplotypes{cm: cm, ids: ids, regions: regions, query: map[int]bool{}}
}

func (f *fakeHaplotypes) NHaplotypes() int { return 2 * len(f.ids) }
func (f *fakeHaplotypes) NSites() int       { return len(f.cm) }

func (f *fakeHaplotypes) GeneticLength(begin, end int) float64 {
	if end == len(f.cm) {
		end--
	}
	return f.cm[end] - f.cm[begin]
}

func (f *fakeHaplotypes) HaplotypeID(h int) string     { return f.ids[h/2] }
func (f *fakeHaplotypes) HaplotypeRegion(h int) string { return f.regions[h/2] }
func (f *fakeHaplotypes) IsQuery(h int) bool           { return f.query[h] }

func (f *fakeHaplotypes) QueryHaplotypes() []int {
	out := []int{}
	for h := range f.query {
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}

func (f *fakeHaplotypes) setQuery(haps ...int) {
	for _, h := range haps {
		f.query[h] = true
	}
}

// sixSamples has 12 haplotypes over 10 sites one cM apart.
func sixSamples() *fakeHaplotypes {
	return newFakeHaplotypes(
		[]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		[]string{"A", "B", "C", "D", "E", "F"},
		[]string{"North", "North", "South", "South", "East", "North"},
	)
}
