package match

// DefaultMinLength is the shortest match, in cM, that the command line tools
// keep unless told otherwise.
const DefaultMinLength = 0.5

// MinLength forwards only matches at least Min cM long.
type MinLength struct {
	Min     float64
	Dropped int

	haps Haplotypes
	next Reducer
}

func NewMinLength(h Haplotypes, min float64, next ...Reducer) *MinLength {
	return &MinLength{
		Min:  min,
		haps: h,
		next: Tee(next...),
	}
}

func (f *MinLength) Consume(first, second, begin, end int) {
	checkMatch(f.haps.NHaplotypes(), f.haps.NSites(), first, second, begin, end)

	if f.haps.GeneticLength(begin, end) < f.Min {
		f.Dropped++
		return
	}

	f.next.Consume(first, second, begin, end)
}

type filteredSource struct {
	Source
	haps Haplotypes
	min  float64
}

// FilterSource wraps src so that matches shorter than min cM are skipped.
func FilterSource(src Source, h Haplotypes, min float64) Source {
	return &filteredSource{Source: src, haps: h, min: min}
}

func (s *filteredSource) Read() *Match {
	for m := s.Source.Read(); m != nil; m = s.Source.Read() {
		if s.haps.GeneticLength(m.Begin, m.End) >= s.min {
			return m
		}
	}

	return nil
}

type querySource struct {
	Source
	haps Haplotypes
}

// QuerySource wraps src so that only matches involving a query haplotype are
// read.
func QuerySource(src Source, h Haplotypes) Source {
	return &querySource{Source: src, haps: h}
}

func (s *querySource) Read() *Match {
	for m := s.Source.Read(); m != nil; m = s.Source.Read() {
		if s.haps.IsQuery(m.First) || s.haps.IsQuery(m.Second) {
			return m
		}
	}

	return nil
}
