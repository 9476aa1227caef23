package match

// Haplotypes is what reducers need to know about the dataset the matches were
// found in. *plink.Dataset satisfies it.
type Haplotypes interface {
	NHaplotypes() int
	NSites() int
	GeneticLength(begin, end int) float64
	HaplotypeID(h int) string
	HaplotypeRegion(h int) string
	IsQuery(h int) bool
	QueryHaplotypes() []int
}

// Reducer folds each match it is handed into its own aggregate.
type Reducer interface {
	Consume(first, second, begin, end int)
}

// ReducerFunc adapts a function to the Reducer interface.
type ReducerFunc func(first, second, begin, end int)

func (f ReducerFunc) Consume(first, second, begin, end int) {
	f(first, second, begin, end)
}

type tee []Reducer

func (t tee) Consume(first, second, begin, end int) {
	for _, r := range t {
		r.Consume(first, second, begin, end)
	}
}

// Tee hands every match to each of the reducers, in order.
func Tee(reducers ...Reducer) Reducer {
	if len(reducers) == 1 {
		return reducers[0]
	}

	return tee(reducers)
}

// Run drains src into the reducers and returns the number of matches read.
func Run(src Source, reducers ...Reducer) (int, error) {
	r := Tee(reducers...)

	n := 0
	for m := src.Read(); m != nil; m = src.Read() {
		r.Consume(m.First, m.Second, m.Begin, m.End)
		n++
	}

	return n, src.Error()
}
