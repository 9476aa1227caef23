package match

import "errors"

var (
	// ErrNoQuery is returned by NewRegion when no haplotype is marked as a
	// query.
	ErrNoQuery = errors.New("no query haplotypes are marked")

	// ErrMultipleQueries is returned by NewRegion when more than one haplotype
	// is marked as a query.
	ErrMultipleQueries = errors.New("more than one query haplotype is marked")

	// ErrEmptyInterval is returned when an interval with begin >= end is
	// inserted into an IntervalIndex.
	ErrEmptyInterval = errors.New("interval is empty")

	// ErrOddHaplotypes is returned when folding a haplotype matrix whose
	// dimension is not a multiple of two.
	ErrOddHaplotypes = errors.New("cannot fold an odd number of haplotypes into individuals")

	ErrInvalidWindow = errors.New("pileup window width and stride must be positive")
)
