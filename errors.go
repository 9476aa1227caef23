package plink

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedFile is returned when binary genotype data ends before the
	// number of bytes implied by the sample and marker counts.
	ErrTruncatedFile = errors.New("binary genotype data is truncated")

	// ErrOversizedFile is returned when bytes remain after the expected end of
	// binary genotype data.
	ErrOversizedFile = errors.New("binary genotype data is larger than expected")

	// ErrInvalidCode is returned when a genotype code outside of [0,3] is
	// written.
	ErrInvalidCode = errors.New("genotype code must be between 0 and 3")
)

// IOError reports a missing or unreadable input. It is recoverable: the caller
// can fix the path and try again.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports a malformed metadata row. Loading stops at the first one.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

// MagicError is returned when the header of binary genotype data does not
// start with a known pair of magic bytes.
type MagicError struct {
	Magic1, Magic2 byte
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("The binary genotype header is expected to begin with %v or %v, but instead began with %v", []byte{BedMagic1, BedMagic2}, []byte{HapMagic1, HapMagic2}, []byte{e.Magic1, e.Magic2})
}

// CountMismatchError is returned when the genotype data and the metadata
// disagree about how many samples or markers exist.
type CountMismatchError struct {
	What      string
	Metadata  int
	Genotypes int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%d %s in metadata, but genotype data holds %d", e.Metadata, e.What, e.Genotypes)
}

// MissingPopulationEntryError is returned when a sample has no row in the
// population file.
type MissingPopulationEntryError struct {
	SampleID string
}

func (e *MissingPopulationEntryError) Error() string {
	return fmt.Sprintf("sample %s has no entry in the population file", e.SampleID)
}

// UnknownIdentifierError is returned when a sample or marker identifier is not
// present in an index.
type UnknownIdentifierError struct {
	Kind string
	ID   string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("cannot find %s with id %s", e.Kind, e.ID)
}
