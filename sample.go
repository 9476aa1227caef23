package plink

import (
	"context"
	"io"
)

// Map columns in the sample (.fam) file to their positions
const (
	SampleFamilyID int = iota
	SampleIndividualID
	SamplePaternalID
	SampleMaternalID
	SampleSex
	SamplePhenotype
	sampleFields
)

// Sample is one row of a .fam file. Codes are kept as the strings found in the
// file so that they are written back unchanged.
type Sample struct {
	FamilyID     string
	IndividualID string
	PaternalID   string
	MaternalID   string
	Sex          string
	Phenotype    string
}

func parseSample(cols []string) (Sample, error) {
	return Sample{
		FamilyID:     cols[SampleFamilyID],
		IndividualID: cols[SampleIndividualID],
		PaternalID:   cols[SamplePaternalID],
		MaternalID:   cols[SampleMaternalID],
		Sex:          cols[SampleSex],
		Phenotype:    cols[SamplePhenotype],
	}, nil
}

func (s Sample) fields() []string {
	return []string{s.FamilyID, s.IndividualID, s.PaternalID, s.MaternalID, s.Sex, s.Phenotype}
}

// Samples holds the rows of a sample file together with an index keyed on
// individual ID.
type Samples struct {
	Rows  []Sample
	index map[string]int
}

func NewSamples(rows []Sample) *Samples {
	return &Samples{
		Rows:  rows,
		index: IndexSamples(rows),
	}
}

// IndexSamples maps individual IDs to row numbers. A repeated ID maps to its
// last row.
func IndexSamples(rows []Sample) map[string]int {
	return indexBy(rows, func(s Sample) string { return s.IndividualID })
}

func ReadSamples(r io.Reader, name string) (*Samples, error) {
	rows, err := readRecords(r, name, sampleFields, parseSample)
	if err != nil {
		return nil, err
	}

	return NewSamples(rows), nil
}

func LoadSamples(path string) (*Samples, error) {
	return Opener{}.LoadSamples(context.Background(), path)
}

func (o Opener) LoadSamples(ctx context.Context, path string) (*Samples, error) {
	rows, err := loadRecords(ctx, o, path, sampleFields, parseSample)
	if err != nil {
		return nil, err
	}

	return NewSamples(rows), nil
}

func (s *Samples) Len() int {
	return len(s.Rows)
}

func (s *Samples) Index() map[string]int {
	return s.index
}

// Row returns the row of the sample with the given individual ID.
func (s *Samples) Row(id string) (int, error) {
	i, exists := s.index[id]
	if !exists {
		return 0, &UnknownIdentifierError{Kind: "sample", ID: id}
	}

	return i, nil
}

func (s *Samples) Write(w io.Writer) error {
	return writeRows(w, s.Rows, Sample.fields)
}

func WriteSamples(path string, s *Samples) error {
	return createFile(path, s.Write)
}
