package plink

import (
	"context"
	"fmt"
	"io"
	"strconv"
)

// Map columns in the marker (.bim) file to their positions
const (
	MarkerChromosome int = iota
	MarkerID
	MarkerCM
	MarkerBP
	MarkerAllele0
	MarkerAllele1
	markerFields
)

// Marker is one row of a .bim file.
type Marker struct {
	Chromosome int     // 23-26 for X, Y, XY and MT
	ID         string  // E.g., RSID
	CM         float64 // Genetic position in centiMorgans
	BP         uint64  // Labeled "position" by most applications
	Allele0    string  // Represented by 0 in the genotype data
	Allele1    string  // Represented by 1 in the genotype data
}

func parseMarker(cols []string) (Marker, error) {
	chr, err := ParseChromosome(cols[MarkerChromosome])
	if err != nil {
		return Marker{}, fmt.Errorf("invalid chromosome %q", cols[MarkerChromosome])
	}

	cm, err := strconv.ParseFloat(cols[MarkerCM], 64)
	if err != nil {
		return Marker{}, fmt.Errorf("invalid genetic position %q", cols[MarkerCM])
	}

	bp, err := strconv.ParseUint(cols[MarkerBP], 10, 64)
	if err != nil {
		return Marker{}, fmt.Errorf("invalid physical position %q", cols[MarkerBP])
	}

	return Marker{
		Chromosome: chr,
		ID:         cols[MarkerID],
		CM:         cm,
		BP:         bp,
		Allele0:    cols[MarkerAllele0],
		Allele1:    cols[MarkerAllele1],
	}, nil
}

func (m Marker) fields() []string {
	return []string{
		strconv.Itoa(m.Chromosome),
		m.ID,
		strconv.FormatFloat(m.CM, 'f', -1, 64),
		strconv.FormatUint(m.BP, 10),
		m.Allele0,
		m.Allele1,
	}
}

// Markers holds the rows of a marker file together with an index keyed on
// marker ID.
type Markers struct {
	Rows  []Marker
	index map[string]int
}

// NewMarkers wraps rows and indexes them by ID.
func NewMarkers(rows []Marker) *Markers {
	return &Markers{
		Rows:  rows,
		index: IndexMarkers(rows),
	}
}

// IndexMarkers maps marker IDs to row numbers. A repeated ID maps to its last
// row.
func IndexMarkers(rows []Marker) map[string]int {
	return indexBy(rows, func(m Marker) string { return m.ID })
}

// ReadMarkers parses a marker file from r. name is only used in errors.
func ReadMarkers(r io.Reader, name string) (*Markers, error) {
	rows, err := readRecords(r, name, markerFields, parseMarker)
	if err != nil {
		return nil, err
	}

	return NewMarkers(rows), nil
}

// LoadMarkers reads a local marker file.
func LoadMarkers(path string) (*Markers, error) {
	return Opener{}.LoadMarkers(context.Background(), path)
}

// LoadMarkers reads a marker file through the Opener.
func (o Opener) LoadMarkers(ctx context.Context, path string) (*Markers, error) {
	rows, err := loadRecords(ctx, o, path, markerFields, parseMarker)
	if err != nil {
		return nil, err
	}

	return NewMarkers(rows), nil
}

func (m *Markers) Len() int {
	return len(m.Rows)
}

// Index returns the ID -> row map built when the collection was created.
func (m *Markers) Index() map[string]int {
	return m.index
}

// Row returns the row of the marker with the given ID.
func (m *Markers) Row(id string) (int, error) {
	i, exists := m.index[id]
	if !exists {
		return 0, &UnknownIdentifierError{Kind: "marker", ID: id}
	}

	return i, nil
}

// GeneticPositions returns the centiMorgan position of every marker, in file
// order.
func (m *Markers) GeneticPositions() []float64 {
	out := make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		out[i] = row.CM
	}

	return out
}

func (m *Markers) Write(w io.Writer) error {
	return writeRows(w, m.Rows, Marker.fields)
}

// WriteMarkers writes markers to a local file in .bim layout.
func WriteMarkers(path string, m *Markers) error {
	return createFile(path, m.Write)
}
