package plink

import (
	"context"
	"io"
	"sort"
)

// Map the two columns that a population (.reg) file adds after the sample
// columns
const (
	PopulationLabel int = sampleFields + iota
	PopulationRegion
	populationFields
)

// Population is one row of a .reg file: a sample plus the population and
// geographic region it was drawn from.
type Population struct {
	Sample
	Population string
	Region     string
}

func parsePopulation(cols []string) (Population, error) {
	s, err := parseSample(cols)
	if err != nil {
		return Population{}, err
	}

	return Population{
		Sample:     s,
		Population: cols[PopulationLabel],
		Region:     cols[PopulationRegion],
	}, nil
}

func (p Population) fields() []string {
	return append(p.Sample.fields(), p.Population, p.Region)
}

// Populations holds the rows of a population file together with an index
// keyed on individual ID.
type Populations struct {
	Rows  []Population
	index map[string]int
}

func NewPopulations(rows []Population) *Populations {
	return &Populations{
		Rows:  rows,
		index: IndexPopulations(rows),
	}
}

// IndexPopulations maps individual IDs to row numbers. A repeated ID maps to
// its last row.
func IndexPopulations(rows []Population) map[string]int {
	return indexBy(rows, func(p Population) string { return p.IndividualID })
}

func ReadPopulations(r io.Reader, name string) (*Populations, error) {
	rows, err := readRecords(r, name, populationFields, parsePopulation)
	if err != nil {
		return nil, err
	}

	return NewPopulations(rows), nil
}

func LoadPopulations(path string) (*Populations, error) {
	return Opener{}.LoadPopulations(context.Background(), path)
}

func (o Opener) LoadPopulations(ctx context.Context, path string) (*Populations, error) {
	rows, err := loadRecords(ctx, o, path, populationFields, parsePopulation)
	if err != nil {
		return nil, err
	}

	return NewPopulations(rows), nil
}

func (p *Populations) Len() int {
	return len(p.Rows)
}

func (p *Populations) Index() map[string]int {
	return p.index
}

func (p *Populations) Row(id string) (int, error) {
	i, exists := p.index[id]
	if !exists {
		return 0, &UnknownIdentifierError{Kind: "sample", ID: id}
	}

	return i, nil
}

// RegionOf returns the region label of the sample with the given individual
// ID.
func (p *Populations) RegionOf(id string) (string, error) {
	i, err := p.Row(id)
	if err != nil {
		return "", err
	}

	return p.Rows[i].Region, nil
}

// PopulationOf returns the population label of the sample with the given
// individual ID.
func (p *Populations) PopulationOf(id string) (string, error) {
	i, err := p.Row(id)
	if err != nil {
		return "", err
	}

	return p.Rows[i].Population, nil
}

// Regions returns the distinct region labels, sorted.
func (p *Populations) Regions() []string {
	counts := p.RegionCounts()
	out := make([]string, 0, len(counts))
	for region := range counts {
		out = append(out, region)
	}
	sort.Strings(out)

	return out
}

// RegionCounts returns the number of rows carrying each region label.
func (p *Populations) RegionCounts() map[string]int {
	counts := make(map[string]int)
	for _, row := range p.Rows {
		counts[row.Region]++
	}

	return counts
}

func (p *Populations) Write(w io.Writer) error {
	return writeRows(w, p.Rows, Population.fields)
}

func WritePopulations(path string, p *Populations) error {
	return createFile(path, p.Write)
}
