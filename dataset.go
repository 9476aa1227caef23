package plink

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"cloud.google.com/go/storage"
)

// Dataset is a fully loaded plink set: markers, samples, optional populations
// and the genotype matrix, plus the set of haplotypes marked as queries.
type Dataset struct {
	Markers     *Markers
	Samples     *Samples
	Populations *Populations
	Genotypes   *Genotypes

	name      string
	positions []float64
	query     map[int]struct{}
}

// Options controls Open.
type Options struct {
	// Phased reads stub.hap instead of stub.bed.
	Phased bool

	// Populations also reads stub.reg and requires every sample to have a row
	// in it.
	Populations bool

	// Storage is used for gs:// stubs. May be nil for local files.
	Storage *storage.Client

	Verbose bool
}

// Assemble checks that the pieces of a plink set agree with each other and
// binds them into a Dataset. populations may be nil.
func Assemble(markers *Markers, samples *Samples, populations *Populations, genotypes *Genotypes) (*Dataset, error) {
	if genotypes.NSamples != samples.Len() {
		return nil, &CountMismatchError{What: "samples", Metadata: samples.Len(), Genotypes: genotypes.NSamples}
	}
	if genotypes.NMarkers != markers.Len() {
		return nil, &CountMismatchError{What: "markers", Metadata: markers.Len(), Genotypes: genotypes.NMarkers}
	}

	if populations != nil {
		for _, s := range samples.Rows {
			if _, exists := populations.Index()[s.IndividualID]; !exists {
				return nil, &MissingPopulationEntryError{SampleID: s.IndividualID}
			}
		}
	}

	return &Dataset{
		Markers:     markers,
		Samples:     samples,
		Populations: populations,
		Genotypes:   genotypes,
		positions:   markers.GeneticPositions(),
		query:       make(map[int]struct{}),
	}, nil
}

// Open reads stub.bim, stub.fam and stub.bed (or stub.hap), plus stub.reg
// when requested, and assembles them.
func Open(ctx context.Context, stub string, opts Options) (*Dataset, error) {
	opener := Opener{Storage: opts.Storage}

	markers, err := opener.LoadMarkers(ctx, stub+ExtMarkers)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		log.Printf("Read %d markers from %s\n", markers.Len(), stub+ExtMarkers)
	}

	samples, err := opener.LoadSamples(ctx, stub+ExtSamples)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		log.Printf("Read %d samples from %s\n", samples.Len(), stub+ExtSamples)
	}

	var populations *Populations
	if opts.Populations {
		populations, err = opener.LoadPopulations(ctx, stub+ExtPopulations)
		if err != nil {
			return nil, err
		}
		if opts.Verbose {
			log.Printf("Read %d population rows from %s\n", populations.Len(), stub+ExtPopulations)
		}
	}

	genotypePath := stub + ExtGenotypes
	if opts.Phased {
		genotypePath = stub + ExtHaplotypes
	}
	genotypes, err := opener.LoadGenotypes(ctx, genotypePath, samples.Len(), markers.Len())
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		log.Printf("Read %s genotypes (phased: %v) from %s\n", genotypes.Orientation, genotypes.Phased(), genotypePath)
	}

	ds, err := Assemble(markers, samples, populations, genotypes)
	if err != nil {
		return nil, err
	}
	ds.name = filepath.Base(stub)

	return ds, nil
}

// Name is the base name of the stub the dataset was opened from.
func (d *Dataset) Name() string {
	return d.name
}

func (d *Dataset) SetName(name string) {
	d.name = name
}

func (d *Dataset) NSamples() int {
	return d.Samples.Len()
}

func (d *Dataset) NHaplotypes() int {
	return 2 * d.Samples.Len()
}

// NSites is the number of markers.
func (d *Dataset) NSites() int {
	return d.Markers.Len()
}

// Haplotype returns the view of haplotype h, which is parent h%2 of sample
// h/2.
func (d *Dataset) Haplotype(h int) Haplotype {
	return d.Genotypes.HaplotypeView(h/2, h%2)
}

// Individual returns both haplotypes of sample i.
func (d *Dataset) Individual(i int) (Haplotype, Haplotype) {
	return d.Genotypes.HaplotypeView(i, 0), d.Genotypes.HaplotypeView(i, 1)
}

// HaplotypeID is the individual ID of the sample carrying haplotype h.
func (d *Dataset) HaplotypeID(h int) string {
	return d.Samples.Rows[h/2].IndividualID
}

// HaplotypeRegion is the region label of the sample carrying haplotype h, or
// the empty string when no populations were loaded.
func (d *Dataset) HaplotypeRegion(h int) string {
	if d.Populations == nil {
		return ""
	}

	// Assemble guarantees every sample resolves.
	region, _ := d.Populations.RegionOf(d.HaplotypeID(h))
	return region
}

// HaplotypePopulation is the population label of the sample carrying haplotype
// h, or the empty string when no populations were loaded.
func (d *Dataset) HaplotypePopulation(h int) string {
	if d.Populations == nil {
		return ""
	}

	population, _ := d.Populations.PopulationOf(d.HaplotypeID(h))
	return population
}

// SetQuery marks both haplotypes of each listed sample as queries. If any ID
// is unknown, nothing is marked.
func (d *Dataset) SetQuery(ids ...string) error {
	rows := make([]int, 0, len(ids))
	for _, id := range ids {
		row, err := d.Samples.Row(id)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	for _, row := range rows {
		d.query[2*row] = struct{}{}
		d.query[2*row+1] = struct{}{}
	}

	return nil
}

func (d *Dataset) SetQueryHaplotype(h int) {
	d.query[h] = struct{}{}
}

func (d *Dataset) ClearQuery() {
	d.query = make(map[int]struct{})
}

func (d *Dataset) IsQuery(h int) bool {
	_, exists := d.query[h]
	return exists
}

// QueryHaplotypes returns the marked haplotypes in ascending order.
func (d *Dataset) QueryHaplotypes() []int {
	out := make([]int, 0, len(d.query))
	for h := range d.query {
		out = append(out, h)
	}
	sort.Ints(out)

	return out
}

func (d *Dataset) MarkerRow(id string) (int, error) {
	return d.Markers.Row(id)
}

func (d *Dataset) SampleRow(id string) (int, error) {
	return d.Samples.Row(id)
}

// GeneticPositions returns the centiMorgan position of every marker. The slice
// is shared and must not be modified.
func (d *Dataset) GeneticPositions() []float64 {
	return d.positions
}

// GeneticLength is the centiMorgan distance covered by the half-open site
// interval [begin, end). An end equal to NSites is measured to the last marker.
// It panics when the interval lies outside of the sites.
func (d *Dataset) GeneticLength(begin, end int) float64 {
	if begin < 0 || begin >= end || end > len(d.positions) {
		panic(fmt.Sprintf("site interval [%d, %d) is outside of the %d sites", begin, end, len(d.positions)))
	}
	if end == len(d.positions) {
		end--
	}

	return d.positions[end] - d.positions[begin]
}
