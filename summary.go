package plink

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the size and genetic extent of a dataset.
type Summary struct {
	Name        string
	NSamples    int
	NHaplotypes int
	NSites      int

	// TotalCM is the genetic distance from the first to the last marker.
	TotalCM float64

	// Spacing between consecutive markers on the same chromosome, in cM.
	MeanSpacing float64
	SDSpacing   float64

	CompressedSize   int
	UncompressedSize int

	// RegionCounts is nil when no populations were loaded.
	RegionCounts map[string]int
}

// Summarize computes the summary of ds. Store sizes are those of the zstd
// compressed haplotype store for the dataset.
func Summarize(ds *Dataset) (*Summary, error) {
	var buf bytes.Buffer
	if err := WriteHaplotypeStore(&buf, ds, CompressionZStandard); err != nil {
		return nil, err
	}
	store, err := ReadHaplotypeStore(&buf)
	if err != nil {
		return nil, err
	}

	return SummarizeStore(ds, store)
}

// SummarizeStore computes the summary of ds, taking sizes from an existing
// haplotype store.
func SummarizeStore(ds *Dataset, store *HaplotypeStore) (*Summary, error) {
	if store.NHaplotypes != ds.NHaplotypes() || store.NSites != ds.NSites() {
		return nil, fmt.Errorf("haplotype store holds %d haplotypes of %d sites, dataset has %d of %d",
			store.NHaplotypes, store.NSites, ds.NHaplotypes(), ds.NSites())
	}

	if _, err := store.Uncompress(); err != nil {
		return nil, err
	}

	s := &Summary{
		Name:             ds.Name(),
		NSamples:         ds.NSamples(),
		NHaplotypes:      ds.NHaplotypes(),
		NSites:           ds.NSites(),
		CompressedSize:   store.CompressedSize(),
		UncompressedSize: store.UncompressedSize(),
	}

	cm := ds.GeneticPositions()
	if len(cm) > 0 {
		s.TotalCM = cm[len(cm)-1] - cm[0]
	}

	spacing := make([]float64, 0, len(cm))
	for i := 1; i < len(cm); i++ {
		if ds.Markers.Rows[i].Chromosome != ds.Markers.Rows[i-1].Chromosome {
			continue
		}
		spacing = append(spacing, cm[i]-cm[i-1])
	}
	switch len(spacing) {
	case 0:
	case 1:
		s.MeanSpacing = spacing[0]
	default:
		s.MeanSpacing, s.SDSpacing = stat.MeanStdDev(spacing, nil)
	}

	if ds.Populations != nil {
		s.RegionCounts = ds.Populations.RegionCounts()
	}

	return s, nil
}

// Write prints the summary as tab-separated label/value lines. Region counts
// follow in sorted region order when present.
func (s *Summary) Write(w io.Writer, regions []string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Number of samples:\t%d\n", s.NSamples)
	fmt.Fprintf(bw, "Number of haplotypes:\t%d\n", s.NHaplotypes)
	fmt.Fprintf(bw, "Number of sites:\t%d\n", s.NSites)
	fmt.Fprintf(bw, "Total recombination distance:\t%1.5f\n", s.TotalCM)
	fmt.Fprintf(bw, "Mean marker spacing:\t%1.5f\n", s.MeanSpacing)
	fmt.Fprintf(bw, "SD of marker spacing:\t%1.5f\n", s.SDSpacing)
	fmt.Fprintf(bw, "Size of compressed data:\t%d\n", s.CompressedSize)
	fmt.Fprintf(bw, "Size of uncompressed data:\t%d\n", s.UncompressedSize)

	for _, region := range regions {
		fmt.Fprintf(bw, "%s\t%d\n", region, s.RegionCounts[region])
	}

	return bw.Flush()
}
