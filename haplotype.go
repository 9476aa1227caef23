package plink

// Haplotype is a lazy view of the alleles one parent passed on to one sample.
// Nothing is copied until it is materialized.
type Haplotype struct {
	genotypes *Genotypes
	sample    int
	parent    int
}

// HaplotypeView returns the haplotype that parent (0 or 1) passed on to
// sample.
func (g *Genotypes) HaplotypeView(sample, parent int) Haplotype {
	return Haplotype{genotypes: g, sample: sample, parent: parent}
}

// Len is the number of markers.
func (h Haplotype) Len() int {
	return h.genotypes.NMarkers
}

// At returns the allele (0 or 1) at a marker.
func (h Haplotype) At(marker int) byte {
	return h.genotypes.Haplotype(h.sample, marker, h.parent)
}

// String renders the haplotype as a string of '0' and '1' characters.
func (h Haplotype) String() string {
	out := h.Bytes()
	for i := range out {
		out[i] += '0'
	}

	return string(out)
}

// Bytes returns one 0 or 1 per marker.
func (h Haplotype) Bytes() []byte {
	out := make([]byte, h.Len())
	for m := range out {
		out[m] = h.At(m)
	}

	return out
}

// Words packs the haplotype 64 markers per word. Marker m is bit m%64 of word
// m/64. Trailing bits of the last word are zero.
func (h Haplotype) Words() []uint64 {
	n := h.Len()
	out := make([]uint64, (n+63)/64)
	for m := 0; m < n; m++ {
		if h.At(m) == 1 {
			out[m/64] |= uint64(1) << uint(m%64)
		}
	}

	return out
}
