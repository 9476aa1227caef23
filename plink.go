package plink

// Header bytes for binary genotype data. Both .bed and .hap data share the
// first magic byte; the second one says whether the two-bit codes are unphased
// genotypes or phased haplotype pairs.
const (
	BedMagic1 byte = 108
	BedMagic2 byte = 27
	HapMagic1 byte = 108
	HapMagic2 byte = 211
)

// headerSize is the number of bytes preceding the packed genotype data.
const headerSize = 3

// Unphased genotype codes.
const (
	BedHomozygous0 byte = iota
	BedMissing
	BedHeterozygous
	BedHomozygous1
)

// Phased haplotype codes, named Hap<parent 1><parent 0>: bit 0 of the code
// holds the allele of parent 0 and bit 1 the allele of parent 1.
const (
	Hap00 byte = iota
	Hap01
	Hap10
	Hap11
)

// UnknownAllele is the allele symbol used by plink for an allele that has not
// been observed.
const UnknownAllele = "0"

// File extensions making up a plink set on disk.
const (
	ExtMarkers     = ".bim"
	ExtSamples     = ".fam"
	ExtPopulations = ".reg"
	ExtGenotypes   = ".bed"
	ExtHaplotypes  = ".hap"
)

// RecordSize returns the number of bytes needed to hold nMinor two-bit codes.
func RecordSize(nMinor int) int {
	return nMinor/4 + boolToInt(nMinor%4 != 0)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
