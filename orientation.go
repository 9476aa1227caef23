package plink

// Orientation is the third header byte of a .bed/.hap file and says which
// dimension of the genotype matrix is stored contiguously.
type Orientation byte

const (
	// IndividualMajor stores one record per sample; markers are the minor
	// dimension.
	IndividualMajor Orientation = iota
	// SNPMajor stores one record per marker; samples are the minor dimension.
	SNPMajor
)

func (o Orientation) String() string {
	switch o {
	case IndividualMajor:
		return "IndividualMajor"
	case SNPMajor:
		return "SNPMajor"

	default:
		return "Illegal selection"
	}
}

// majorMinor maps a (sample, marker) cell onto the (major, minor) coordinates
// used by the blob.
func (o Orientation) majorMinor(sample, marker int) (int, int) {
	if o == SNPMajor {
		return marker, sample
	}

	return sample, marker
}

// dimensions returns the number of records (major) and the number of cells per
// record (minor) for a matrix of nSamples x nMarkers.
func (o Orientation) dimensions(nSamples, nMarkers int) (int, int) {
	return o.majorMinor(nSamples, nMarkers)
}
