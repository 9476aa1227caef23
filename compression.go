package plink

// Compression indicates how (and whether) the payload of a haplotype store is
// compressed.
type Compression uint32

const (
	CompressionDisabled Compression = iota
	CompressionZStandard
)

func (c Compression) String() string {
	switch c {
	case CompressionDisabled:
		return "none"
	case CompressionZStandard:
		return "zstd"
	}

	return "unknown"
}
