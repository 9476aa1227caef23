package plink

import (
	"context"
	"io"
	"os"

	"github.com/carbocation/pfx"
)

// Genotypes is the packed two-bit genotype matrix of a .bed or .hap file.
type Genotypes struct {
	Magic1      byte
	Magic2      byte
	Orientation Orientation
	NSamples    int
	NMarkers    int
	RecordSize  int // Bytes per major-order record
	Data        []byte
}

// NewGenotypes allocates an all-zero genotype matrix. Phased matrices carry the
// .hap magic bytes.
func NewGenotypes(nSamples, nMarkers int, orientation Orientation, phased bool) *Genotypes {
	g := &Genotypes{
		Magic1:      BedMagic1,
		Magic2:      BedMagic2,
		Orientation: orientation,
		NSamples:    nSamples,
		NMarkers:    nMarkers,
	}
	if phased {
		g.Magic1, g.Magic2 = HapMagic1, HapMagic2
	}

	major, minor := orientation.dimensions(nSamples, nMarkers)
	g.RecordSize = RecordSize(minor)
	g.Data = make([]byte, major*g.RecordSize)

	return g
}

// OpenGenotypes attempts to read a local .bed or .hap file located at path.
func OpenGenotypes(path string, nSamples, nMarkers int) (*Genotypes, error) {
	file, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer file.Close()

	return ReadGenotypes(file, nSamples, nMarkers)
}

// LoadGenotypes reads a .bed or .hap file through the Opener.
func (o Opener) LoadGenotypes(ctx context.Context, path string, nSamples, nMarkers int) (*Genotypes, error) {
	rc, err := OpenInput(ctx, o.Storage, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ReadGenotypes(rc, nSamples, nMarkers)
}

// ReadGenotypes reads a three byte header followed by exactly the number of
// bytes implied by the header's orientation and the sample and marker counts.
// Short data yields ErrTruncatedFile and trailing data ErrOversizedFile.
func ReadGenotypes(r io.Reader, nSamples, nMarkers int) (*Genotypes, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, shortRead(err)
	}

	g := &Genotypes{
		Magic1:      header[0],
		Magic2:      header[1],
		Orientation: IndividualMajor,
		NSamples:    nSamples,
		NMarkers:    nMarkers,
	}
	if header[2] != 0 {
		g.Orientation = SNPMajor
	}

	if !g.validMagic() {
		return nil, &MagicError{Magic1: g.Magic1, Magic2: g.Magic2}
	}

	major, minor := g.Orientation.dimensions(nSamples, nMarkers)
	g.RecordSize = RecordSize(minor)
	g.Data = make([]byte, major*g.RecordSize)

	if _, err := io.ReadFull(r, g.Data); err != nil {
		return nil, shortRead(err)
	}

	// Check if we are at the end of the file
	extra := make([]byte, 1)
	n, err := io.ReadAtLeast(r, extra, 1)
	if n > 0 {
		return nil, ErrOversizedFile
	}
	if err != nil && err != io.EOF {
		return nil, pfx.Err(err)
	}

	return g, nil
}

func shortRead(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncatedFile
	}

	return pfx.Err(err)
}

func (g *Genotypes) validMagic() bool {
	return g.Magic1 == BedMagic1 && (g.Magic2 == BedMagic2 || g.Magic2 == HapMagic2)
}

// Phased reports whether the codes are phased haplotype pairs (.hap) rather
// than unphased genotypes (.bed).
func (g *Genotypes) Phased() bool {
	return g.Magic2 == HapMagic2
}

// Genotype returns the two-bit code for a sample at a marker, whatever the
// orientation.
func (g *Genotypes) Genotype(sample, marker int) byte {
	major, minor := g.Orientation.majorMinor(sample, marker)
	return Decode(g.Data, g.RecordSize, major, minor)
}

func (g *Genotypes) SetGenotype(sample, marker int, code byte) error {
	major, minor := g.Orientation.majorMinor(sample, marker)
	return Encode(g.Data, g.RecordSize, major, minor, code)
}

// Haplotype returns the allele (0 or 1) that parent 0 or parent 1 passed on
// at a marker. Only meaningful for phased data.
func (g *Genotypes) Haplotype(sample, marker, parent int) byte {
	return (g.Genotype(sample, marker) >> uint(parent)) & 1
}

// SetHaplotype replaces the allele of one parent at a marker, leaving the other
// parent's allele untouched.
func (g *Genotypes) SetHaplotype(sample, marker, parent int, bit byte) error {
	if bit > 1 || parent < 0 || parent > 1 {
		return ErrInvalidCode
	}

	code := g.Genotype(sample, marker)
	code = (code &^ (1 << uint(parent))) | (bit << uint(parent))

	return g.SetGenotype(sample, marker, code)
}

// Reorient returns a copy of the matrix stored in the requested orientation.
// Codes are unchanged.
func (g *Genotypes) Reorient(orientation Orientation) *Genotypes {
	out := NewGenotypes(g.NSamples, g.NMarkers, orientation, g.Phased())
	out.Magic1, out.Magic2 = g.Magic1, g.Magic2

	if orientation == g.Orientation {
		copy(out.Data, g.Data)
		return out
	}

	for i := 0; i < g.NSamples; i++ {
		for m := 0; m < g.NMarkers; m++ {
			// Codes read from g are always in range.
			_ = out.SetGenotype(i, m, g.Genotype(i, m))
		}
	}

	return out
}

// WriteTo writes the header and the packed data, returning the number of bytes
// written.
func (g *Genotypes) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write([]byte{g.Magic1, g.Magic2, byte(g.Orientation)})
	if err != nil {
		return int64(n), pfx.Err(err)
	}

	m, err := w.Write(g.Data)
	if err != nil {
		return int64(n + m), pfx.Err(err)
	}

	return int64(n + m), nil
}

// WriteGenotypes writes g to a local .bed or .hap file.
func WriteGenotypes(path string, g *Genotypes) error {
	return createFile(path, func(w io.Writer) error {
		_, err := g.WriteTo(w)
		return err
	})
}
