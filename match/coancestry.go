package match

import (
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Coancestry sums the genetic length of every match shared by each pair of
// haplotypes. The matrix is allocated on the first match. The diagonal is
// never written.
type Coancestry struct {
	haps   Haplotypes
	n      int
	sites  int
	matrix *mat.SymDense
}

func NewCoancestry(h Haplotypes) *Coancestry {
	return &Coancestry{haps: h, n: h.NHaplotypes(), sites: h.NSites()}
}

func (c *Coancestry) Consume(first, second, begin, end int) {
	checkMatch(c.n, c.sites, first, second, begin, end)

	if c.matrix == nil {
		c.matrix = mat.NewSymDense(c.n, nil)
	}
	c.matrix.SetSym(first, second, c.matrix.At(first, second)+c.haps.GeneticLength(begin, end))
}

// Allocated reports whether any match has been consumed.
func (c *Coancestry) Allocated() bool {
	return c.matrix != nil
}

// Matrix returns the coancestry matrix, all zero when nothing was consumed.
// It is nil when there are no haplotypes.
func (c *Coancestry) Matrix() *mat.SymDense {
	if c.matrix == nil {
		if c.n == 0 {
			return nil
		}
		return mat.NewSymDense(c.n, nil)
	}

	return c.matrix
}

// Merge adds the coancestry of other, which must cover the same haplotypes.
func (c *Coancestry) Merge(other *Coancestry) {
	if other.matrix == nil {
		return
	}
	if c.matrix == nil {
		c.matrix = mat.NewSymDense(c.n, nil)
	}
	c.matrix.AddSym(c.matrix, other.matrix)
}

// WriteTo writes one tab-separated row per line with four decimals.
func (c *Coancestry) WriteTo(w io.Writer) (int64, error) {
	m := c.Matrix()
	if m == nil {
		return 0, nil
	}

	return WriteSymmetric(w, m)
}

// WriteSymmetric writes m one tab-separated row per line with four decimals.
func WriteSymmetric(w io.Writer, m mat.Symmetric) (int64, error) {
	n, _ := m.Dims()
	return writeMatrix(w, n, func(dst []byte, i, j int) []byte {
		return strconv.AppendFloat(dst, m.At(i, j), 'f', 4, 64)
	})
}
