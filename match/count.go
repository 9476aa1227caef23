package match

import (
	"bufio"
	"io"
	"strconv"
)

// CountMatrix is a symmetric n x n matrix of counts. Only the upper triangle
// is stored.
type CountMatrix struct {
	n    int
	data []uint64
}

func NewCountMatrix(n int) *CountMatrix {
	return &CountMatrix{
		n:    n,
		data: make([]uint64, n*(n+1)/2),
	}
}

// N is the dimension of the matrix.
func (c *CountMatrix) N() int {
	return c.n
}

func (c *CountMatrix) index(i, j int) int {
	if i > j {
		i, j = j, i
	}
	if i < 0 || j >= c.n {
		panic("match: count matrix index out of range")
	}

	return i*c.n - i*(i-1)/2 + (j - i)
}

func (c *CountMatrix) At(i, j int) uint64 {
	return c.data[c.index(i, j)]
}

// Add adds v to both (i, j) and (j, i).
func (c *CountMatrix) Add(i, j int, v uint64) {
	c.data[c.index(i, j)] += v
}

func (c *CountMatrix) Set(i, j int, v uint64) {
	c.data[c.index(i, j)] = v
}

// AddMatrix adds other element-wise. Both matrices must share a dimension.
func (c *CountMatrix) AddMatrix(other *CountMatrix) {
	if other.n != c.n {
		panic("match: count matrix dimension mismatch")
	}
	for i, v := range other.data {
		c.data[i] += v
	}
}

// WriteTo writes one tab-separated row per line.
func (c *CountMatrix) WriteTo(w io.Writer) (int64, error) {
	return writeMatrix(w, c.n, func(dst []byte, i, j int) []byte {
		return strconv.AppendUint(dst, c.At(i, j), 10)
	})
}

// writeMatrix writes an n x n matrix whose cells are rendered by cell.
func writeMatrix(w io.Writer, n int, cell func(dst []byte, i, j int) []byte) (int64, error) {
	bw := bufio.NewWriter(w)

	var written int64
	line := make([]byte, 0, 16*n)
	for i := 0; i < n; i++ {
		line = line[:0]
		for j := 0; j < n; j++ {
			if j > 0 {
				line = append(line, '\t')
			}
			line = cell(line, i, j)
		}
		line = append(line, '\n')

		k, err := bw.Write(line)
		written += int64(k)
		if err != nil {
			return written, err
		}
	}

	return written, bw.Flush()
}

// Count tallies how many matches each pair of haplotypes shares.
type Count struct {
	n      int
	sites  int
	matrix *CountMatrix
}

func NewCount(h Haplotypes) *Count {
	return &Count{n: h.NHaplotypes(), sites: h.NSites()}
}

func (c *Count) Consume(first, second, begin, end int) {
	checkMatch(c.n, c.sites, first, second, begin, end)

	if c.matrix == nil {
		c.matrix = NewCountMatrix(c.n)
	}
	c.matrix.Add(first, second, 1)
}

// Allocated reports whether any match has been consumed.
func (c *Count) Allocated() bool {
	return c.matrix != nil
}

// Matrix returns the counts, all zero when nothing was consumed.
func (c *Count) Matrix() *CountMatrix {
	if c.matrix == nil {
		return NewCountMatrix(c.n)
	}

	return c.matrix
}

// Merge adds the counts of other, which must cover the same haplotypes.
func (c *Count) Merge(other *Count) {
	if other.matrix == nil {
		return
	}
	if c.matrix == nil {
		c.matrix = NewCountMatrix(c.n)
	}
	c.matrix.AddMatrix(other.matrix)
}

func (c *Count) WriteTo(w io.Writer) (int64, error) {
	return c.Matrix().WriteTo(w)
}
