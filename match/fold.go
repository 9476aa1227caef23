package match

import (
	"gonum.org/v1/gonum/mat"
)

// foldingMatrix is the 2k x k matrix F summing haplotypes 2i and 2i+1 into
// individual i.
func foldingMatrix(nHaplotypes int) *mat.Dense {
	k := nHaplotypes / 2
	f := mat.NewDense(nHaplotypes, k, nil)
	for i := 0; i < k; i++ {
		f.Set(2*i, i, 1)
		f.Set(2*i+1, i, 1)
	}

	return f
}

// FoldCoancestry collapses a haplotype coancestry matrix M into an individual
// one, D = Fᵀ M F. Off the diagonal, D[i][j] sums the four haplotype pairs of
// individuals i and j. On the diagonal, D[k][k] is the sharing between the two
// haplotypes of individual k, counted in both directions.
func FoldCoancestry(m *mat.SymDense) (*mat.SymDense, error) {
	n, _ := m.Dims()
	if n%2 != 0 {
		return nil, ErrOddHaplotypes
	}

	f := foldingMatrix(n)

	var ftm, d mat.Dense
	ftm.Mul(f.T(), m)
	d.Mul(&ftm, f)

	k := n / 2
	out := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			out.SetSym(i, j, d.At(i, j))
		}
	}

	return out, nil
}

// FoldCounts applies the same folding as FoldCoancestry to match counts.
func FoldCounts(c *CountMatrix) (*CountMatrix, error) {
	n := c.N()
	if n%2 != 0 {
		return nil, ErrOddHaplotypes
	}

	k := n / 2
	out := NewCountMatrix(k)
	for i := 0; i < k; i++ {
		out.Set(i, i, c.At(2*i, 2*i+1)+c.At(2*i+1, 2*i))
		for j := i + 1; j < k; j++ {
			out.Set(i, j, c.At(2*i, 2*j)+c.At(2*i, 2*j+1)+c.At(2*i+1, 2*j)+c.At(2*i+1, 2*j+1))
		}
	}

	return out, nil
}
