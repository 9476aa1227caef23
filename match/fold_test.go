package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFoldCoancestry(t *testing.T) {
	// Haplotypes 0,1 belong to individual 0 and 2,3 to individual 1.
	m := mat.NewSymDense(4, []float64{
		0, 1, 2, 3,
		1, 0, 4, 5,
		2, 4, 0, 6,
		3, 5, 6, 0,
	})

	d, err := FoldCoancestry(m)
	require.NoError(t, err)

	n, _ := d.Dims()
	require.Equal(t, 2, n)
	assert.InDelta(t, 2.0, d.At(0, 0), 1e-12)
	assert.InDelta(t, 2+3+4+5.0, d.At(0, 1), 1e-12)
	assert.InDelta(t, 2+3+4+5.0, d.At(1, 0), 1e-12)
	assert.InDelta(t, 12.0, d.At(1, 1), 1e-12)

	_, err = FoldCoancestry(mat.NewSymDense(3, nil))
	assert.Equal(t, ErrOddHaplotypes, err)
}

func TestFoldCounts(t *testing.T) {
	c := NewCountMatrix(4)
	c.Set(0, 1, 1)
	c.Set(0, 2, 2)
	c.Set(0, 3, 3)
	c.Set(1, 2, 4)
	c.Set(1, 3, 5)
	c.Set(2, 3, 6)

	d, err := FoldCounts(c)
	require.NoError(t, err)
	require.Equal(t, 2, d.N())
	assert.Equal(t, uint64(2), d.At(0, 0))
	assert.Equal(t, uint64(14), d.At(0, 1))
	assert.Equal(t, uint64(12), d.At(1, 1))

	_, err = FoldCounts(NewCountMatrix(5))
	assert.Equal(t, ErrOddHaplotypes, err)
}

func TestFoldAgreesWithReducers(t *testing.T) {
	h := sixSamples()
	c, n := NewCoancestry(h), NewCount(h)

	_, err := Run(NewSliceSource([]Match{{0, 3, 0, 2}, {1, 2, 0, 5}, {0, 1, 3, 4}, {10, 11, 0, 1}}), c, n)
	require.NoError(t, err)

	dc, err := FoldCoancestry(c.Matrix())
	require.NoError(t, err)
	dn, err := FoldCounts(n.Matrix())
	require.NoError(t, err)

	assert.InDelta(t, 2+5.0, dc.At(0, 1), 1e-12)
	assert.InDelta(t, 2.0, dc.At(0, 0), 1e-12)
	assert.InDelta(t, 2.0, dc.At(5, 5), 1e-12)
	assert.Equal(t, uint64(2), dn.At(0, 1))
	assert.Equal(t, uint64(2), dn.At(0, 0))
	assert.Equal(t, uint64(0), dn.At(2, 3))
}
