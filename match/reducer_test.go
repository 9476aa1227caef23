package match

import (
	"bytes"
	"testing"

	"github.com/carbocation/plink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoByFour(t *testing.T) *plink.Dataset {
	markers := plink.NewMarkers([]plink.Marker{
		{Chromosome: 1, ID: "m1", CM: 0},
		{Chromosome: 1, ID: "m2", CM: 1},
		{Chromosome: 1, ID: "m3", CM: 2.5},
		{Chromosome: 1, ID: "m4", CM: 4},
	})
	samples := plink.NewSamples([]plink.Sample{
		{FamilyID: "F1", IndividualID: "S1"},
		{FamilyID: "F2", IndividualID: "S2"},
	})
	populations := plink.NewPopulations([]plink.Population{
		{Sample: samples.Rows[0], Population: "GBR", Region: "Europe"},
		{Sample: samples.Rows[1], Population: "YRI", Region: "Africa"},
	})
	// Unphased, individual-major: one byte of four codes per sample.
	blob := []byte{plink.BedMagic1, plink.BedMagic2, 0, 0xe4, 0x1b}
	g, err := plink.ReadGenotypes(bytes.NewReader(blob), 2, 4)
	require.NoError(t, err)
	require.False(t, g.Phased())
	require.Equal(t, plink.IndividualMajor, g.Orientation)
	assert.Equal(t, byte(3), g.Genotype(0, 3))
	assert.Equal(t, byte(0), g.Genotype(1, 3))

	ds, err := plink.Assemble(markers, samples, populations, g)
	require.NoError(t, err)

	return ds
}

func TestCoancestryEndToEnd(t *testing.T) {
	ds := twoByFour(t)
	c := NewCoancestry(ds)

	n, err := Run(NewSliceSource([]Match{{First: 0, Second: 2, Begin: 0, End: 3}}), c)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	m := c.Matrix()
	assert.Equal(t, 4.0, m.At(0, 2))
	assert.Equal(t, 4.0, m.At(2, 0))
	for h := 0; h < ds.NHaplotypes(); h++ {
		assert.Equal(t, 0.0, m.At(h, h))
	}

	var buf bytes.Buffer
	_, err = c.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t,
		"0.0000\t0.0000\t4.0000\t0.0000\n"+
			"0.0000\t0.0000\t0.0000\t0.0000\n"+
			"4.0000\t0.0000\t0.0000\t0.0000\n"+
			"0.0000\t0.0000\t0.0000\t0.0000\n",
		buf.String())
}

func TestCoancestrySymmetricZeroDiagonal(t *testing.T) {
	h := sixSamples()
	c := NewCoancestry(h)
	assert.False(t, c.Allocated())

	matches := []Match{
		{0, 5, 0, 4}, {5, 0, 2, 9}, {3, 11, 1, 2}, {7, 6, 0, 10}, {1, 2, 4, 8}, {2, 1, 0, 1},
	}
	_, err := Run(NewSliceSource(matches), c)
	require.NoError(t, err)
	assert.True(t, c.Allocated())

	m := c.Matrix()
	for i := 0; i < h.NHaplotypes(); i++ {
		assert.Equal(t, 0.0, m.At(i, i))
		for j := 0; j < h.NHaplotypes(); j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
		}
	}
	assert.Equal(t, 4.0+7.0, m.At(0, 5))
	assert.Equal(t, 9.0, m.At(6, 7)) // end == nsites is measured to the last site
	assert.Equal(t, 4.0+1.0, m.At(1, 2))
}

func TestCoancestryUnallocated(t *testing.T) {
	c := NewCoancestry(sixSamples())
	m := c.Matrix()
	n, _ := m.Dims()
	assert.Equal(t, 12, n)
	assert.Equal(t, 0.0, m.At(3, 4))
	assert.False(t, c.Allocated())
}

func TestCount(t *testing.T) {
	h := sixSamples()
	c := NewCount(h)

	_, err := Run(NewSliceSource([]Match{{0, 1, 0, 2}, {1, 0, 3, 5}, {4, 9, 0, 1}}), c)
	require.NoError(t, err)

	m := c.Matrix()
	assert.Equal(t, uint64(2), m.At(0, 1))
	assert.Equal(t, uint64(2), m.At(1, 0))
	assert.Equal(t, uint64(1), m.At(9, 4))
	assert.Equal(t, uint64(0), m.At(0, 0))

	var buf bytes.Buffer
	_, err = NewCount(newFakeHaplotypes([]float64{0, 1}, []string{"A"}, []string{"R"})).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "0\t0\n0\t0\n", buf.String())
}

func TestCountMatrixIndex(t *testing.T) {
	c := NewCountMatrix(5)
	for i := 0; i < 5; i++ {
		for j := i; j < 5; j++ {
			c.Set(i, j, uint64(10*i+j))
		}
	}
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			lo, hi := i, j
			if lo > hi {
				lo, hi = hi, lo
			}
			assert.Equal(t, uint64(10*lo+hi), c.At(i, j))
		}
	}
}

func TestRegion(t *testing.T) {
	h := sixSamples()
	h.setQuery(0) // sample A, North

	r, err := NewRegion(h)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Query())

	matches := []Match{
		{0, 4, 0, 2},  // C, South: 2
		{5, 0, 0, 3},  // C, South: 3
		{0, 10, 2, 3}, // F, North: 1
		{8, 0, 1, 5},  // E, East: 4
		{1, 4, 0, 9},  // other haplotype of A: ignored
		{4, 6, 0, 9},  // no query: ignored
	}
	_, err = Run(NewSliceSource(matches), r)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"South": 5, "North": 1, "East": 4}, r.Totals())

	var buf bytes.Buffer
	regions := []string{"East", "North", "South", "West"}
	require.NoError(t, r.WriteReport(&buf, "cohort", regions, nil))
	assert.Equal(t,
		"cohort\tA\tNorth\tEast\t4.00000\n"+
			"cohort\tA\tNorth\tNorth\t1.00000\n"+
			"cohort\tA\tNorth\tSouth\t5.00000\n"+
			"cohort\tA\tNorth\tWest\t0.00000\n",
		buf.String())

	buf.Reset()
	counts := map[string]int{"East": 1, "North": 3, "South": 2}
	require.NoError(t, r.WriteReport(&buf, "cohort", regions[2:], counts))
	assert.Equal(t,
		"cohort\tA\tNorth\tSouth\t5.00000\t2.50000\n"+
			"cohort\tA\tNorth\tWest\t0.00000\t0.00000\n",
		buf.String())
}

func TestRegionQueryErrors(t *testing.T) {
	h := sixSamples()
	_, err := NewRegion(h)
	assert.Equal(t, ErrNoQuery, err)

	h.setQuery(2, 5)
	_, err = NewRegion(h)
	assert.Equal(t, ErrMultipleQueries, err)

	// Both haplotypes of one sample are still two queries.
	h = sixSamples()
	h.setQuery(0, 1)
	_, err = NewRegion(h)
	assert.Equal(t, ErrMultipleQueries, err)

	h = sixSamples()
	h.setQuery(3)
	r, err := NewRegion(h)
	require.NoError(t, err)
	r.Consume(2, 0, 0, 1) // haplotype 2 is not a query
	assert.Nil(t, r.Totals())
}

func TestRegionsPerHaplotype(t *testing.T) {
	h := sixSamples()
	rs := NewRegions(h, 0, 1)

	_, err := Run(NewSliceSource([]Match{{0, 4, 0, 3}, {1, 5, 0, 2}, {1, 8, 0, 1}}), rs)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"South": 3}, rs[0].Totals())
	assert.Equal(t, map[string]float64{"South": 2, "East": 1}, rs[1].Totals())

	var buf bytes.Buffer
	require.NoError(t, rs.WriteReport(&buf, "cohort", []string{"East", "South"}, nil))
	assert.Equal(t,
		"cohort\tA\tNorth\tEast\t0.00000\n"+
			"cohort\tA\tNorth\tSouth\t3.00000\n"+
			"cohort\tA\tNorth\tEast\t1.00000\n"+
			"cohort\tA\tNorth\tSouth\t2.00000\n",
		buf.String())

	assert.Panics(t, func() { rs.Merge(NewRegions(h, 0)) })
	assert.Panics(t, func() { rs[0].Merge(rs[1]) })
	assert.Panics(t, func() { NewRegionFor(h, 12) })
}

func TestAdjacency(t *testing.T) {
	h := sixSamples()

	var buf bytes.Buffer
	a := NewAdjacency(&buf, h, false)
	_, err := Run(NewSliceSource([]Match{{0, 4, 1, 3}, {11, 6, 0, 10}}), a)
	require.NoError(t, err)
	require.NoError(t, a.Flush())
	assert.Equal(t, "A\tC\t2.0000\tNorth\tSouth\nF\tD\t9.0000\tNorth\tSouth\n", buf.String())

	buf.Reset()
	a = NewAdjacency(&buf, h, true)
	a.Consume(0, 4, 1, 3)
	require.NoError(t, a.Flush())
	assert.Equal(t, "A\tC\t2.0000\tNorth\tSouth\t1\t3\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestAdjacencyWriteError(t *testing.T) {
	a := NewAdjacency(failingWriter{}, sixSamples(), false)
	a.Consume(0, 4, 1, 3)
	assert.Equal(t, assert.AnError, a.Flush())
	assert.Equal(t, assert.AnError, a.Err())
}

func TestMinLength(t *testing.T) {
	h := sixSamples()
	c := NewCount(h)
	f := NewMinLength(h, 2, c)

	_, err := Run(NewSliceSource([]Match{{0, 1, 0, 1}, {0, 1, 0, 2}, {2, 3, 4, 9}}), f)
	require.NoError(t, err)

	assert.Equal(t, 1, f.Dropped)
	assert.Equal(t, uint64(1), c.Matrix().At(0, 1))
	assert.Equal(t, uint64(1), c.Matrix().At(2, 3))
}

func TestTee(t *testing.T) {
	h := sixSamples()
	c, n := NewCoancestry(h), NewCount(h)

	_, err := Run(NewSliceSource([]Match{{0, 1, 0, 2}, {0, 1, 0, 2}}), c, n)
	require.NoError(t, err)
	assert.Equal(t, 4.0, c.Matrix().At(0, 1))
	assert.Equal(t, uint64(2), n.Matrix().At(0, 1))
}

func TestContractViolations(t *testing.T) {
	c := NewCoancestry(sixSamples())
	assert.Panics(t, func() { c.Consume(3, 3, 0, 1) })
	assert.Panics(t, func() { c.Consume(0, 12, 0, 1) })
	assert.Panics(t, func() { c.Consume(0, 1, 4, 4) })
	assert.Panics(t, func() { c.Consume(0, 1, 4, 11) })
	assert.Panics(t, func() { c.Consume(0, 1, -1, 2) })
	assert.Panics(t, func() { NewCount(sixSamples()).Consume(0, 1, 9, 100) })
	assert.Panics(t, func() { NewIntervals().Consume(0, 1, 5, 2) })
}

func TestFilterSource(t *testing.T) {
	h := sixSamples()
	src := FilterSource(NewSliceSource([]Match{{0, 1, 0, 1}, {0, 1, 0, 3}, {2, 3, 5, 6}, {4, 5, 1, 9}}), h, 1.5)

	var got []Match
	n, err := Run(src, ReducerFunc(func(first, second, begin, end int) {
		got = append(got, Match{first, second, begin, end})
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []Match{{0, 1, 0, 3}, {4, 5, 1, 9}}, got)
}

func TestQuerySource(t *testing.T) {
	h := sixSamples()
	h.setQuery(4, 5)
	src := QuerySource(NewSliceSource([]Match{{0, 1, 0, 1}, {4, 1, 0, 3}, {2, 3, 5, 6}, {6, 5, 1, 9}}), h)

	n, err := Run(src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
