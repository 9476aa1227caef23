package match

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/carbocation/plink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatches() []Match {
	var out []Match
	for i := 0; i < 50; i++ {
		first := i % 12
		second := (i*7 + 1) % 12
		if first == second {
			second = (second + 1) % 12
		}
		out = append(out, Match{First: first, Second: second, Begin: i % 5, End: i%5 + 1 + i%4})
	}
	return out
}

func TestRunShardedMatchesRun(t *testing.T) {
	h := sixSamples()
	matches := testMatches()

	serial := NewCoancestry(h)
	n, err := Run(NewSliceSource(matches), serial)
	require.NoError(t, err)

	sharded, total, err := RunSharded(context.Background(), Shard(matches, 4), func() *Coancestry { return NewCoancestry(h) })
	require.NoError(t, err)
	assert.Equal(t, n, total)

	for i := 0; i < h.NHaplotypes(); i++ {
		for j := 0; j < h.NHaplotypes(); j++ {
			assert.InDelta(t, serial.Matrix().At(i, j), sharded.Matrix().At(i, j), 1e-9)
		}
	}

	counts, _, err := RunSharded(context.Background(), Shard(matches, 3), func() *Count { return NewCount(h) })
	require.NoError(t, err)
	serialCounts := NewCount(h)
	_, err = Run(NewSliceSource(matches), serialCounts)
	require.NoError(t, err)
	assert.Equal(t, serialCounts.Matrix(), counts.Matrix())

	intervals, _, err := RunSharded(context.Background(), Shard(matches, 5), NewIntervals)
	require.NoError(t, err)
	assert.Equal(t, len(matches), intervals.Index().Len())
}

func TestRunShardedRegion(t *testing.T) {
	h := sixSamples()
	h.setQuery(0)
	matches := testMatches()

	serial, err := NewRegion(h)
	require.NoError(t, err)
	_, err = Run(NewSliceSource(matches), serial)
	require.NoError(t, err)

	sharded, _, err := RunSharded(context.Background(), Shard(matches, 4), func() *Region {
		r, err := NewRegion(h)
		require.NoError(t, err)
		return r
	})
	require.NoError(t, err)

	require.Equal(t, len(serial.Totals()), len(sharded.Totals()))
	for region, total := range serial.Totals() {
		assert.InDelta(t, total, sharded.Totals()[region], 1e-9, region)
	}
}

func TestRunShardedError(t *testing.T) {
	h := sixSamples()
	sources := []Source{
		NewSliceSource(testMatches()),
		NewReader(strings.NewReader("0 1 0 2\nnot a match\n")),
	}

	c, total, err := RunSharded(context.Background(), sources, func() *Count { return NewCount(h) })
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Equal(t, 0, total)

	var parseErr *plink.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Line)
}

func TestRunShardedEmpty(t *testing.T) {
	c, total, err := RunSharded(context.Background(), nil, func() *Count { return NewCount(sixSamples()) })
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.False(t, c.Allocated())
}
