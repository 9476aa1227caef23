package match

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Merger is a Reducer whose aggregate can absorb that of another reducer of
// the same kind.
type Merger[R any] interface {
	Reducer
	Merge(other R)
}

// checkEvery is how many matches a shard consumes between looks at its
// context.
const checkEvery = 1 << 12

// RunSharded drains each source into its own reducer concurrently, then merges
// the reducers into the first one. If any shard fails, the others are
// cancelled and no result is returned.
func RunSharded[R Merger[R]](ctx context.Context, sources []Source, newReducer func() R) (R, int, error) {
	if len(sources) == 0 {
		return newReducer(), 0, nil
	}

	reducers := make([]R, len(sources))
	counts := make([]int, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		reducers[i] = newReducer()

		g.Go(func() error {
			for m := src.Read(); m != nil; m = src.Read() {
				if counts[i]%checkEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				reducers[i].Consume(m.First, m.Second, m.Begin, m.End)
				counts[i]++
			}

			return src.Error()
		})
	}

	if err := g.Wait(); err != nil {
		var zero R
		return zero, 0, err
	}

	out, total := reducers[0], counts[0]
	for i := 1; i < len(reducers); i++ {
		out.Merge(reducers[i])
		total += counts[i]
	}

	return out, total, nil
}
