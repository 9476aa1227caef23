package match

import (
	"bufio"
	"fmt"
	"io"
)

// DefaultWindow is the pileup window width and stride, in sites.
const DefaultWindow = 10

// Window is the number of matches overlapping the sites [Start, End).
type Window struct {
	Start int
	End   int
	Count int
}

// Pileup counts the intervals of index overlapping each window
// [i, i+width) for i = 0, stride, 2*stride, ... Only whole windows within
// nSites are reported.
func Pileup(index *IntervalIndex, nSites, width, stride int) ([]Window, error) {
	if width <= 0 || stride <= 0 {
		return nil, ErrInvalidWindow
	}

	out := make([]Window, 0)
	for i := 0; i+width <= nSites; i += stride {
		out = append(out, Window{Start: i, End: i + width, Count: index.CountOverlapping(i, i+width)})
	}

	return out, nil
}

// WritePileup writes one "start end count" line per window.
func WritePileup(w io.Writer, windows []Window) error {
	bw := bufio.NewWriter(w)
	for _, win := range windows {
		if _, err := fmt.Fprintf(bw, "%d\t%d\t%d\n", win.Start, win.End, win.Count); err != nil {
			return err
		}
	}

	return bw.Flush()
}
