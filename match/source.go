package match

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/plink"
)

// Source yields matches one at a time. Read returns nil once the stream is
// exhausted or has failed; Error then reports the failure, if any.
//
// A Source must only produce matches between two distinct haplotypes over a
// non-empty site interval. Whether the stream holds every match or only
// set-maximal ones is up to the Source; reducers count what they are handed.
type Source interface {
	Read() *Match
	Error() error
}

// Reader is a Source over a whitespace-delimited text stream with one
// "first second begin end" match per line.
type Reader struct {
	MatchesSeen int

	// Name identifies the stream in parse errors.
	Name string

	scanner *bufio.Scanner
	line    int
	err     error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{
		Name:    "matches",
		scanner: bufio.NewScanner(r),
	}
}

func (r *Reader) Error() error {
	return r.err
}

func (r *Reader) Read() *Match {
	if r.err != nil {
		return nil
	}

	for r.scanner.Scan() {
		r.line++
		cols := strings.Fields(r.scanner.Text())
		if len(cols) == 0 {
			continue
		}

		m, err := parseMatch(cols)
		if err != nil {
			r.err = &plink.ParseError{Path: r.Name, Line: r.line, Reason: err.Error()}
			return nil
		}

		r.MatchesSeen++
		return m
	}

	if err := r.scanner.Err(); err != nil {
		r.err = &plink.IOError{Path: r.Name, Err: err}
	}

	return nil
}

func parseMatch(cols []string) (*Match, error) {
	if len(cols) < 4 {
		return nil, fmt.Errorf("expected 4 fields, found %d", len(cols))
	}

	var vals [4]int
	for i := range vals {
		v, err := strconv.Atoi(cols[i])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q in column %d", cols[i], i+1)
		}
		vals[i] = v
	}

	return &Match{First: vals[0], Second: vals[1], Begin: vals[2], End: vals[3]}, nil
}

// SliceSource is a Source over matches held in memory.
type SliceSource struct {
	matches []Match
	next    int
}

func NewSliceSource(matches []Match) *SliceSource {
	return &SliceSource{matches: matches}
}

func (s *SliceSource) Read() *Match {
	if s.next >= len(s.matches) {
		return nil
	}

	m := s.matches[s.next]
	s.next++

	return &m
}

func (s *SliceSource) Error() error {
	return nil
}

// Shard splits matches into at most n sources of near-equal size.
func Shard(matches []Match, n int) []Source {
	if n < 1 {
		n = 1
	}
	if n > len(matches) && len(matches) > 0 {
		n = len(matches)
	}

	out := make([]Source, 0, n)
	size := (len(matches) + n - 1) / n
	for start := 0; start < len(matches); start += size {
		end := start + size
		if end > len(matches) {
			end = len(matches)
		}
		out = append(out, NewSliceSource(matches[start:end]))
	}

	return out
}

// WriteMatches writes matches in the layout Reader parses.
func WriteMatches(w io.Writer, matches []Match) error {
	bw := bufio.NewWriter(w)
	for _, m := range matches {
		if _, err := fmt.Fprintln(bw, m.String()); err != nil {
			return err
		}
	}

	return bw.Flush()
}
