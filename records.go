package plink

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

// maxLineLength bounds a single metadata row. Population files with long
// identifiers can exceed bufio's 64KiB default.
const maxLineLength = 1 << 20

// readRecords parses one whitespace-delimited record per line. Blank lines
// are skipped. The first malformed row aborts the read.
func readRecords[T any](r io.Reader, path string, nFields int, parse func(cols []string) (T, error)) ([]T, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	out := make([]T, 0)
	line := 0
	for scanner.Scan() {
		line++
		cols := strings.Fields(scanner.Text())
		if len(cols) == 0 {
			continue
		}

		if len(cols) < nFields {
			return nil, &ParseError{Path: path, Line: line, Reason: fmt.Sprintf("expected %d fields, found %d", nFields, len(cols))}
		}

		rec, err := parse(cols)
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Reason: err.Error()}
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	return out, nil
}

func loadRecords[T any](ctx context.Context, opener Opener, path string, nFields int, parse func(cols []string) (T, error)) ([]T, error) {
	rc, err := opener.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return readRecords(rc, path, nFields, parse)
}

// indexBy maps each key to the row holding it. When a key repeats, the last
// row wins.
func indexBy[T any](rows []T, key func(T) string) map[string]int {
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		index[key(row)] = i
	}

	return index
}

// writeRows writes one tab-delimited line per row.
func writeRows[T any](w io.Writer, rows []T, fields func(T) []string) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		if _, err := bw.WriteString(strings.Join(fields(row), "\t")); err != nil {
			return pfx.Err(err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return pfx.Err(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// createFile runs write against a newly created local file.
func createFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(ExpandHome(path))
	if err != nil {
		return &IOError{Path: path, Err: err}
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return &IOError{Path: path, Err: err}
	}

	return nil
}
