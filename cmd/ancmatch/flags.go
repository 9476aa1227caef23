package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"

	"github.com/carbocation/plink"
	"github.com/carbocation/plink/match"
)

// datasetFlags are shared by every command that reads a plink set.
type datasetFlags struct {
	stub        string
	unphased    bool
	populations bool
	verbose     bool
}

func (d *datasetFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&d.stub, "stub", "", "Path to the plink set, without extension (stub.bim, stub.fam, stub.hap). May be gs://bucket/path")
	fs.BoolVar(&d.unphased, "unphased", false, "Read stub.bed instead of stub.hap")
	fs.BoolVar(&d.populations, "populations", true, "Read stub.reg for population and region labels")
	fs.BoolVar(&d.verbose, "verbose", false, "Log progress")
}

// needsStorage reports whether any of the paths lives in Google Storage.
func needsStorage(paths ...string) bool {
	for _, p := range paths {
		if strings.HasPrefix(p, "gs://") {
			return true
		}
	}

	return false
}

// open reads the plink set. The returned client is nil unless a gs:// path
// was given; extra paths are only inspected to decide that.
func (d *datasetFlags) open(ctx context.Context, extra ...string) (*plink.Dataset, *storage.Client, error) {
	if d.stub == "" {
		return nil, nil, fmt.Errorf("-stub is required")
	}

	var client *storage.Client
	if needsStorage(append(extra, d.stub)...) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return nil, nil, pfx.Err(err)
		}
	}

	ds, err := plink.Open(ctx, plink.ExpandHome(d.stub), plink.Options{
		Phased:      !d.unphased,
		Populations: d.populations,
		Storage:     client,
		Verbose:     d.verbose,
	})
	if err != nil {
		if client != nil {
			client.Close()
		}
		return nil, nil, err
	}

	return ds, client, nil
}

// matchFlags select the match files and the length filter.
type matchFlags struct {
	paths  string
	minLen float64
}

func (m *matchFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&m.paths, "matches", "-", "Comma-separated match files (first second begin end per line). Each file is reduced in parallel. '-' reads STDIN")
	fs.Float64Var(&m.minLen, "minlen", match.DefaultMinLength, "Ignore matches shorter than this many cM")
}

func (m *matchFlags) list() []string {
	out := make([]string, 0)
	for _, p := range strings.Split(m.paths, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// sources opens one length-filtered Source per match file. The returned
// closer releases every file.
func (m *matchFlags) sources(ctx context.Context, client *storage.Client, ds *plink.Dataset) ([]match.Source, func(), error) {
	paths := m.list()
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("-matches is required")
	}

	closers := make([]io.Closer, 0, len(paths))
	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	out := make([]match.Source, 0, len(paths))
	for _, p := range paths {
		var rc io.ReadCloser = os.Stdin
		if p != "-" {
			var err error
			if rc, err = plink.OpenInput(ctx, client, plink.ExpandHome(p)); err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, rc)
		}

		r := match.NewReader(rc)
		r.Name = p
		out = append(out, match.FilterSource(r, ds, m.minLen))
	}

	return out, closeAll, nil
}

func closeStorage(client *storage.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Println(pfx.Err(err))
	}
}
