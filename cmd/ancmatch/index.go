package main

import (
	"context"
	"flag"
	"log"

	"cloud.google.com/go/storage"

	"github.com/carbocation/plink"
)

func runIndex(args []string) error {
	var data datasetFlags
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	data.register(fs)
	out := fs.String("out", "", "Path of the SQLite index. Defaults to stub.idx")
	fs.Parse(args)

	ctx := context.Background()
	ds, client, err := data.open(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(client)

	if *out == "" {
		*out = data.stub + ".idx"
	}

	if err := plink.WriteIndex(plink.ExpandHome(*out), ds); err != nil {
		return err
	}
	log.Printf("Indexed %d markers and %d samples into %s using the %s driver\n", ds.NSites(), ds.NSamples(), *out, plink.WhichSQLiteDriver())

	return nil
}

// readStore reads a haplotype store from a local or gs:// path.
func readStore(ctx context.Context, client *storage.Client, path string) (*plink.HaplotypeStore, error) {
	rc, err := plink.Opener{Storage: client}.Open(ctx, plink.ExpandHome(path))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return plink.ReadHaplotypeStore(rc)
}
