package main

import (
	"context"
	"flag"
	"os"

	"github.com/carbocation/plink"
)

func runSummary(args []string) error {
	var data datasetFlags
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	data.register(fs)
	regcount := fs.Bool("regcount", false, "Also print the number of samples in each region")
	storePath := fs.String("store", "", "Take compressed sizes from this haplotype store instead of packing one in memory")
	fs.Parse(args)

	ctx := context.Background()
	ds, client, err := data.open(ctx, *storePath)
	if err != nil {
		return err
	}
	defer closeStorage(client)

	var summary *plink.Summary
	if *storePath == "" {
		summary, err = plink.Summarize(ds)
	} else {
		var store *plink.HaplotypeStore
		if store, err = readStore(ctx, client, *storePath); err != nil {
			return err
		}
		summary, err = plink.SummarizeStore(ds, store)
	}
	if err != nil {
		return err
	}

	var regions []string
	if *regcount && ds.Populations != nil {
		regions = ds.Populations.Regions()
	}

	return summary.Write(os.Stdout, regions)
}
