package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/carbocation/plink/match"
)

func runMatch(args []string) error {
	var (
		data    datasetFlags
		matches matchFlags
	)
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	data.register(fs)
	matches.register(fs)
	query := fs.String("query", "", "Individual ID of the query sample")
	all := fs.Bool("all", false, "Print every match involving the query instead of the region report")
	sites := fs.Bool("sites", false, "With -all, also print the begin and end site of each match")
	normalize := fs.Bool("normalize", false, "Add a column dividing each region's total by its number of samples")
	fs.Parse(args)

	if *query == "" {
		return fmt.Errorf("-query is required")
	}

	ctx := context.Background()
	ds, client, err := data.open(ctx, matches.list()...)
	if err != nil {
		return err
	}
	defer closeStorage(client)

	if err := ds.SetQuery(*query); err != nil {
		return err
	}

	sources, closeSources, err := matches.sources(ctx, client, ds)
	if err != nil {
		return err
	}
	defer closeSources()

	if *all {
		adj := match.NewAdjacency(os.Stdout, ds, *sites)
		for _, src := range sources {
			if _, err := match.Run(match.QuerySource(src, ds), adj); err != nil {
				return err
			}
		}
		return adj.Flush()
	}

	if ds.Populations == nil {
		return fmt.Errorf("the region report needs population labels; do not set -populations=false")
	}

	// One report block per haplotype of the query sample.
	row, err := ds.SampleRow(*query)
	if err != nil {
		return err
	}
	r, n, err := match.RunSharded(ctx, sources, func() match.Regions {
		return match.NewRegions(ds, 2*row, 2*row+1)
	})
	if err != nil {
		return err
	}
	if data.verbose {
		log.Println("Read", n, "matches")
	}

	var counts map[string]int
	if *normalize {
		counts = ds.Populations.RegionCounts()
	}

	return r.WriteReport(os.Stdout, ds.Name(), ds.Populations.Regions(), counts)
}
