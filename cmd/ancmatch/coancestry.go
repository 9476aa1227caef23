package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/carbocation/plink/match"
)

func runCoancestry(args []string) error {
	var (
		data    datasetFlags
		matches matchFlags
	)
	fs := flag.NewFlagSet("coancestry", flag.ExitOnError)
	data.register(fs)
	matches.register(fs)
	adjlist := fs.Bool("adjlist", false, "Print one edge per match instead of a matrix")
	sites := fs.Bool("sites", false, "With -adjlist, also print the begin and end site of each match")
	diploid := fs.Bool("diploid", false, "Fold haplotypes into individuals")
	count := fs.Bool("count", false, "Count matches instead of summing their cM")
	fs.Parse(args)

	ctx := context.Background()
	ds, client, err := data.open(ctx, matches.list()...)
	if err != nil {
		return err
	}
	defer closeStorage(client)

	sources, closeSources, err := matches.sources(ctx, client, ds)
	if err != nil {
		return err
	}
	defer closeSources()

	if *adjlist {
		adj := match.NewAdjacency(os.Stdout, ds, *sites)
		n := 0
		for _, src := range sources {
			seen, err := match.Run(src, adj)
			n += seen
			if err != nil {
				return err
			}
		}
		if data.verbose {
			log.Println("Printed", n, "matches")
		}
		return adj.Flush()
	}

	if *count {
		c, n, err := match.RunSharded(ctx, sources, func() *match.Count { return match.NewCount(ds) })
		if err != nil {
			return err
		}
		if data.verbose {
			log.Println("Counted", n, "matches")
		}

		out := c.Matrix()
		if *diploid {
			if out, err = match.FoldCounts(out); err != nil {
				return err
			}
		}
		_, err = out.WriteTo(os.Stdout)
		return err
	}

	c, n, err := match.RunSharded(ctx, sources, func() *match.Coancestry { return match.NewCoancestry(ds) })
	if err != nil {
		return err
	}
	if data.verbose {
		log.Println("Summed", n, "matches")
	}

	out := c.Matrix()
	if out == nil {
		return nil
	}
	if *diploid {
		if out, err = match.FoldCoancestry(out); err != nil {
			return err
		}
	}
	_, err = match.WriteSymmetric(os.Stdout, out)
	return err
}
