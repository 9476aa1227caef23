package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/carbocation/plink/match"
)

func runPileup(args []string) error {
	var (
		data    datasetFlags
		matches matchFlags
	)
	fs := flag.NewFlagSet("pileup", flag.ExitOnError)
	data.register(fs)
	matches.register(fs)
	query := fs.String("query", "", "If set, only pile up matches involving this individual ID")
	width := fs.Int("width", match.DefaultWindow, "Window width, in sites")
	stride := fs.Int("stride", match.DefaultWindow, "Distance between window starts, in sites")
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

	if *query != "" {
		if err := ds.SetQuery(*query); err != nil {
			return err
		}
		for i, src := range sources {
			sources[i] = match.QuerySource(src, ds)
		}
	}

	r, n, err := match.RunSharded(ctx, sources, match.NewIntervals)
	if err != nil {
		return err
	}
	if data.verbose {
		log.Println("Indexed", n, "matches")
	}

	windows, err := match.Pileup(r.Index(), ds.NSites(), *width, *stride)
	if err != nil {
		return err
	}

	return match.WritePileup(os.Stdout, windows)
}
