package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/carbocation/plink"
)

func runView(args []string) error {
	var data datasetFlags
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	data.register(fs)
	noHaps := fs.Bool("nohaps", false, "Do not print the haplotype sequences")
	sites := fs.Bool("sites", false, "Print the sites before the haplotypes")
	storePath := fs.String("store", "", "Print haplotypes from this haplotype store instead of the genotype file")
	fs.Parse(args)

	ctx := context.Background()
	ds, client, err := data.open(ctx, *storePath)
	if err != nil {
		return err
	}
	defer closeStorage(client)

	var store *plink.HaplotypeStore
	if *storePath != "" {
		if store, err = readStore(ctx, client, *storePath); err != nil {
			return err
		}
		if store.NHaplotypes != ds.NHaplotypes() || store.NSites != ds.NSites() {
			return fmt.Errorf("%s holds %d haplotypes of %d sites, the plink set has %d of %d",
				*storePath, store.NHaplotypes, store.NSites, ds.NHaplotypes(), ds.NSites())
		}
	}

	bw := bufio.NewWriter(os.Stdout)

	if *sites {
		for i, m := range ds.Markers.Rows {
			fmt.Fprintf(bw, "%d\t%s\t%s\t%s\t%d\n", i, plink.ChromosomeName(m.Chromosome), m.ID, fmtCM(m.CM), m.BP)
		}
	}

	for h := 0; h < ds.NHaplotypes(); h++ {
		fmt.Fprintf(bw, "%d\t%s\t%d\t%s\t%s", h, ds.HaplotypeID(h), h%2, ds.HaplotypePopulation(h), ds.HaplotypeRegion(h))
		if !*noHaps {
			hap := ""
			if store != nil {
				if hap, err = store.Haplotype(h); err != nil {
					return err
				}
			} else {
				hap = ds.Haplotype(h).String()
			}
			fmt.Fprintf(bw, "\t%s", hap)
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func fmtCM(cm float64) string {
	return fmt.Sprintf("%1.5f", cm)
}
