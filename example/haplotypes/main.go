package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/carbocation/plink"
)

func main() {
	stub := flag.String("stub", "example", "Path to the plink set, without extension")
	populations := flag.Bool("populations", false, "Also read stub.reg")
	flag.Parse()

	ds, err := plink.Open(context.Background(), plink.ExpandHome(*stub), plink.Options{
		Phased:      true,
		Populations: *populations,
		Verbose:     true,
	})
	if err != nil {
		log.Fatalln(err)
	}

	log.Printf("%s: %d samples, %d sites, %s genotypes\n", ds.Name(), ds.NSamples(), ds.NSites(), ds.Genotypes.Orientation)

	i := 0
	for _, sample := range ds.Samples.Rows {
		fmt.Println(i, sample.IndividualID)
		i++

		if i > 10 {
			break
		}
	}
	if i > 0 {
		log.Println("Saw up to", ds.Samples.Rows[i-1].IndividualID)
	}
	log.Println("Iterated over", i, "samples")

	for h := 0; h < ds.NHaplotypes() && h < 10; h++ {
		hap := ds.Haplotype(h)
		words := hap.Words()
		if len(words) == 0 {
			continue
		}

		seq := hap.String()
		if len(seq) > 64 {
			seq = seq[:64] + "..."
		}
		log.Printf("Haplotype %d) %s parent %d: %s (first word %#016x)\n", h, ds.HaplotypeID(h), h%2, seq, words[0])
	}

	for m := 0; m < ds.NSites() && m < 5; m++ {
		marker := ds.Markers.Rows[m]
		for s := 0; s < ds.NSamples() && s < 3; s++ {
			log.Printf("\t%s sample %d) code %d\n", marker.ID, s, ds.Genotypes.Genotype(s, m))
		}
	}
}
