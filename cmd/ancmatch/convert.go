package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/carbocation/pfx"

	"github.com/carbocation/plink"
)

func runConvert(args []string) error {
	var data datasetFlags
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	data.register(fs)
	out := fs.String("out", "", "Write the plink set to this stub")
	orientation := fs.String("orientation", "snp", "Orientation of the written genotype file: 'snp' or 'individual'")
	storePath := fs.String("store", "", "Write the haplotypes of the plink set to this haplotype store")
	compress := fs.Bool("compress", true, "zstd compress the haplotype store")
	fs.Parse(args)

	if *out == "" && *storePath == "" {
		return fmt.Errorf("at least one of -out or -store is required")
	}

	var o plink.Orientation
	switch *orientation {
	case "snp":
		o = plink.SNPMajor
	case "individual":
		o = plink.IndividualMajor
	default:
		return fmt.Errorf("unknown orientation %q", *orientation)
	}

	ctx := context.Background()
	ds, client, err := data.open(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(client)

	if *out != "" {
		stub := plink.ExpandHome(*out)
		if err := plink.WriteMarkers(stub+plink.ExtMarkers, ds.Markers); err != nil {
			return err
		}
		if err := plink.WriteSamples(stub+plink.ExtSamples, ds.Samples); err != nil {
			return err
		}
		if ds.Populations != nil {
			if err := plink.WritePopulations(stub+plink.ExtPopulations, ds.Populations); err != nil {
				return err
			}
		}

		ext := plink.ExtGenotypes
		if ds.Genotypes.Phased() {
			ext = plink.ExtHaplotypes
		}
		if err := plink.WriteGenotypes(stub+ext, ds.Genotypes.Reorient(o)); err != nil {
			return err
		}
		if data.verbose {
			log.Printf("Wrote %s (%s)\n", stub, o)
		}
	}

	if *storePath != "" {
		compression := plink.CompressionDisabled
		if *compress {
			compression = plink.CompressionZStandard
		}

		f, err := os.Create(plink.ExpandHome(*storePath))
		if err != nil {
			return pfx.Err(err)
		}
		if err := plink.WriteHaplotypeStore(f, ds, compression); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return pfx.Err(err)
		}
		if data.verbose {
			log.Printf("Wrote %d haplotypes to %s (%s)\n", ds.NHaplotypes(), *storePath, compression)
		}
	}

	return nil
}
