// ancmatch aggregates pairwise haplotype matches found in a plink set into
// coancestry matrices, per-region sharing reports and pileups, and converts,
// indexes and summarizes the plink set itself.
package main

import (
	"fmt"
	"log"
	"os"
)

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"coancestry", "sum shared cM between every pair of haplotypes (or individuals)", runCoancestry},
	{"match", "report the cM a query sample shares with each region", runMatch},
	{"pileup", "count matches overlapping fixed windows of sites", runPileup},
	{"summary", "describe a plink set", runSummary},
	{"view", "print samples, sites and haplotypes", runView},
	{"convert", "rewrite a plink set or pack its haplotypes", runConvert},
	{"index", "build a SQLite index of a plink set", runIndex},
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags]\n\nCommands:\n", os.Args[0])
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for the flags of a command.\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	for _, c := range commands {
		if c.name != os.Args[1] {
			continue
		}

		if err := c.run(os.Args[2:]); err != nil {
			log.Fatalln(err)
		}
		return
	}

	usage()
	os.Exit(2)
}
