package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/carbocation/pfx"

	"github.com/carbocation/plink"
)

func main() {
	stub := flag.String("stub", "", "Path to the plink set, without extension")
	idxPath := flag.String("idx", "", "Filename of the SQLite index to take marker order from. Defaults to stub.idx")
	flag.Parse()

	if *stub == "" {
		flag.PrintDefaults()
		log.Fatalln("No plink set given")
	}
	*stub = plink.ExpandHome(*stub)

	if *idxPath == "" {
		*idxPath = *stub + ".idx"
	}

	ds, err := plink.Open(context.Background(), *stub, plink.Options{Phased: true, Verbose: true})
	if err != nil {
		log.Fatalln(err)
	}

	// Prep the readers
	haplotypes := make(chan int)
	output := make(chan AlleleCounter)
	accumulated := make(chan AlleleCounter)

	go func() {
		accumulator := NewAlleleCounter(ds.NSites())
		for o := range output {
			if err := accumulator.Add(o); err != nil {
				log.Fatalln(err)
			}
		}
		log.Println("Final accumulated stats")
		accumulated <- accumulator
	}()

	// Prep the Workers:
	log.Println("Launching", runtime.NumCPU(), "workers")
	var wg sync.WaitGroup
	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Worker(ds, haplotypes, output)
		}()
	}

	for h := 0; h < ds.NHaplotypes(); h++ {
		if h%1000 == 0 {
			log.Println("Dispatched", h, "haplotypes")
		}
		haplotypes <- h
	}
	close(haplotypes)
	wg.Wait()
	close(output)
	counts := <-accumulated

	// Report in index order
	idx, err := plink.OpenIndex(*idxPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer idx.Close()

	rows, err := idx.DB.Queryx(`SELECT * FROM Marker ORDER BY chromosome ASC, "row" ASC`)
	if err != nil {
		log.Fatalln(err)
	}
	defer rows.Close()

	var row plink.MarkerIndex
	for rows.Next() {
		if err := rows.StructScan(&row); err != nil {
			log.Fatalln(err)
		}
		fmt.Printf("%s\t%s\t%s\t%d\t%d\t%1.5f\n", plink.ChromosomeName(row.Chromosome), row.RSID, row.Allele1,
			counts.Allele0[row.Row], counts.Allele1[row.Row], counts.Frequency(row.Row))
	}
	if err := rows.Err(); err != nil {
		log.Fatalln(err)
	}
}

// AlleleCounter tallies, per marker, how many haplotypes carry each allele.
type AlleleCounter struct {
	Allele0 []int
	Allele1 []int
}

func NewAlleleCounter(nSites int) AlleleCounter {
	return AlleleCounter{
		Allele0: make([]int, nSites),
		Allele1: make([]int, nSites),
	}
}

func (a *AlleleCounter) Add(other AlleleCounter) error {
	if len(other.Allele0) != len(a.Allele0) {
		return pfx.Err(fmt.Errorf("cannot add counts over %d markers to counts over %d", len(other.Allele0), len(a.Allele0)))
	}

	for i := range a.Allele0 {
		a.Allele0[i] += other.Allele0[i]
		a.Allele1[i] += other.Allele1[i]
	}

	return nil
}

// Frequency of allele 1 at marker m.
func (a AlleleCounter) Frequency(m int) float64 {
	total := a.Allele0[m] + a.Allele1[m]
	if total == 0 {
		return 0
	}

	return float64(a.Allele1[m]) / float64(total)
}

// Worker counts the alleles of each haplotype it receives. The dataset is read
// only, so workers can share it.
func Worker(ds *plink.Dataset, haplotypes <-chan int, output chan<- AlleleCounter) {
	for h := range haplotypes {
		ac := NewAlleleCounter(ds.NSites())
		for m, allele := range ds.Haplotype(h).Bytes() {
			if allele == 1 {
				ac.Allele1[m]++
			} else {
				ac.Allele0[m]++
			}
		}

		output <- ac
	}
}
