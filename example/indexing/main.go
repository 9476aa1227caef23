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

func main() {
	stub := flag.String("stub", "", "Path to the plink set, without extension")
	idxPath := flag.String("idx", "", "Filename of the SQLite index. Built from the plink set if absent. Defaults to stub.idx")
	phased := flag.Bool("phased", true, "Read stub.hap rather than stub.bed")
	flag.Parse()

	if *stub == "" {
		flag.PrintDefaults()
		log.Fatalln("No plink set given")
	}
	*stub = plink.ExpandHome(*stub)

	if *idxPath == "" {
		*idxPath = *stub + ".idx"
	}
	*idxPath = plink.ExpandHome(*idxPath)

	if _, err := os.Stat(*idxPath); os.IsNotExist(err) {
		log.Println("Opening plink set:", *stub)
		ds, err := plink.Open(context.Background(), *stub, plink.Options{Phased: *phased, Verbose: true})
		if err != nil {
			log.Fatalln(err)
		}

		log.Println("Building index:", *idxPath)
		if err := plink.WriteIndex(*idxPath, ds); err != nil {
			log.Fatalln(err)
		}
	} else if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	idx, err := plink.OpenIndex(*idxPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer idx.Close()

	log.Printf("Index Metadata: %+v\n", idx.Metadata)

	rows, err := idx.DB.Queryx(`SELECT * FROM Marker ORDER BY chromosome ASC, "row" ASC`)
	if err != nil {
		log.Fatalln(err)
	}
	defer rows.Close()
	i := 0
	var row plink.MarkerIndex
	var last string
	for rows.Next() {
		if err := rows.StructScan(&row); err != nil {
			log.Fatalln(err)
		}
		if i%30 == 0 {
			fmt.Printf("%d) %+v\n", i, row)
		}
		last = row.RSID
		i++
	}
	rows.Close()

	log.Println("Saw indexes for", i, "markers")

	if last != "" {
		r, err := idx.MarkerRow(last)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Marker", last, "is on row", r)
	}

	var samples []plink.SampleIndex
	if err := idx.DB.Select(&samples, `SELECT * FROM Sample ORDER BY "row" ASC LIMIT 11`); err != nil {
		log.Fatalln(err)
	}
	for _, s := range samples {
		fmt.Println(s.Row, s.IID, s.Population, s.Region)
	}
	if len(samples) > 0 {
		log.Println("Saw up to", samples[len(samples)-1].IID)
	}
}
