package plink

import (
	"strconv"
)

// Numeric codes plink uses for the non-autosomal chromosomes.
const (
	ChromosomeX  = 23
	ChromosomeY  = 24
	ChromosomeXY = 25
	ChromosomeMT = 26
)

// ParseChromosome takes the chromosome token from a marker file and returns
// its numeric code. X, Y, XY and MT map to 23, 24, 25 and 26; everything else
// must be an integer.
func ParseChromosome(token string) (int, error) {
	switch token {
	case "X":
		return ChromosomeX, nil
	case "Y":
		return ChromosomeY, nil
	case "XY":
		return ChromosomeXY, nil
	case "MT":
		return ChromosomeMT, nil
	}

	return strconv.Atoi(token)
}

// ChromosomeName takes the numeric chromosome code and returns its standard
// string translation.
func ChromosomeName(chr int) string {
	chromosome := strconv.Itoa(chr)
	switch chr {
	case ChromosomeX:
		chromosome = "X"
	case ChromosomeY:
		chromosome = "Y"
	case ChromosomeXY:
		chromosome = "XY"
	case ChromosomeMT:
		chromosome = "MT"
	}

	return chromosome
}
