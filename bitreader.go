package plink

import (
	"io"
)

// bitReader reads bits least significant first, which is the order in which
// packed haplotype words are laid out once written little endian.
type bitReader struct {
	reader io.ByteReader
	byte   byte
	offset byte

	errCache    error
	lastBit     bool
	resultCache uint64
}

func newBitReader(r io.ByteReader) *bitReader {
	return &bitReader{reader: r}
}

func (r *bitReader) ReadBit() (bool, error) {
	if r.offset == 8 {
		r.offset = 0
	}
	if r.offset == 0 {
		if r.byte, r.errCache = r.reader.ReadByte(); r.errCache != nil {
			return false, r.errCache
		}
	}
	r.lastBit = (r.byte & (1 << r.offset)) != 0
	r.offset++
	return r.lastBit, nil
}

// ReadUint reads nbits bits into the low bits of a uint64, the first bit read
// becoming bit 0.
func (r *bitReader) ReadUint(nbits int) (uint64, error) {
	r.resultCache = 0
	for i := 0; i < nbits; i++ {
		r.lastBit, r.errCache = r.ReadBit()
		if r.errCache != nil {
			return 0, r.errCache
		}
		if r.lastBit {
			r.resultCache |= 1 << uint(i)
		}
	}
	return r.resultCache, nil
}
