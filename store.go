package plink

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
)

const (
	storeMagic   = "HAPZ"
	storeVersion = 1
)

var ErrStoreMagic = errors.New("not a haplotype store: bad magic")

// storeHeader is the fixed-size little endian header that follows the magic.
type storeHeader struct {
	Version          uint32
	NHaplotypes      uint32
	NSites           uint32
	Compression      Compression
	UncompressedSize uint64
	PayloadSize      uint64
}

// StoreHeaderError is returned when the header of a haplotype store describes
// sizes that cannot belong to a well formed store.
type StoreHeaderError struct {
	Reason string
}

func (e *StoreHeaderError) Error() string {
	return "corrupt haplotype store header: " + e.Reason
}

// zstdBound is the largest frame zstd emits for n input bytes.
func zstdBound(n uint64) uint64 {
	return n + n>>8 + 1024
}

func (h storeHeader) validate() error {
	words := (uint64(h.NSites) + 63) / 64
	if want := uint64(h.NHaplotypes) * words * 8; h.UncompressedSize != want {
		return &StoreHeaderError{Reason: fmt.Sprintf("%d bytes claimed for %d haplotypes of %d sites, expected %d", h.UncompressedSize, h.NHaplotypes, h.NSites, want)}
	}

	switch h.Compression {
	case CompressionDisabled:
		if h.PayloadSize != h.UncompressedSize {
			return &StoreHeaderError{Reason: fmt.Sprintf("uncompressed payload of %d bytes, expected %d", h.PayloadSize, h.UncompressedSize)}
		}
	case CompressionZStandard:
		if bound := zstdBound(h.UncompressedSize); h.PayloadSize > bound {
			return &StoreHeaderError{Reason: fmt.Sprintf("zstd payload of %d bytes exceeds the bound of %d", h.PayloadSize, bound)}
		}
	default:
		return &StoreHeaderError{Reason: fmt.Sprintf("unsupported compression %d", h.Compression)}
	}

	return nil
}

// HaplotypeStore is a compact on-disk form of every haplotype of a dataset:
// each haplotype is packed 64 sites per uint64 word, the words of all
// haplotypes are concatenated little endian, and the result is optionally
// zstd compressed. The payload is kept compressed in memory until a haplotype
// is requested.
type HaplotypeStore struct {
	Version     uint32
	NHaplotypes int
	NSites      int
	Compression Compression

	uncompressedSize int
	payload          []byte
	raw              []byte
}

func (s *HaplotypeStore) wordsPerHaplotype() int {
	return (s.NSites + 63) / 64
}

// WriteHaplotypeStore packs the haplotypes of ds and writes them to w.
func WriteHaplotypeStore(w io.Writer, ds *Dataset, compression Compression) error {
	nHap := ds.NHaplotypes()
	words := (ds.NSites() + 63) / 64

	raw := make([]byte, nHap*words*8)
	for h := 0; h < nHap; h++ {
		offset := h * words * 8
		for i, word := range ds.Haplotype(h).Words() {
			binary.LittleEndian.PutUint64(raw[offset+8*i:], word)
		}
	}

	payload := raw
	switch compression {
	case CompressionDisabled:
	case CompressionZStandard:
		var err error
		if payload, err = CompressZStandard(nil, raw); err != nil {
			return pfx.Err(err)
		}
	default:
		return fmt.Errorf("unsupported haplotype store compression %d", compression)
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(storeMagic); err != nil {
		return pfx.Err(err)
	}

	header := storeHeader{
		Version:          storeVersion,
		NHaplotypes:      uint32(nHap),
		NSites:           uint32(ds.NSites()),
		Compression:      compression,
		UncompressedSize: uint64(len(raw)),
		PayloadSize:      uint64(len(payload)),
	}
	if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
		return pfx.Err(err)
	}
	if _, err := bw.Write(payload); err != nil {
		return pfx.Err(err)
	}

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadHaplotypeStore reads a store written by WriteHaplotypeStore. The payload
// is not decompressed.
func ReadHaplotypeStore(r io.Reader) (*HaplotypeStore, error) {
	magic := make([]byte, len(storeMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, shortRead(err)
	}
	if string(magic) != storeMagic {
		return nil, ErrStoreMagic
	}

	var header storeHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, shortRead(err)
	}
	if header.Version != storeVersion {
		return nil, fmt.Errorf("haplotype store version %d is not supported", header.Version)
	}

	if err := header.validate(); err != nil {
		return nil, err
	}

	s := &HaplotypeStore{
		Version:          header.Version,
		NHaplotypes:      int(header.NHaplotypes),
		NSites:           int(header.NSites),
		Compression:      header.Compression,
		uncompressedSize: int(header.UncompressedSize),
	}

	// PayloadSize is only a claim until the bytes arrive.
	payload, err := io.ReadAll(io.LimitReader(r, int64(header.PayloadSize)))
	if err != nil {
		return nil, pfx.Err(err)
	}
	if uint64(len(payload)) != header.PayloadSize {
		return nil, ErrTruncatedFile
	}
	s.payload = payload

	return s, nil
}

// CompressedSize is the number of payload bytes as stored.
func (s *HaplotypeStore) CompressedSize() int {
	return len(s.payload)
}

// UncompressedSize is the number of bytes of packed haplotype words.
func (s *HaplotypeStore) UncompressedSize() int {
	return s.uncompressedSize
}

// Uncompress returns the packed haplotype words. The result is cached.
func (s *HaplotypeStore) Uncompress() ([]byte, error) {
	if s.raw != nil {
		return s.raw, nil
	}

	switch s.Compression {
	case CompressionDisabled:
		s.raw = s.payload
	case CompressionZStandard:
		raw, err := DecompressZStandard(make([]byte, 0, s.uncompressedSize), s.payload)
		if err != nil {
			return nil, pfx.Err(err)
		}
		s.raw = raw
	default:
		return nil, fmt.Errorf("unsupported haplotype store compression %d", s.Compression)
	}

	if len(s.raw) != s.uncompressedSize {
		got := len(s.raw)
		s.raw = nil
		return nil, fmt.Errorf("haplotype store decompressed to %d bytes, expected %d", got, s.uncompressedSize)
	}

	return s.raw, nil
}

// Haplotype renders haplotype h as a string of '0' and '1' characters.
func (s *HaplotypeStore) Haplotype(h int) (string, error) {
	if h < 0 || h >= s.NHaplotypes {
		return "", fmt.Errorf("haplotype %d out of range [0,%d)", h, s.NHaplotypes)
	}

	raw, err := s.Uncompress()
	if err != nil {
		return "", err
	}

	rowSize := s.wordsPerHaplotype() * 8
	br := newBitReader(bytes.NewReader(raw[h*rowSize : (h+1)*rowSize]))

	out := make([]byte, 0, s.NSites)
	for len(out) < s.NSites {
		word, err := br.ReadUint(64)
		if err != nil {
			return "", pfx.Err(err)
		}
		for i := 0; i < 64 && len(out) < s.NSites; i++ {
			out = append(out, '0'+byte(word>>uint(i)&1))
		}
	}

	return string(out), nil
}
