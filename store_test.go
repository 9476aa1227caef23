package plink

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestHaplotypeStoreRoundTrip(t *testing.T) {
	ds := testDataset(t)

	for _, compression := range []Compression{CompressionDisabled, CompressionZStandard} {
		var buf bytes.Buffer
		if err := WriteHaplotypeStore(&buf, ds, compression); err != nil {
			t.Fatal(err)
		}

		store, err := ReadHaplotypeStore(&buf)
		if err != nil {
			t.Fatal(err)
		}

		if store.NHaplotypes != 4 || store.NSites != 4 || store.Compression != compression {
			t.Errorf("%s: got %d haplotypes of %d sites", compression, store.NHaplotypes, store.NSites)
		}
		if store.UncompressedSize() != 4*8 {
			t.Errorf("%s: got %d uncompressed bytes, expected 32", compression, store.UncompressedSize())
		}
		if compression == CompressionDisabled && store.CompressedSize() != store.UncompressedSize() {
			t.Errorf("Got %d stored bytes, expected %d", store.CompressedSize(), store.UncompressedSize())
		}

		for h := 0; h < ds.NHaplotypes(); h++ {
			got, err := store.Haplotype(h)
			if err != nil {
				t.Fatal(err)
			}
			if want := ds.Haplotype(h).String(); got != want {
				t.Errorf("%s: haplotype %d: got %s, expected %s", compression, h, got, want)
			}
		}

		if _, err := store.Haplotype(4); err == nil {
			t.Errorf("Expected an error for an out of range haplotype")
		}
	}
}

func TestHaplotypeStoreBadInput(t *testing.T) {
	if _, err := ReadHaplotypeStore(strings.NewReader("PBWT0000")); err != ErrStoreMagic {
		t.Errorf("Got %v, expected %v", err, ErrStoreMagic)
	}

	var buf bytes.Buffer
	if err := WriteHaplotypeStore(&buf, testDataset(t), CompressionZStandard); err != nil {
		t.Fatal(err)
	}
	truncated := buf.Bytes()[:buf.Len()-1]
	if _, err := ReadHaplotypeStore(bytes.NewReader(truncated)); err != ErrTruncatedFile {
		t.Errorf("Got %v, expected %v", err, ErrTruncatedFile)
	}
}

func TestHaplotypeStoreCorruptHeader(t *testing.T) {
	cases := []storeHeader{
		{Version: storeVersion, NHaplotypes: 4, NSites: 4, Compression: CompressionDisabled, UncompressedSize: 32, PayloadSize: 1 << 63},
		{Version: storeVersion, NHaplotypes: 4, NSites: 4, Compression: CompressionZStandard, UncompressedSize: 32, PayloadSize: 1 << 40},
		{Version: storeVersion, NHaplotypes: 4, NSites: 4, Compression: CompressionDisabled, UncompressedSize: 1 << 62, PayloadSize: 1 << 62},
		{Version: storeVersion, NHaplotypes: 4, NSites: 4, Compression: 7, UncompressedSize: 32, PayloadSize: 32},
	}

	for i, header := range cases {
		var buf bytes.Buffer
		buf.WriteString(storeMagic)
		if err := binary.Write(&buf, binary.LittleEndian, &header); err != nil {
			t.Fatal(err)
		}

		_, err := ReadHaplotypeStore(&buf)
		var headerErr *StoreHeaderError
		if !errors.As(err, &headerErr) {
			t.Errorf("Case %d: got %v, expected a StoreHeaderError", i, err)
		}
	}

	// A consistent header whose payload never arrives.
	var buf bytes.Buffer
	buf.WriteString(storeMagic)
	header := storeHeader{Version: storeVersion, NHaplotypes: 1 << 20, NSites: 1 << 20, Compression: CompressionDisabled, UncompressedSize: 1 << 37, PayloadSize: 1 << 37}
	if err := binary.Write(&buf, binary.LittleEndian, &header); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadHaplotypeStore(&buf); err != ErrTruncatedFile {
		t.Errorf("Got %v, expected %v", err, ErrTruncatedFile)
	}
}

func TestSummarize(t *testing.T) {
	ds := testDataset(t)

	s, err := Summarize(ds)
	if err != nil {
		t.Fatal(err)
	}

	if s.NSamples != 2 || s.NHaplotypes != 4 || s.NSites != 4 {
		t.Errorf("Got %+v", s)
	}
	if s.TotalCM != 4 {
		t.Errorf("Got %f cM, expected 4", s.TotalCM)
	}
	if math.Abs(s.MeanSpacing-4.0/3) > 1e-12 {
		t.Errorf("Got mean spacing %f, expected %f", s.MeanSpacing, 4.0/3)
	}
	if s.UncompressedSize != 32 {
		t.Errorf("Got %d uncompressed bytes, expected 32", s.UncompressedSize)
	}
	if s.RegionCounts["Europe"] != 1 || s.RegionCounts["Africa"] != 1 {
		t.Errorf("Got %v", s.RegionCounts)
	}

	var buf bytes.Buffer
	if err := s.Write(&buf, ds.Populations.Regions()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, line := range []string{
		"Number of samples:\t2\n",
		"Number of sites:\t4\n",
		"Total recombination distance:\t4.00000\n",
		"Africa\t1\n",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("Expected %q in %q", line, out)
		}
	}
}
