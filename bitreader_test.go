package plink

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

func TestBitReader(t *testing.T) {
	var target uint64 = 5
	data := make([]byte, 8) // Big enough to hold a uint64

	binary.LittleEndian.PutUint64(data, target)

	expected := []bool{true, false, true, false, false, false, false, false}
	br := newBitReader(bytes.NewBuffer(data))
	for i, want := range expected {
		got, err := br.ReadBit()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("Bit %d: got %v, expected %v", i, got, want)
		}
	}
}

func TestBitReadUint(t *testing.T) {
	for _, target := range []uint64{0, 3, 1 << 40, 0xDEADBEEFCAFEF00D, ^uint64(0)} {
		data := make([]byte, 8)
		binary.LittleEndian.PutUint64(data, target)

		br := newBitReader(bytes.NewBuffer(data))
		val, err := br.ReadUint(64)
		if err != nil {
			t.Error(err)
		}

		if target != val {
			t.Errorf("Got %d, expected %d", val, target)
		}
	}
}

func TestBitReaderEOF(t *testing.T) {
	br := newBitReader(bytes.NewBuffer([]byte{0xFF}))
	if _, err := br.ReadUint(8); err != nil {
		t.Fatal(err)
	}
	if _, err := br.ReadBit(); err != io.EOF {
		t.Errorf("Got %v, expected %v", err, io.EOF)
	}
}
