package plink

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdOnce    sync.Once
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
	zstdErr     error
)

func zstdCodecs() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdEncoder, zstdErr = zstd.NewWriter(nil)
		if zstdErr != nil {
			return
		}
		zstdDecoder, zstdErr = zstd.NewReader(nil)
	})

	return zstdEncoder, zstdDecoder, zstdErr
}

// CompressZStandard appends the zstd compression of src to dst.
func CompressZStandard(dst, src []byte) ([]byte, error) {
	enc, _, err := zstdCodecs()
	if err != nil {
		return nil, err
	}

	return enc.EncodeAll(src, dst), nil
}

// DecompressZStandard decompresses src, appending to dst. If dst has enough
// capacity no allocation is made.
func DecompressZStandard(dst, src []byte) ([]byte, error) {
	_, dec, err := zstdCodecs()
	if err != nil {
		return nil, err
	}

	return dec.DecodeAll(src, dst)
}
