package plink

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/genomisc"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// ErrNoStorageClient is returned when a gs:// path is opened without a Google
// Storage client.
var ErrNoStorageClient = errors.New("a Google Storage client is required to read gs:// paths")

// DataType is the container format of an input stream. The values of the
// formats genomisc recognizes are shared with it.
type DataType = genomisc.DataType

const (
	DataTypeInvalid       = genomisc.DataTypeInvalid
	DataTypeNoCompression = genomisc.DataTypeNoCompression
	DataTypeGzip          = genomisc.DataTypeGzip
	DataTypeZip           = genomisc.DataTypeZip
	DataTypeXZ            = genomisc.DataTypeXZ
	DataTypeBZip2         = genomisc.DataTypeBZip2

	// DataTypeLZW is the Unix compress (.Z) format, which is not supported.
	DataTypeLZW = genomisc.DataTypeZ

	// DataTypeZlib is a raw zlib stream, which genomisc does not detect.
	DataTypeZlib DataType = 0xff
)

var zlibSigs = [][]byte{
	{0x78, 0x01},
	{0x78, 0x9c},
	{0x78, 0xda},
}

// DetectDataType peeks at the start of r and reports its container format
// without consuming any bytes.
func DetectDataType(r *bufio.Reader) (DataType, error) {
	buff, err := r.Peek(6)
	if err != nil && err != io.EOF {
		return DataTypeInvalid, err
	}
	if len(buff) == 0 {
		return DataTypeNoCompression, nil
	}

	for _, sig := range zlibSigs {
		if bytes.HasPrefix(buff, sig) {
			return DataTypeZlib, nil
		}
	}

	// genomisc consumes what it sniffs, so it gets a copy of the peeked bytes.
	return genomisc.DetectDataType(bytes.NewReader(buff))
}

// ErrUnsupportedLZW is returned for Unix compress (.Z) input.
var ErrUnsupportedLZW = errors.New("unix compress (.Z) input is not supported")

// Opener opens metadata and genotype inputs. The zero value reads local files
// only; set Storage to also read gs:// paths.
type Opener struct {
	Storage *storage.Client
}

// Open is OpenInput bound to the Opener's storage client.
func (o Opener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return OpenInput(ctx, o.Storage, path)
}

// OpenInput opens a local path, or a gs://bucket/object path when client is
// non-nil, and transparently decompresses gzip, zlib, zip, xz and bzip2 data.
// Failures to open are reported as *IOError.
func OpenInput(ctx context.Context, client *storage.Client, path string) (io.ReadCloser, error) {
	raw, err := openRaw(ctx, client, path)
	if err != nil {
		return nil, err
	}

	rc, err := maybeDecompress(raw)
	if err != nil {
		raw.Close()
		return nil, &IOError{Path: path, Err: err}
	}

	return rc, nil
}

func openRaw(ctx context.Context, client *storage.Client, path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, "gs://") {
		if client == nil {
			return nil, &IOError{Path: path, Err: ErrNoStorageClient}
		}

		bucketName, objectName, err := splitGSPath(path)
		if err != nil {
			return nil, &IOError{Path: path, Err: err}
		}

		rdr, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
		if err != nil {
			return nil, &IOError{Path: path, Err: err}
		}

		return rdr, nil
	}

	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	return f, nil
}

func splitGSPath(path string) (string, string, error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

func maybeDecompress(raw io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(raw)
	dt, err := DetectDataType(br)
	if err != nil {
		return nil, err
	}

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: gz, closers: []io.Closer{gz, raw}}, nil
	case DataTypeZlib:
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr, raw}}, nil
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		// Position the stream at the first member of the archive.
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return &readCloser{Reader: zr, closers: []io.Closer{raw}}, nil
	case DataTypeXZ:
		xr, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, err
		}
		return &readCloser{Reader: xr, closers: []io.Closer{raw}}, nil
	case DataTypeBZip2:
		return &readCloser{Reader: bzip2.NewReader(br), closers: []io.Closer{raw}}, nil
	case DataTypeLZW:
		return nil, ErrUnsupportedLZW
	}

	return &readCloser{Reader: br, closers: []io.Closer{raw}}, nil
}

// readCloser closes every layer of a stacked reader, innermost last.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *readCloser) Close() error {
	var err error
	for _, closer := range c.closers {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) string {
	return genomisc.ExpandHome(path)
}
