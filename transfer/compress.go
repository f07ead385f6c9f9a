package transfer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is the stream compression applied to an export file
type Compression int

const (
	None Compression = iota
	Zstd
	LZ4
)

// CompressionFor picks the compression from the path's extension
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	}
	return None
}

// stack closes its layers innermost first
type stack []io.Closer

func (s stack) Close() error {
	var errs []error
	for _, c := range s {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

type writeStack struct {
	io.Writer
	stack
}

type readStack struct {
	io.Reader
	stack
}

// create opens path for writing through the compressor its extension selects
func create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	switch CompressionFor(path) {
	case Zstd:
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			f.Close()
			return nil, err
		}
		return writeStack{enc, stack{enc, f}}, nil
	case LZ4:
		zw := lz4.NewWriter(f)
		return writeStack{zw, stack{zw, f}}, nil
	}
	return f, nil
}

// open opens path for reading through the decompressor its extension selects
func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch CompressionFor(path) {
	case Zstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return readStack{dec, stack{dec.IOReadCloser(), f}}, nil
	case LZ4:
		return readStack{lz4.NewReader(f), stack{f}}, nil
	}
	return f, nil
}
