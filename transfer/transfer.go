package transfer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filecabinet/record"
)

// Format is an export/import file format
type Format string

const (
	CSV Format = "csv"
	XML Format = "xml"
)

// ErrUnknownFormat is returned for formats other than csv and xml
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat resolves a format name case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case CSV, XML:
		return f, nil
	}
	return "", fmt.Errorf("%w '%s', expected csv or xml", ErrUnknownFormat, name)
}

// RowError reports a malformed row that was skipped on import.
// Row is the CSV line number or the XML record ordinal.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Write encodes records to w
func Write(w io.Writer, format Format, records []record.Record) error {
	switch format {
	case CSV:
		return writeCSV(w, records)
	case XML:
		return writeXML(w, records)
	}
	return fmt.Errorf("%w '%s'", ErrUnknownFormat, format)
}

// Read decodes records from r. Malformed rows are skipped and reported;
// the error is only set when the input as a whole cannot be read.
func Read(r io.Reader, format Format) ([]record.Record, []RowError, error) {
	switch format {
	case CSV:
		return readCSV(r)
	case XML:
		return readXML(r)
	}
	return nil, nil, fmt.Errorf("%w '%s'", ErrUnknownFormat, format)
}

// ExportFile writes records to path, replacing any existing file. The
// directory must already exist. Paths ending in .zst or .lz4 are compressed.
func ExportFile(path string, format Format, records []record.Record) (err error) {
	dir := filepath.Dir(path)
	if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
		return fmt.Errorf("export to %s: directory '%s' does not exist", path, dir)
	}

	w, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := w.Close(); err == nil {
			err = closeErr
		}
	}()
	return Write(w, format, records)
}

// ImportFile reads records from path, decompressing .zst and .lz4 files
func ImportFile(path string, format Format) ([]record.Record, []RowError, error) {
	r, err := open(path)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()
	return Read(r, format)
}
