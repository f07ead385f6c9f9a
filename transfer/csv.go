package transfer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"filecabinet/record"
)

var csvHeader = []string{"Id", "First Name", "Last Name", "Date of Birth", "Sex", "Weight", "Height"}

func writeCSV(w io.Writer, records []record.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	row := make([]string, len(record.AllFields))
	for _, r := range records {
		for i, f := range record.AllFields {
			row[i] = f.Format(r)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readCSV(r io.Reader) ([]record.Record, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		records []record.Record
		rejects []RowError
		first   = true
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			rejects = append(rejects, RowError{Row: parseErr.Line, Err: parseErr.Err})
			continue
		}
		if err != nil {
			return records, rejects, err
		}

		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(row) {
				continue
			}
		}
		rec, err := parseRow(row)
		if err != nil {
			rejects = append(rejects, RowError{Row: line, Err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, rejects, nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), csvHeader[0])
}

// parseRow reads the columns in record.AllFields order
func parseRow(row []string) (record.Record, error) {
	if len(row) != len(record.AllFields) {
		return record.Record{}, fmt.Errorf("expected %d columns, got %d", len(record.AllFields), len(row))
	}
	id, err := record.ParseID(row[0])
	if err != nil {
		return record.Record{}, err
	}
	r := record.Record{ID: id}
	for i, f := range record.AllFields[1:] {
		if err := f.Set(&r.Fields, row[i+1]); err != nil {
			return record.Record{}, err
		}
	}
	return r, nil
}
