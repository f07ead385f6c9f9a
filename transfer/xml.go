package transfer

import (
	"encoding/xml"
	"io"

	"filecabinet/record"
)

type xmlRecords struct {
	XMLName xml.Name    `xml:"records"`
	Records []xmlRecord `xml:"record"`
}

type xmlRecord struct {
	ID          string  `xml:"id,attr"`
	Name        xmlName `xml:"name"`
	DateOfBirth string  `xml:"dateOfBirth"`
	Sex         string  `xml:"sex"`
	Weight      string  `xml:"weight"`
	Height      string  `xml:"height"`
}

type xmlName struct {
	First string `xml:"first,attr"`
	Last  string `xml:"last,attr"`
}

func writeXML(w io.Writer, records []record.Record) error {
	doc := xmlRecords{Records: make([]xmlRecord, len(records))}
	for i, r := range records {
		doc.Records[i] = xmlRecord{
			ID:          record.FieldID.Format(r),
			Name:        xmlName{First: r.FirstName, Last: r.LastName},
			DateOfBirth: record.FieldDateOfBirth.Format(r),
			Sex:         record.FieldSex.Format(r),
			Weight:      record.FieldWeight.Format(r),
			Height:      record.FieldHeight.Format(r),
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func readXML(r io.Reader) ([]record.Record, []RowError, error) {
	var doc xmlRecords
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, err
	}

	var (
		records []record.Record
		rejects []RowError
	)
	for i, x := range doc.Records {
		rec, err := parseRow([]string{x.ID, x.Name.First, x.Name.Last, x.DateOfBirth, x.Sex, x.Weight, x.Height})
		if err != nil {
			rejects = append(rejects, RowError{Row: i + 1, Err: err})
			continue
		}
		records = append(records, rec)
	}
	return records, rejects, nil
}
