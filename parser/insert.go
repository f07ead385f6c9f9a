package parser

import (
	"fmt"
	"regexp"

	"filecabinet/record"
)

var insertPattern = regexp.MustCompile(`(?i)^INSERT\s*\((.*)\)\s*VALUES\s*\((.*)\)$`)

func (p *Parser) parseInsert(line string) (*ParsedStatement, error) {
	// insert (id, firstname, lastname, dateofbirth, sex, weight, height) values ('1', 'Ann', ...)
	matches := insertPattern.FindStringSubmatch(line)
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid INSERT syntax, expected: insert (<fields>) values (<values>)")
	}

	columns := splitList(matches[1])
	values := splitList(matches[2])
	if len(columns) != len(values) {
		return nil, fmt.Errorf("insert lists %d fields but %d values", len(columns), len(values))
	}

	var r record.Record
	seen := make(map[record.Field]bool)
	for i, name := range columns {
		field, ok := record.LookupField(name)
		if !ok {
			return nil, fmt.Errorf("unknown field '%s'", name)
		}
		if seen[field] {
			return nil, fmt.Errorf("field '%s' is given twice", field)
		}
		seen[field] = true

		value := unquote(values[i])
		if field == record.FieldID {
			id, err := record.ParseID(value)
			if err != nil {
				return nil, err
			}
			r.ID = id
			continue
		}
		if err := field.Set(&r.Fields, value); err != nil {
			return nil, err
		}
	}

	for _, f := range record.AllFields {
		if !seen[f] {
			return nil, fmt.Errorf("insert is missing field '%s'", f)
		}
	}
	return &ParsedStatement{Type: Insert, Record: r}, nil
}
