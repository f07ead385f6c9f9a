package parser

import (
	"fmt"
	"regexp"
	"strings"

	"filecabinet/record"
)

var whereKeyword = regexp.MustCompile(`(?i)(?:^|\s)WHERE\s+`)

func (p *Parser) parseSelect(rest string) (*ParsedStatement, error) {
	// select
	// select firstname, lastname where id = '1'
	// select where lastname = 'Lee'
	columns, where := rest, ""
	if loc := whereKeyword.FindStringIndex(rest); loc != nil {
		columns, where = rest[:loc[0]], rest[loc[1]:]
	}

	stmt := &ParsedStatement{Type: Select, Where: strings.TrimSpace(where)}
	columns = strings.TrimSpace(columns)
	if columns == "" || columns == "*" {
		return stmt, nil
	}

	seen := make(map[record.Field]bool)
	for _, name := range splitList(columns) {
		field, ok := record.LookupField(name)
		if !ok {
			return nil, fmt.Errorf("unknown field '%s'", name)
		}
		if !seen[field] {
			seen[field] = true
			stmt.Columns = append(stmt.Columns, field)
		}
	}
	return stmt, nil
}
