package parser

import (
	"fmt"
	"regexp"
	"strings"

	"filecabinet/record"
)

var (
	updatePattern     = regexp.MustCompile(`(?i)^UPDATE\s+SET\s+(.+?)\s+WHERE\s+(.+)$`)
	assignmentPattern = regexp.MustCompile(`^(\w+)\s*=\s*(.+)$`)
)

func (p *Parser) parseUpdate(line string) (*ParsedStatement, error) {
	// update set lastname = 'Moss', height = '170' where firstname = 'Ann'
	matches := updatePattern.FindStringSubmatch(line)
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid UPDATE syntax, expected: update set <field> = '<value>'[, ...] where <filter>")
	}

	var assignments []record.Assignment
	for _, part := range splitList(matches[1]) {
		m := assignmentPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("invalid assignment '%s'", part)
		}
		field, ok := record.LookupField(m[1])
		if !ok {
			return nil, fmt.Errorf("unknown field '%s'", m[1])
		}
		if field == record.FieldID {
			return nil, fmt.Errorf("id cannot be updated")
		}
		assignments = append(assignments, record.Assignment{Field: field, Value: unquote(m[2])})
	}

	return &ParsedStatement{
		Type:        Update,
		Assignments: assignments,
		Where:       strings.TrimSpace(matches[2]),
	}, nil
}
