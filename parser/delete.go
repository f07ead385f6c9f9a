package parser

import (
	"fmt"
	"regexp"
	"strings"
)

var deletePattern = regexp.MustCompile(`(?i)^DELETE\s+WHERE\s+(.+)$`)

func (p *Parser) parseDelete(line string) (*ParsedStatement, error) {
	// delete where id = '1'
	matches := deletePattern.FindStringSubmatch(line)
	if len(matches) != 2 {
		return nil, fmt.Errorf("invalid DELETE syntax (WHERE required)")
	}
	return &ParsedStatement{Type: Delete, Where: strings.TrimSpace(matches[1])}, nil
}
