package parser

import (
	"strings"
)

// splitList splits on commas outside quotes and trims each part
func splitList(str string) []string {
	var (
		parts []string
		quote rune
		start int
	)
	for i, r := range str {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ',':
			parts = append(parts, strings.TrimSpace(str[start:i]))
			start = i + 1
		}
	}
	return append(parts, strings.TrimSpace(str[start:]))
}

// unquote strips one pair of matching single or double quotes
func unquote(str string) string {
	str = strings.TrimSpace(str)
	if len(str) >= 2 &&
		((strings.HasPrefix(str, "'") && strings.HasSuffix(str, "'")) ||
			(strings.HasPrefix(str, "\"") && strings.HasSuffix(str, "\""))) {
		return str[1 : len(str)-1]
	}
	return str
}
