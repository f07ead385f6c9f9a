package executor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"filecabinet/record"
)

func formatRecords(rows []record.Record) string {
	if len(rows) == 0 {
		return "No records found."
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

// rightAligned reports whether a column holds numbers
func rightAligned(f record.Field) bool {
	return f == record.FieldID || f == record.FieldWeight || f == record.FieldHeight
}

// formatTable renders rows as a boxed table:
//
//	+----+-----------+
//	| Id | FirstName |
//	+----+-----------+
//	|  1 | Ann       |
//	+----+-----------+
func formatTable(columns []record.Field, rows []record.Record) string {
	cells := make([][]string, len(rows))
	widths := make([]int, len(columns))
	for i, f := range columns {
		widths[i] = utf8.RuneCountInString(f.Title())
	}
	for r, row := range rows {
		cells[r] = make([]string, len(columns))
		for i, f := range columns {
			cells[r][i] = f.Format(row)
			widths[i] = max(widths[i], utf8.RuneCountInString(cells[r][i]))
		}
	}

	var b strings.Builder
	border := func() {
		b.WriteByte('+')
		for _, w := range widths {
			b.WriteString(strings.Repeat("-", w+2))
			b.WriteByte('+')
		}
		b.WriteByte('\n')
	}
	line := func(values []string, header bool) {
		b.WriteByte('|')
		for i, v := range values {
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(v))
			if !header && rightAligned(columns[i]) {
				fmt.Fprintf(&b, " %s%s |", pad, v)
			} else {
				fmt.Fprintf(&b, " %s%s |", v, pad)
			}
		}
		b.WriteByte('\n')
	}

	titles := make([]string, len(columns))
	for i, f := range columns {
		titles[i] = f.Title()
	}
	border()
	line(titles, true)
	border()
	for _, row := range cells {
		line(row, false)
	}
	border()
	return strings.TrimSuffix(b.String(), "\n")
}
