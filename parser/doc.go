// Package parser provides shell command parsing.
//
// The parser package converts one line typed at the interactive shell into a
// ParsedStatement that the executor dispatches. Keywords and field names are
// case-insensitive; values may be single-quoted, double-quoted or bare.
//
// Supported Commands:
//   - create, edit <id>: Interactive entry of a new or existing record
//   - insert (<fields>) values (<values>): All seven fields, in any order
//   - update set <field> = '<value>'[, ...] where <filter>: id cannot be set
//   - delete where <filter>
//   - select [<field>, ...] [where <filter>]: All fields when none are listed
//   - find <firstname|lastname|dateofbirth> '<value>'
//   - list, stat, purge
//   - export <csv|xml> <path>, import <csv|xml> <path>
//   - help [<command>], exit
//
// Filter clauses are passed through as text; the query package parses them
// so that select can reject mixed and/or while update and delete pick the
// combinator themselves.
//
// Usage Example:
//
//	p := parser.New()
//
//	stmt, err := p.Parse("update set height = '170' where firstname = 'Ann'")
//	if err != nil {
//		log.Fatal(err)
//	}
//	// stmt.Type == parser.Update
//	// stmt.Assignments[0].Field == record.FieldHeight
//	// stmt.Where == "firstname = 'Ann'"
package parser
