package executor

import (
	"fmt"
	"strings"
)

type helpEntry struct {
	command  string
	short    string
	detailed string
}

var helpEntries = []helpEntry{
	{"create", "creates a new record", "Prompts for each field of a new record and stores it under the next free id."},
	{"edit", "edits an existing record", "edit <id>: prompts for each field, showing the current value. An empty answer keeps it."},
	{"insert", "inserts a record with a given id", "insert (id, firstname, lastname, dateofbirth, sex, weight, height) values ('1', 'Ann', 'Lee', '01/02/1990', 'F', '60.5', '160')"},
	{"update", "updates records matching a filter", "update set <field> = '<value>'[, ...] where <field> = '<value>' [and|or ...]. The id cannot be changed."},
	{"delete", "deletes records matching a filter", "delete where <field> = '<value>' [and|or ...]"},
	{"select", "prints records as a table", "select [<field>, ...] [where <field> = '<value>' [and|or ...]]. A filter may use and or or, not both."},
	{"find", "finds records by name or date of birth", "find <firstname|lastname|dateofbirth> '<value>'. Matching is case-insensitive."},
	{"list", "lists all records", "Prints every record in storage order."},
	{"stat", "prints record counts", "Prints the number of records and how many are removed but not yet purged."},
	{"purge", "compacts the data file", "Drops removed records from the data file. Only the file store has anything to purge."},
	{"export", "exports records to a file", "export <csv|xml> <path>. A .zst or .lz4 suffix compresses the file."},
	{"import", "imports records from a file", "import <csv|xml> <path>. Malformed rows are skipped; existing ids are overwritten."},
	{"help", "prints the help screen", "help [<command>]"},
	{"exit", "exits the application", "Closes the shell."},
}

func help(topic string) string {
	if topic == "" {
		var b strings.Builder
		b.WriteString("I'm pretty sure you need help.\n")
		for _, h := range helpEntries {
			fmt.Fprintf(&b, "\t%-8s- %s\n", h.command, h.short)
		}
		return strings.TrimSuffix(b.String(), "\n")
	}
	for _, h := range helpEntries {
		if h.command == topic {
			return h.detailed
		}
	}
	return fmt.Sprintf("There is no explanation for '%s' command.", topic)
}
