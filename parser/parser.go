package parser

import (
	"fmt"
	"regexp"
	"strings"

	"filecabinet/record"
	"filecabinet/transfer"
)

// StatementType names a shell command
type StatementType string

const (
	Create StatementType = "CREATE"
	Edit   StatementType = "EDIT"
	Insert StatementType = "INSERT"
	Update StatementType = "UPDATE"
	Delete StatementType = "DELETE"
	Select StatementType = "SELECT"
	Find   StatementType = "FIND"
	List   StatementType = "LIST"
	Stat   StatementType = "STAT"
	Purge  StatementType = "PURGE"
	Export StatementType = "EXPORT"
	Import StatementType = "IMPORT"
	Help   StatementType = "HELP"
	Exit   StatementType = "EXIT"
)

// ParsedStatement represents a parsed shell command
type ParsedStatement struct {
	Type        StatementType
	ID          int32               // EDIT
	Record      record.Record       // INSERT
	Assignments []record.Assignment // UPDATE
	Where       string              // UPDATE, DELETE, SELECT filter clause
	Columns     []record.Field      // SELECT, all when empty
	Field       record.Field        // FIND
	Value       string              // FIND
	Format      transfer.Format     // EXPORT, IMPORT
	Path        string              // EXPORT, IMPORT
	Topic       string              // HELP
}

// UnknownCommandError reports an unrecognized first word
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command '%s'", e.Command)
}

// Parser handles shell command parsing
type Parser struct{}

// New creates a new parser
func New() *Parser {
	return &Parser{}
}

// Parse parses one shell line
func (p *Parser) Parse(line string) (*ParsedStatement, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("empty command")
	}
	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	// insert(...) may omit the space before its column list
	if head, _, found := strings.Cut(command, "("); found && strings.EqualFold(head, "insert") {
		command = head
	}

	switch StatementType(strings.ToUpper(command)) {
	case Create:
		return p.bare(Create, rest)
	case Edit:
		return p.parseEdit(rest)
	case Insert:
		return p.parseInsert(line)
	case Update:
		return p.parseUpdate(line)
	case Delete:
		return p.parseDelete(line)
	case Select:
		return p.parseSelect(rest)
	case Find:
		return p.parseFind(rest)
	case List:
		return p.bare(List, rest)
	case Stat:
		return p.bare(Stat, rest)
	case Purge:
		return p.bare(Purge, rest)
	case Export:
		return p.parseTransfer(Export, rest)
	case Import:
		return p.parseTransfer(Import, rest)
	case Help:
		return &ParsedStatement{Type: Help, Topic: strings.ToLower(rest)}, nil
	case Exit:
		return p.bare(Exit, rest)
	}
	return nil, &UnknownCommandError{Command: command}
}

// bare accepts commands that take no arguments
func (p *Parser) bare(t StatementType, rest string) (*ParsedStatement, error) {
	if rest != "" {
		return nil, fmt.Errorf("'%s' takes no arguments", strings.ToLower(string(t)))
	}
	return &ParsedStatement{Type: t}, nil
}

func (p *Parser) parseEdit(rest string) (*ParsedStatement, error) {
	// edit 5
	id, err := record.ParseID(unquote(rest))
	if err != nil {
		return nil, fmt.Errorf("invalid EDIT syntax: %w", err)
	}
	return &ParsedStatement{Type: Edit, ID: id}, nil
}

// argsPattern splits "<word> <rest>"
var argsPattern = regexp.MustCompile(`^(\w+)\s+(.+)$`)

func (p *Parser) parseFind(rest string) (*ParsedStatement, error) {
	// find firstname 'Ann'
	matches := argsPattern.FindStringSubmatch(rest)
	if matches == nil {
		return nil, fmt.Errorf("invalid FIND syntax, expected: find <field> '<value>'")
	}
	field, ok := record.LookupField(matches[1])
	if !ok || (field != record.FieldFirstName && field != record.FieldLastName && field != record.FieldDateOfBirth) {
		return nil, fmt.Errorf("cannot find by '%s', expected firstname, lastname or dateofbirth", matches[1])
	}
	return &ParsedStatement{Type: Find, Field: field, Value: unquote(matches[2])}, nil
}

func (p *Parser) parseTransfer(t StatementType, rest string) (*ParsedStatement, error) {
	// export csv records.csv
	matches := argsPattern.FindStringSubmatch(rest)
	if matches == nil {
		return nil, fmt.Errorf("invalid %s syntax, expected: %s <csv|xml> <path>", t, strings.ToLower(string(t)))
	}
	format, err := transfer.ParseFormat(matches[1])
	if err != nil {
		return nil, err
	}
	return &ParsedStatement{Type: t, Format: format, Path: unquote(matches[2])}, nil
}
