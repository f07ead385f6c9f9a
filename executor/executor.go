package executor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"filecabinet/database"
	"filecabinet/parser"
	"filecabinet/record"
)

// Executor executes parsed shell statements
type Executor struct {
	db        *database.Database
	parser    *parser.Parser
	in        *bufio.Scanner
	out       io.Writer
	persisted bool // the store compacts on purge
}

// Option configures an Executor
type Option func(*Executor)

// WithInput sets where commands and prompt answers are read from
func WithInput(r io.Reader) Option {
	return func(e *Executor) { e.in = bufio.NewScanner(r) }
}

// WithOutput sets where prompts and results are written
func WithOutput(w io.Writer) Option {
	return func(e *Executor) { e.out = w }
}

// WithFileStore reports that the database is backed by the file store
func WithFileStore() Option {
	return func(e *Executor) { e.persisted = true }
}

// New creates a new executor
func New(db *database.Database, opts ...Option) *Executor {
	e := &Executor{
		db:     db,
		parser: parser.New(),
		in:     bufio.NewScanner(os.Stdin),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run reads and executes commands until exit or end of input
func (e *Executor) Run() error {
	for {
		fmt.Fprint(e.out, "> ")
		line, err := e.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		stmt, err := e.parser.Parse(line)
		var unknown *parser.UnknownCommandError
		switch {
		case errors.As(err, &unknown):
			fmt.Fprintf(e.out, "There is no '%s' command.\n", unknown.Command)
			fmt.Fprintln(e.out, "Type 'help' for the list of commands.")
			continue
		case err != nil:
			fmt.Fprintln(e.out, err)
			continue
		}

		result, err := e.Execute(stmt)
		if err != nil {
			fmt.Fprintln(e.out, err)
			continue
		}
		if result != "" {
			fmt.Fprintln(e.out, result)
		}
		if stmt.Type == parser.Exit {
			return nil
		}
	}
}

// Execute executes a parsed statement
func (e *Executor) Execute(stmt *parser.ParsedStatement) (string, error) {
	switch stmt.Type {
	case parser.Create:
		return e.executeCreate()
	case parser.Edit:
		return e.executeEdit(stmt)
	case parser.Insert:
		return e.executeInsert(stmt)
	case parser.Update:
		return e.executeUpdate(stmt)
	case parser.Delete:
		return e.executeDelete(stmt)
	case parser.Select:
		return e.executeSelect(stmt)
	case parser.Find:
		return e.executeFind(stmt)
	case parser.List:
		return e.executeList()
	case parser.Stat:
		return e.executeStat()
	case parser.Purge:
		return e.executePurge()
	case parser.Export:
		return e.executeExport(stmt)
	case parser.Import:
		return e.executeImport(stmt)
	case parser.Help:
		return help(stmt.Topic), nil
	case parser.Exit:
		return "Exiting an application...", nil
	default:
		return "", fmt.Errorf("unknown statement type: %s", stmt.Type)
	}
}

func (e *Executor) executeInsert(stmt *parser.ParsedStatement) (string, error) {
	if _, err := e.db.Insert(stmt.Record); err != nil {
		return "", err
	}
	return fmt.Sprintf("Record #%d is inserted.", stmt.Record.ID), nil
}

func (e *Executor) executeUpdate(stmt *parser.ParsedStatement) (string, error) {
	ids, err := e.db.Update(stmt.Assignments, stmt.Where)
	if err != nil {
		if len(ids) > 0 {
			return "", fmt.Errorf("%s Stopped: %w", affected(ids, "updated"), err)
		}
		return "", err
	}
	return affected(ids, "updated"), nil
}

func (e *Executor) executeDelete(stmt *parser.ParsedStatement) (string, error) {
	ids, err := e.db.Delete(stmt.Where)
	if err != nil {
		if len(ids) > 0 {
			return "", fmt.Errorf("%s Stopped: %w", affected(ids, "deleted"), err)
		}
		return "", err
	}
	return affected(ids, "deleted"), nil
}

func (e *Executor) executeSelect(stmt *parser.ParsedStatement) (string, error) {
	rows, err := e.db.Select(stmt.Where)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No records found.", nil
	}
	columns := stmt.Columns
	if len(columns) == 0 {
		columns = record.AllFields
	}
	return formatTable(columns, rows), nil
}

func (e *Executor) executeFind(stmt *parser.ParsedStatement) (string, error) {
	rows, err := e.db.Find(stmt.Field, stmt.Value)
	if err != nil {
		return "", err
	}
	return formatRecords(rows), nil
}

func (e *Executor) executeList() (string, error) {
	rows, err := e.db.List()
	if err != nil {
		return "", err
	}
	return formatRecords(rows), nil
}

func (e *Executor) executeStat() (string, error) {
	stat, err := e.db.Stat()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d record(s). %d removed.", stat.Total, stat.Removed), nil
}

func (e *Executor) executePurge() (string, error) {
	if !e.persisted {
		return "Purge only applies to the file store; the memory store has nothing to compact.", nil
	}
	result, err := e.db.Purge()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Data file processing is completed: %d of %d records were purged.", result.Purged, result.Total), nil
}

func (e *Executor) executeExport(stmt *parser.ParsedStatement) (string, error) {
	if _, err := e.db.Export(stmt.Format, stmt.Path); err != nil {
		return "", fmt.Errorf("Export failed: %w", err)
	}
	return fmt.Sprintf("All records are exported to file %s.", stmt.Path), nil
}

func (e *Executor) executeImport(stmt *parser.ParsedStatement) (string, error) {
	result, err := e.db.Import(stmt.Format, stmt.Path)
	if err != nil {
		return "", fmt.Errorf("Import failed: %w", err)
	}

	var b strings.Builder
	for _, r := range result.Rejected {
		fmt.Fprintf(&b, "Skipped %v\n", &r)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(&b, "Skipped record #%d: %v\n", f.ID, f.Err)
	}
	fmt.Fprintf(&b, "%d records were imported from %s.", result.Applied, stmt.Path)
	return b.String(), nil
}

// affected renders "Record #1 is deleted." or "Records #1, #2 are deleted."
func affected(ids []int32, verb string) string {
	switch len(ids) {
	case 0:
		return "No records match the filter."
	case 1:
		return fmt.Sprintf("Record #%d is %s.", ids[0], verb)
	}
	refs := make([]string, len(ids))
	for i, id := range ids {
		refs[i] = fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("Records %s are %s.", strings.Join(refs, ", "), verb)
}

func (e *Executor) readLine() (string, error) {
	if !e.in.Scan() {
		if err := e.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return e.in.Text(), nil
}
