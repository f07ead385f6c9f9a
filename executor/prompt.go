package executor

import (
	"errors"
	"fmt"
	"strings"

	"filecabinet/parser"
	"filecabinet/record"
	"filecabinet/validation"
)

var promptLabels = map[record.Field]string{
	record.FieldFirstName:   "First name",
	record.FieldLastName:    "Last name",
	record.FieldDateOfBirth: "Date of birth",
	record.FieldSex:         "Sex",
	record.FieldWeight:      "Weight",
	record.FieldHeight:      "Height",
}

func (e *Executor) executeCreate() (string, error) {
	var (
		fields record.Fields
		id     int32
	)
	err := e.collect(&fields, false, func(f record.Fields) error {
		var err error
		id, err = e.db.Create(f)
		return err
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Record #%d is created.", id), nil
}

func (e *Executor) executeEdit(stmt *parser.ParsedStatement) (string, error) {
	current, err := e.db.Get(stmt.ID)
	if err != nil {
		return "", err
	}
	fields := current.Fields
	err = e.collect(&fields, true, func(f record.Fields) error {
		return e.db.Edit(stmt.ID, f)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Record #%d is updated.", stmt.ID), nil
}

// collect prompts for every field and hands the result to save.
// When save rejects a field, only that field is asked for again.
func (e *Executor) collect(fields *record.Fields, keep bool, save func(record.Fields) error) error {
	pending := record.AllFields[1:]
	for {
		if err := e.prompt(fields, pending, keep); err != nil {
			return err
		}
		err := save(*fields)
		var invalid *validation.Error
		if !errors.As(err, &invalid) {
			return err
		}
		fmt.Fprintf(e.out, "Validation failed: %s. Please, correct your input.\n", invalid.Reason)
		pending, keep = []record.Field{invalid.Field}, false
	}
}

// prompt reads one line per field until it converts.
// With keep set an empty answer leaves the current value.
func (e *Executor) prompt(fields *record.Fields, only []record.Field, keep bool) error {
	for _, f := range only {
		for {
			if keep {
				fmt.Fprintf(e.out, "%s (%s): ", promptLabels[f], f.Format(record.Record{Fields: *fields}))
			} else {
				fmt.Fprintf(e.out, "%s: ", promptLabels[f])
			}
			answer, err := e.readLine()
			if err != nil {
				return fmt.Errorf("input closed: %w", err)
			}
			answer = strings.TrimSpace(answer)
			if keep && answer == "" {
				break
			}
			if err := f.Set(fields, answer); err != nil {
				fmt.Fprintf(e.out, "Conversion failed: %v. Please, correct your input.\n", err)
				continue
			}
			break
		}
	}
	return nil
}
