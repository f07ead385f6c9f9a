package validation

import (
	"fmt"

	"filecabinet/record"
)

// Validator checks a candidate record before a store admits it
type Validator interface {
	Validate(fields record.Fields) error
}

// Func adapts a plain function to the Validator interface
type Func func(fields record.Fields) error

// Validate calls fn
func (fn Func) Validate(fields record.Fields) error {
	return fn(fields)
}

// Error reports which field failed and why
type Error struct {
	Field  record.Field
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Composite runs its checks in order and stops at the first failure
type Composite []Validator

// Validate returns the first failing check's error
func (c Composite) Validate(fields record.Fields) error {
	for _, v := range c {
		if err := v.Validate(fields); err != nil {
			return err
		}
	}
	return nil
}
