package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"filecabinet/record"
)

// NameCheck bounds the trimmed length of a first or last name
type NameCheck struct {
	Field record.Field
	Min   int
	Max   int
}

func (c NameCheck) Validate(fields record.Fields) error {
	name := fields.FirstName
	if c.Field == record.FieldLastName {
		name = fields.LastName
	}
	name = strings.TrimSpace(name)

	n := utf8.RuneCountInString(name)
	if n < c.Min || n > c.Max {
		return &Error{Field: c.Field, Reason: fmt.Sprintf("length must be between %d and %d", c.Min, c.Max)}
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return &Error{Field: c.Field, Reason: "must contain only printable characters"}
		}
	}
	return nil
}

// DateOfBirthCheck requires From <= date of birth <= today
type DateOfBirthCheck struct {
	From time.Time
	Now  func() time.Time
}

func (c DateOfBirthCheck) Validate(fields record.Fields) error {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	dob := record.Date(fields.DateOfBirth)
	if dob.Before(record.Date(c.From)) || dob.After(record.Date(now())) {
		return &Error{
			Field:  record.FieldDateOfBirth,
			Reason: fmt.Sprintf("must be between %s and today", c.From.Format(record.DateLayout)),
		}
	}
	return nil
}

// SexCheck rejects blank values and any listed character
type SexCheck struct {
	Forbidden []rune
}

func (c SexCheck) Validate(fields record.Fields) error {
	if fields.Sex == 0 || unicode.IsSpace(fields.Sex) {
		return &Error{Field: record.FieldSex, Reason: "must not be blank"}
	}
	for _, r := range c.Forbidden {
		if fields.Sex == r {
			return &Error{Field: record.FieldSex, Reason: fmt.Sprintf("must not be '%c'", r)}
		}
	}
	return nil
}

// WeightCheck bounds the weight. A nil Max leaves it unbounded.
type WeightCheck struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

func (c WeightCheck) Validate(fields record.Fields) error {
	if fields.Weight.LessThan(c.Min) {
		return &Error{Field: record.FieldWeight, Reason: fmt.Sprintf("must be at least %s", c.Min)}
	}
	if c.Max != nil && fields.Weight.GreaterThan(*c.Max) {
		return &Error{Field: record.FieldWeight, Reason: fmt.Sprintf("must be at most %s", *c.Max)}
	}
	return nil
}

// HeightCheck bounds the height inclusively
type HeightCheck struct {
	Min int16
	Max int16
}

func (c HeightCheck) Validate(fields record.Fields) error {
	if fields.Height < c.Min || fields.Height > c.Max {
		return &Error{Field: record.FieldHeight, Reason: fmt.Sprintf("must be between %d and %d", c.Min, c.Max)}
	}
	return nil
}
