package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Field identifies one column of a person record
type Field int

const (
	FieldID Field = iota
	FieldFirstName
	FieldLastName
	FieldDateOfBirth
	FieldSex
	FieldWeight
	FieldHeight
)

// AllFields lists every column in display order
var AllFields = []Field{
	FieldID, FieldFirstName, FieldLastName, FieldDateOfBirth,
	FieldSex, FieldWeight, FieldHeight,
}

var fieldNames = map[Field]string{
	FieldID:          "id",
	FieldFirstName:   "firstname",
	FieldLastName:    "lastname",
	FieldDateOfBirth: "dateofbirth",
	FieldSex:         "sex",
	FieldWeight:      "weight",
	FieldHeight:      "height",
}

var fieldTitles = map[Field]string{
	FieldID:          "Id",
	FieldFirstName:   "FirstName",
	FieldLastName:    "LastName",
	FieldDateOfBirth: "DateOfBirth",
	FieldSex:         "Sex",
	FieldWeight:      "Weight",
	FieldHeight:      "Height",
}

// String returns the lowercase name used in filter clauses
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Title returns the column heading used in tables
func (f Field) Title() string {
	return fieldTitles[f]
}

// LookupField resolves a field name case-insensitively
func LookupField(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range fieldNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

// Format renders the value of field f in r
func (f Field) Format(r Record) string {
	switch f {
	case FieldID:
		return strconv.FormatInt(int64(r.ID), 10)
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldDateOfBirth:
		return r.DateOfBirth.Format(DateLayout)
	case FieldSex:
		return string(r.Sex)
	case FieldWeight:
		return r.Weight.String()
	case FieldHeight:
		return strconv.FormatInt(int64(r.Height), 10)
	}
	return ""
}

// Set parses literal and assigns it to field f of fields.
// FieldID cannot be assigned through Set.
func (f Field) Set(fields *Fields, literal string) error {
	switch f {
	case FieldFirstName:
		fields.FirstName = strings.TrimSpace(literal)
	case FieldLastName:
		fields.LastName = strings.TrimSpace(literal)
	case FieldDateOfBirth:
		d, err := ParseDate(literal)
		if err != nil {
			return err
		}
		fields.DateOfBirth = d
	case FieldSex:
		s, err := ParseSex(literal)
		if err != nil {
			return err
		}
		fields.Sex = s
	case FieldWeight:
		w, err := ParseWeight(literal)
		if err != nil {
			return err
		}
		fields.Weight = w
	case FieldHeight:
		h, err := ParseHeight(literal)
		if err != nil {
			return err
		}
		fields.Height = h
	default:
		return fmt.Errorf("field '%s' cannot be assigned", f)
	}
	return nil
}

var dateLayouts = []string{DateLayout, "2006-01-02", "1/2/2006"}

// ParseID parses a record ID
func ParseID(s string) (int32, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id '%s'", s)
	}
	return int32(id), nil
}

// ParseDate parses a calendar date in one of the accepted layouts
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date '%s', expected MM/dd/yyyy", s)
}

// ParseSex parses a single-character sex literal
func ParseSex(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid sex '%s', expected a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// ParseWeight parses a decimal weight
func ParseWeight(s string) (decimal.Decimal, error) {
	w, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid weight '%s'", s)
	}
	return w, nil
}

// ParseHeight parses a 16-bit height
func ParseHeight(s string) (int16, error) {
	h, err := strconv.ParseInt(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid height '%s'", s)
	}
	return int16(h), nil
}
