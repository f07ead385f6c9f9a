package record

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical date format used for display and export
const DateLayout = "01/02/2006"

// Fields holds every mutable field of a person record
type Fields struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Sex         rune
	Weight      decimal.Decimal
	Height      int16
}

// Record is a person record with its caller-assigned ID
type Record struct {
	ID int32
	Fields
}

// Normalize trims the names and drops any time-of-day from the date of birth
func (f Fields) Normalize() Fields {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	if !f.DateOfBirth.IsZero() {
		f.DateOfBirth = Date(f.DateOfBirth)
	}
	return f
}

// Equal reports whether two field sets hold the same values
func (f Fields) Equal(o Fields) bool {
	return f.FirstName == o.FirstName &&
		f.LastName == o.LastName &&
		SameDate(f.DateOfBirth, o.DateOfBirth) &&
		f.Sex == o.Sex &&
		f.Weight.Equal(o.Weight) &&
		f.Height == o.Height
}

// Equal reports whether two records have the same ID and fields
func (r Record) Equal(o Record) bool {
	return r.ID == o.ID && r.Fields.Equal(o.Fields)
}

// String renders the record the way the shell lists it
func (r Record) String() string {
	return fmt.Sprintf("#%d, %s, %s, %s, %c, %s, %d",
		r.ID, r.FirstName, r.LastName, r.DateOfBirth.Format(DateLayout),
		r.Sex, r.Weight.String(), r.Height)
}

// Date truncates t to a UTC calendar date
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports calendar-date equality
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
