package validation

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"filecabinet/record"
)

// Policy names accepted by RuleSet and the command line
const (
	PolicyDefault = "default"
	PolicyCustom  = "custom"
)

// NameRule bounds a name's length
type NameRule struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// DateRule holds the earliest accepted date of birth (yyyy-MM-dd)
type DateRule struct {
	From string `yaml:"from"`
}

// SexRule lists characters that are not accepted
type SexRule struct {
	Forbidden string `yaml:"forbidden"`
}

// WeightRule bounds the weight; Max is optional
type WeightRule struct {
	Min float64  `yaml:"min"`
	Max *float64 `yaml:"max"`
}

// HeightRule bounds the height; Max is optional
type HeightRule struct {
	Min int16  `yaml:"min"`
	Max *int16 `yaml:"max"`
}

// Rules describes one validation policy
type Rules struct {
	FirstName   NameRule   `yaml:"firstName"`
	LastName    NameRule   `yaml:"lastName"`
	DateOfBirth DateRule   `yaml:"dateOfBirth"`
	Sex         SexRule    `yaml:"sex"`
	Weight      WeightRule `yaml:"weight"`
	Height      HeightRule `yaml:"height"`
}

// DefaultRules returns the permissive built-in policy
func DefaultRules() Rules {
	return Rules{
		FirstName:   NameRule{Min: 2, Max: 60},
		LastName:    NameRule{Min: 2, Max: 60},
		DateOfBirth: DateRule{From: "1950-01-01"},
		Weight:      WeightRule{Min: 0},
		Height:      HeightRule{Min: 0},
	}
}

// CustomRules returns the stricter built-in policy
func CustomRules() Rules {
	maxWeight := 5000.0
	maxHeight := int16(5000)
	return Rules{
		FirstName:   NameRule{Min: 3, Max: 70},
		LastName:    NameRule{Min: 3, Max: 70},
		DateOfBirth: DateRule{From: "1918-03-25"},
		Sex:         SexRule{Forbidden: "F"},
		Weight:      WeightRule{Min: 60, Max: &maxWeight},
		Height:      HeightRule{Min: 146, Max: &maxHeight},
	}
}

// Build turns the rules into a short-circuiting validator.
// now may be nil, in which case time.Now is used.
func (r Rules) Build(now func() time.Time) (Validator, error) {
	if r.FirstName.Min > r.FirstName.Max || r.LastName.Min > r.LastName.Max {
		return nil, fmt.Errorf("name rule min exceeds max")
	}

	from, err := time.Parse("2006-01-02", r.DateOfBirth.From)
	if err != nil {
		return nil, fmt.Errorf("invalid dateOfBirth.from '%s': %w", r.DateOfBirth.From, err)
	}

	weight := WeightCheck{Min: decimal.NewFromFloat(r.Weight.Min)}
	if r.Weight.Max != nil {
		limit := decimal.NewFromFloat(*r.Weight.Max)
		weight.Max = &limit
	}

	height := HeightCheck{Min: r.Height.Min, Max: math.MaxInt16}
	if r.Height.Max != nil {
		height.Max = *r.Height.Max
	}

	return Composite{
		NameCheck{Field: record.FieldFirstName, Min: r.FirstName.Min, Max: r.FirstName.Max},
		NameCheck{Field: record.FieldLastName, Min: r.LastName.Min, Max: r.LastName.Max},
		DateOfBirthCheck{From: from, Now: now},
		SexCheck{Forbidden: []rune(r.Sex.Forbidden)},
		weight,
		height,
	}, nil
}

// RuleSet maps policy names to rules
type RuleSet map[string]Rules

// DefaultRuleSet returns both built-in policies
func DefaultRuleSet() RuleSet {
	return RuleSet{
		PolicyDefault: DefaultRules(),
		PolicyCustom:  CustomRules(),
	}
}

// Validator builds the validator for the named policy
func (rs RuleSet) Validator(policy string, now func() time.Time) (Validator, error) {
	rules, ok := rs[policy]
	if !ok {
		return nil, fmt.Errorf("unknown validation rules '%s'", policy)
	}
	return rules.Build(now)
}

// Default returns the validator for the built-in default policy
func Default() Validator {
	v, err := DefaultRules().Build(nil)
	if err != nil {
		panic(err)
	}
	return v
}

// Custom returns the validator for the built-in custom policy
func Custom() Validator {
	v, err := CustomRules().Build(nil)
	if err != nil {
		panic(err)
	}
	return v
}
