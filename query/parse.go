package query

import (
	"regexp"
	"strings"
	"unicode"

	"filecabinet/record"
)

// segmentPattern matches field = 'literal', "literal" or a bare token
var segmentPattern = regexp.MustCompile(`^([^\s=]+)\s*=\s*(?:'([^']*)'|"([^"]*)"|([^\s'"]+))$`)

// ParseSelect parses a clause for select. Mixing and/or is rejected and an
// empty clause selects everything.
func ParseSelect(clause string) (*Predicate, error) {
	if strings.TrimSpace(clause) == "" {
		return All(), nil
	}
	segments, connectors, err := split(clause)
	if err != nil {
		return nil, err
	}

	mode := And
	for i, c := range connectors {
		if i > 0 && c != connectors[0] {
			return nil, ErrUnsupportedSyntax
		}
		mode = c
	}
	return build(mode, segments)
}

// ParseAuto parses a clause for update and delete. The combinator is the
// connector producing more segments, ties going to and. Segments joined by
// the other connector stay together and fail to parse.
func ParseAuto(clause string) (*Predicate, error) {
	if strings.TrimSpace(clause) == "" {
		return nil, &SyntaxError{Reason: "empty filter"}
	}
	segments, connectors, err := split(clause)
	if err != nil {
		return nil, err
	}

	ands, ors := 1, 1
	for _, c := range connectors {
		if c == And {
			ands++
		} else {
			ors++
		}
	}
	mode := And
	if ors > ands {
		mode = Or
	}

	merged := []string{segments[0]}
	for i, c := range connectors {
		if c == mode {
			merged = append(merged, segments[i+1])
			continue
		}
		last := len(merged) - 1
		merged[last] += " " + c.keyword() + " " + segments[i+1]
	}
	return build(mode, merged)
}

func build(mode Mode, segments []string) (*Predicate, error) {
	p := &Predicate{Mode: mode}
	for _, seg := range segments {
		t, err := parseTerm(seg)
		if err != nil {
			return nil, err
		}
		p.Terms = append(p.Terms, t)
	}
	return p, nil
}

// split cuts a clause at and/or words outside quotes
func split(clause string) ([]string, []Mode, error) {
	var (
		segments   []string
		connectors []Mode
		quote      rune
		start      int
	)
	runes := []rune(clause)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			continue
		case r == '\'' || r == '"':
			quote = r
			continue
		case !unicode.IsSpace(r):
			continue
		}

		mode, end, ok := connectorAt(runes, i)
		if !ok {
			continue
		}
		segments = append(segments, strings.TrimSpace(string(runes[start:i])))
		connectors = append(connectors, mode)
		start = end
		i = end - 1
	}
	if quote != 0 {
		return nil, nil, &SyntaxError{Segment: strings.TrimSpace(string(runes[start:])), Reason: "unterminated quote"}
	}
	segments = append(segments, strings.TrimSpace(string(runes[start:])))

	for _, seg := range segments {
		if seg == "" {
			return nil, nil, &SyntaxError{Reason: "missing condition around 'and'/'or'"}
		}
	}
	return segments, connectors, nil
}

// connectorAt checks for whitespace, and|or, whitespace starting at i
func connectorAt(runes []rune, i int) (Mode, int, bool) {
	j := i
	for j < len(runes) && unicode.IsSpace(runes[j]) {
		j++
	}
	k := j
	for k < len(runes) && unicode.IsLetter(runes[k]) {
		k++
	}
	if k >= len(runes) || !unicode.IsSpace(runes[k]) {
		return 0, 0, false
	}
	switch strings.ToLower(string(runes[j:k])) {
	case "and":
		return And, k, true
	case "or":
		return Or, k, true
	}
	return 0, 0, false
}

func parseTerm(segment string) (Term, error) {
	m := segmentPattern.FindStringSubmatch(segment)
	if m == nil {
		return Term{}, &SyntaxError{Segment: segment, Reason: "expected field = 'value'"}
	}
	field, ok := record.LookupField(m[1])
	if !ok {
		return Term{}, &UnknownFieldError{Token: m[1]}
	}
	literal := m[2] + m[3] + m[4]

	match, err := matcher(field, literal)
	if err != nil {
		return Term{}, &LiteralError{Field: field, Literal: literal, Err: err}
	}
	return Term{Field: field, Literal: literal, match: match}, nil
}

// matcher parses literal for field once and returns the comparison
func matcher(field record.Field, literal string) (func(record.Record) bool, error) {
	switch field {
	case record.FieldID:
		id, err := record.ParseID(literal)
		if err != nil {
			return nil, err
		}
		return func(r record.Record) bool { return r.ID == id }, nil
	case record.FieldFirstName:
		name := strings.TrimSpace(literal)
		return func(r record.Record) bool { return strings.EqualFold(r.FirstName, name) }, nil
	case record.FieldLastName:
		name := strings.TrimSpace(literal)
		return func(r record.Record) bool { return strings.EqualFold(r.LastName, name) }, nil
	case record.FieldDateOfBirth:
		d, err := record.ParseDate(literal)
		if err != nil {
			return nil, err
		}
		return func(r record.Record) bool { return record.SameDate(r.DateOfBirth, d) }, nil
	case record.FieldSex:
		sex, err := record.ParseSex(literal)
		if err != nil {
			return nil, err
		}
		return func(r record.Record) bool { return r.Sex == sex }, nil
	case record.FieldWeight:
		w, err := record.ParseWeight(literal)
		if err != nil {
			return nil, err
		}
		return func(r record.Record) bool { return r.Weight.Equal(w) }, nil
	case record.FieldHeight:
		h, err := record.ParseHeight(literal)
		if err != nil {
			return nil, err
		}
		return func(r record.Record) bool { return r.Height == h }, nil
	}
	return nil, &UnknownFieldError{Token: field.String()}
}
