package query

import (
	"strconv"
	"strings"

	"filecabinet/record"
)

// Mode is the combinator joining a clause's segments
type Mode int

const (
	And Mode = iota
	Or
)

func (m Mode) String() string {
	if m == Or {
		return "OR"
	}
	return "AND"
}

// keyword is the connector word as written in clauses
func (m Mode) keyword() string {
	return strings.ToLower(m.String())
}

// Term is one parsed `field = 'literal'` segment
type Term struct {
	Field   record.Field
	Literal string
	match   func(r record.Record) bool
}

// Matches reports whether r's field equals the term's literal
func (t Term) Matches(r record.Record) bool {
	return t.match(r)
}

// Predicate is a parsed filter clause
type Predicate struct {
	Mode  Mode
	Terms []Term // in clause order
}

// All returns a predicate selecting every record
func All() *Predicate {
	return &Predicate{Mode: And}
}

// IsEmpty reports whether the predicate has no terms
func (p *Predicate) IsEmpty() bool {
	return len(p.Terms) == 0
}

// Fields returns the distinct fields named by the clause in first-seen order
func (p *Predicate) Fields() []record.Field {
	var fields []record.Field
	seen := make(map[record.Field]bool)
	for _, t := range p.Terms {
		if !seen[t.Field] {
			seen[t.Field] = true
			fields = append(fields, t.Field)
		}
	}
	return fields
}

// terms groups the clause's terms by field, keeping clause order within a field
func (p *Predicate) terms(f record.Field) []Term {
	var out []Term
	for _, t := range p.Terms {
		if t.Field == f {
			out = append(out, t)
		}
	}
	return out
}

// Key is the canonical memo token: MODE|field="literal"|...
// Literals are Go-quoted so that separators inside them stay literal.
func (p *Predicate) Key() string {
	var b strings.Builder
	b.WriteString(p.Mode.String())
	for _, t := range p.Terms {
		b.WriteByte('|')
		b.WriteString(t.Field.String())
		b.WriteByte('=')
		b.WriteString(strconv.Quote(t.Literal))
	}
	return b.String()
}

// String renders the predicate back as a clause
func (p *Predicate) String() string {
	parts := make([]string, len(p.Terms))
	for i, t := range p.Terms {
		parts[i] = t.Field.String() + " = '" + t.Literal + "'"
	}
	return strings.Join(parts, " "+p.Mode.keyword()+" ")
}
