package query

import (
	"github.com/RoaringBitmap/roaring/v2"

	"filecabinet/record"
)

// Evaluate returns the records of set selected by the predicate, in set
// order for AND and field-major first-seen order for OR.
func (p *Predicate) Evaluate(set []record.Record) ([]record.Record, error) {
	if p.IsEmpty() {
		return append([]record.Record(nil), set...), nil
	}
	if p.Mode == Or {
		return p.union(set), nil
	}
	return p.intersect(set)
}

// union walks the set once per field and keeps the first hit for each ID
func (p *Predicate) union(set []record.Record) []record.Record {
	seen := roaring.New()
	var out []record.Record
	for _, f := range p.Fields() {
		terms := p.terms(f)
		for _, r := range set {
			if !anyMatch(terms, r) {
				continue
			}
			if seen.CheckedAdd(uint32(r.ID)) {
				out = append(out, r)
			}
		}
	}
	return out
}

// intersect narrows the set field by field
func (p *Predicate) intersect(set []record.Record) ([]record.Record, error) {
	fields := p.Fields()
	for _, f := range fields {
		if len(p.terms(f)) > 1 {
			return nil, ErrAmbiguousAnd
		}
	}

	var result *roaring.Bitmap
	for _, f := range fields {
		terms := p.terms(f)
		matched := roaring.New()
		for _, r := range set {
			if anyMatch(terms, r) {
				matched.Add(uint32(r.ID))
			}
		}
		if result == nil {
			result = matched
		} else {
			result.And(matched)
		}
		if result.IsEmpty() {
			return nil, nil
		}
	}

	var out []record.Record
	for _, r := range set {
		if result.Contains(uint32(r.ID)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func anyMatch(terms []Term, r record.Record) bool {
	for _, t := range terms {
		if t.Matches(r) {
			return true
		}
	}
	return false
}
