// Package query implements the filter clauses used by select, update and delete.
//
// A clause is a flat list of `field = 'literal'` segments joined by either
// `and` or `or`:
//
//	firstname = 'Ann' and lastname = 'Lee'
//	firstname = 'Ann' or firstname = 'Bob' or id = '7'
//
// Key Components:
//   - Predicate: Parsed clause holding its combinator and typed terms
//   - ParseSelect: Strict parser that rejects clauses mixing and/or
//   - ParseAuto: Parser that picks the combinator with the most segments
//   - Memo: Result cache keyed by the canonical clause, owned by the caller
//
// Evaluation:
//   - OR unions the records matching any literal, field by field, keeping the
//     first occurrence of each ID
//   - AND narrows the full set field by field; a field given more than one
//     literal fails with ErrAmbiguousAnd
//   - Names compare case-insensitively, dates by calendar day, everything
//     else exactly
package query
