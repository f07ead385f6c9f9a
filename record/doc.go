// Package record provides the person record value types shared by every store.
//
// A Record is a caller-assigned ID plus a fixed set of Fields: first and last
// name, date of birth, sex, weight and height. The package also owns the literal
// parsers for each field so that the shell, the predicate engine, the import
// readers and the HTTP front all agree on what a valid literal looks like.
//
// Key Types:
//   - Fields: the mutable part of a record (everything but the ID)
//   - Record: ID + Fields
//   - Field: enumerates the filterable columns (id, firstname, lastname, ...)
//
// Usage Example:
//
//	dob, err := record.ParseDate("01/15/1990")
//	if err != nil {
//		log.Fatal(err)
//	}
//	r := record.Record{
//		ID: 1,
//		Fields: record.Fields{
//			FirstName:   "Ann",
//			LastName:    "Lee",
//			DateOfBirth: dob,
//			Sex:         'F',
//			Weight:      decimal.NewFromInt(60),
//			Height:      160,
//		},
//	}
//
// Records are plain values; copying a Record copies all of its data.
package record
