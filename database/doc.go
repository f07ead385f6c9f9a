// Package database provides the command/query layer over a record store.
//
// The database package owns a storage.Store (possibly wrapped by decorators),
// the filter engine from the query package and a query.Memo of filter results.
// Every method serializes access to the store, so one Database can back both
// the interactive shell and the web front.
//
// Key Responsibilities:
//   - Create, Insert, Edit and Get of single records
//   - Find by first name, last name or date of birth through the store's finders
//   - Select, Update and Delete driven by filter clauses
//   - Stat and Purge
//   - CSV/XML Export and Import through snapshot and restore
//   - Clearing the filter cache after every mutation
//
// Usage Example:
//
//	store := storage.NewMemoryStore(validation.Default())
//	db := database.New(store, database.WithLogger(logger))
//
//	id, err := db.Create(fields)
//	rows, err := db.Select("lastname = 'Lee' or lastname = 'Stone'")
//	ids, err := db.Update([]record.Assignment{{Field: record.FieldHeight, Value: "170"}}, "id = '1'")
//	ids, err = db.Delete("firstname = 'Ann'")
package database
