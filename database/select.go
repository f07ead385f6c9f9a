package database

import (
	"fmt"

	"filecabinet/query"
	"filecabinet/record"
	"filecabinet/storage"
)

// Select returns the live records matching clause. An empty clause selects
// every record; mixing and/or is rejected.
func (db *Database) Select(clause string) ([]record.Record, error) {
	p, err := query.ParseSelect(clause)
	if err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	return db.evaluate(p)
}

// Get returns the live record with the given ID
func (db *Database) Get(id int32) (record.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.get(id)
}

func (db *Database) get(id int32) (record.Record, error) {
	all, err := db.store.GetAll()
	if err != nil {
		return record.Record{}, err
	}
	for _, r := range all {
		if r.ID == id {
			return r, nil
		}
	}
	return record.Record{}, fmt.Errorf("record #%d: %w", id, storage.ErrNotFound)
}

// Find looks records up by first name, last name or date of birth
func (db *Database) Find(field record.Field, value string) ([]record.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	switch field {
	case record.FieldFirstName:
		return storage.Collect(db.store.FindByFirstName(value))
	case record.FieldLastName:
		return storage.Collect(db.store.FindByLastName(value))
	case record.FieldDateOfBirth:
		date, err := record.ParseDate(value)
		if err != nil {
			return nil, err
		}
		return storage.Collect(db.store.FindByDateOfBirth(date))
	}
	return nil, fmt.Errorf("cannot find by '%s', expected firstname, lastname or dateofbirth", field)
}

// List returns every live record in store order
func (db *Database) List() ([]record.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.store.GetAll()
}
