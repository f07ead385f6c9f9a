package database

import (
	"fmt"

	"filecabinet/record"
)

// Create stores fields under a fresh ID
func (db *Database) Create(fields record.Fields) (int32, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	id, err := db.store.Create(fields)
	if err != nil {
		return 0, err
	}
	db.invalidate()
	return id, nil
}

// Insert stores a record under its own ID
func (db *Database) Insert(r record.Record) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	ok, err := db.store.Insert(r)
	if ok {
		db.invalidate()
	}
	return ok, err
}

// Edit replaces the fields of record id
func (db *Database) Edit(id int32, fields record.Fields) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.store.Edit(id, fields); err != nil {
		return err
	}
	db.invalidate()
	return nil
}

// Patch applies assignments to record id and returns the result. The read,
// the change and the write happen under one lock.
func (db *Database) Patch(id int32, assignments []record.Assignment) (record.Record, error) {
	for _, a := range assignments {
		if a.Field == record.FieldID {
			return record.Record{}, fmt.Errorf("id cannot be updated")
		}
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	current, err := db.get(id)
	if err != nil {
		return record.Record{}, err
	}
	fields := current.Fields
	if err := record.Apply(&fields, assignments); err != nil {
		return record.Record{}, err
	}
	if err := db.store.Edit(id, fields); err != nil {
		return record.Record{}, err
	}
	db.invalidate()
	return record.Record{ID: id, Fields: fields.Normalize()}, nil
}
