package storage

import (
	"errors"
	"iter"
	"strings"
	"time"

	"filecabinet/record"
)

var (
	// ErrNotFound is returned when no live record has the requested ID
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is reported when inserting an ID that is already live
	ErrDuplicateID = errors.New("duplicate record id")
)

// Records is a lazy, single-pass sequence of records
type Records = iter.Seq2[record.Record, error]

// Store is the contract shared by the in-memory and file-backed stores
type Store interface {
	// Create validates fields, assigns a fresh ID and stores the record
	Create(fields record.Fields) (int32, error)
	// Insert stores a record under its own ID. It returns false without
	// mutating anything when the ID is live or validation fails.
	Insert(r record.Record) (bool, error)
	// Edit replaces the fields of a live record. The ID never changes.
	Edit(id int32, fields record.Fields) error
	// Remove soft-deletes a live record
	Remove(id int32) (bool, error)

	FindByFirstName(name string) Records
	FindByLastName(name string) Records
	FindByDateOfBirth(date time.Time) Records
	// GetAll returns every live record in store order
	GetAll() ([]record.Record, error)

	Stat() (Stat, error)
	Snapshot() (*Snapshot, error)
	Restore(s *Snapshot) (RestoreResult, error)
	Purge() (PurgeResult, error)
}

// Stat describes how many slots a store holds
type Stat struct {
	Total   int // records including tombstones
	Removed int // tombstoned records awaiting purge
}

// Live returns the number of live records
func (s Stat) Live() int {
	return s.Total - s.Removed
}

// PurgeResult reports what a compaction reclaimed
type PurgeResult struct {
	Total  int // slots before purging
	Purged int // slots reclaimed
}

// RestoreFailure names a record that was skipped during restore
type RestoreFailure struct {
	ID  int32
	Err error
}

// RestoreResult summarizes a restore batch
type RestoreResult struct {
	Applied  int
	Failures []RestoreFailure
}

// Snapshot is an immutable list of records taken from a store
type Snapshot struct {
	records []record.Record
}

// NewSnapshot copies records into a new snapshot
func NewSnapshot(records []record.Record) *Snapshot {
	return &Snapshot{records: append([]record.Record(nil), records...)}
}

// Records returns a copy of the snapshot's records
func (s *Snapshot) Records() []record.Record {
	return append([]record.Record(nil), s.records...)
}

// Len returns the number of records in the snapshot
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Collect drains a record sequence into a slice, stopping at the first error
func Collect(seq Records) ([]record.Record, error) {
	var out []record.Record
	for r, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

// nameKey is the case-insensitive lookup key for names
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// dateKey is the lookup key for dates
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
