package storage

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"filecabinet/index"
	"filecabinet/record"
	"filecabinet/validation"
)

// MemoryStore keeps live records in a list plus three secondary indexes.
// Nothing is written to disk.
type MemoryStore struct {
	validator validation.Validator
	logger    *zap.Logger

	records []*record.Record         // live records in insertion order
	byID    map[int32]*record.Record // id -> live record
	nextID  int32

	byFirstName   *index.Index
	byLastName    *index.Index
	byDateOfBirth *index.Index
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(v validation.Validator, opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{
		validator:     v,
		logger:        o.logger,
		byID:          make(map[int32]*record.Record),
		nextID:        1,
		byFirstName:   index.New("firstname"),
		byLastName:    index.New("lastname"),
		byDateOfBirth: index.New("dateofbirth"),
	}
}

// Create validates fields and stores them under the next free ID
func (s *MemoryStore) Create(fields record.Fields) (int32, error) {
	fields = fields.Normalize()
	if err := s.validator.Validate(fields); err != nil {
		return 0, err
	}

	for s.byID[s.nextID] != nil {
		s.nextID++
	}
	id := s.nextID
	s.nextID++

	s.add(&record.Record{ID: id, Fields: fields})
	return id, nil
}

// Insert stores a record under its own ID
func (s *MemoryStore) Insert(r record.Record) (bool, error) {
	if _, exists := s.byID[r.ID]; exists {
		return false, fmt.Errorf("insert #%d: %w", r.ID, ErrDuplicateID)
	}
	r.Fields = r.Fields.Normalize()
	if err := s.validator.Validate(r.Fields); err != nil {
		return false, err
	}

	s.add(&r)
	s.bumpNextID(r.ID)
	return true, nil
}

// Edit replaces the fields of a live record
func (s *MemoryStore) Edit(id int32, fields record.Fields) error {
	existing, exists := s.byID[id]
	if !exists {
		return fmt.Errorf("edit #%d: %w", id, ErrNotFound)
	}
	fields = fields.Normalize()
	if err := s.validator.Validate(fields); err != nil {
		return err
	}

	s.unindex(existing)
	existing.Fields = fields
	s.index(existing)
	return nil
}

// Remove deletes a live record and its index entries
func (s *MemoryStore) Remove(id int32) (bool, error) {
	existing, exists := s.byID[id]
	if !exists {
		return false, nil
	}

	s.unindex(existing)
	delete(s.byID, id)
	for i, r := range s.records {
		if r == existing {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	return true, nil
}

// FindByFirstName returns records whose first name matches case-insensitively
func (s *MemoryStore) FindByFirstName(name string) Records {
	return s.lookup(s.byFirstName, nameKey(name))
}

// FindByLastName returns records whose last name matches case-insensitively
func (s *MemoryStore) FindByLastName(name string) Records {
	return s.lookup(s.byLastName, nameKey(name))
}

// FindByDateOfBirth returns records born on date
func (s *MemoryStore) FindByDateOfBirth(date time.Time) Records {
	return s.lookup(s.byDateOfBirth, dateKey(date))
}

// GetAll returns every live record in insertion order
func (s *MemoryStore) GetAll() ([]record.Record, error) {
	out := make([]record.Record, len(s.records))
	for i, r := range s.records {
		out[i] = *r
	}
	return out, nil
}

// Stat reports the number of live records; memory never holds tombstones
func (s *MemoryStore) Stat() (Stat, error) {
	return Stat{Total: len(s.records)}, nil
}

// Snapshot copies every live record
func (s *MemoryStore) Snapshot() (*Snapshot, error) {
	all, _ := s.GetAll()
	return &Snapshot{records: all}, nil
}

// Restore applies a snapshot. Existing IDs are overwritten, unknown IDs are
// appended and invalid records are reported and skipped.
func (s *MemoryStore) Restore(snap *Snapshot) (RestoreResult, error) {
	var result RestoreResult
	for _, r := range snap.records {
		r.Fields = r.Fields.Normalize()
		if err := s.validator.Validate(r.Fields); err != nil {
			s.logger.Warn("skipping invalid record", zap.Int32("id", r.ID), zap.Error(err))
			result.Failures = append(result.Failures, RestoreFailure{ID: r.ID, Err: err})
			continue
		}

		if existing, exists := s.byID[r.ID]; exists {
			s.unindex(existing)
			existing.Fields = r.Fields
			s.index(existing)
		} else {
			rec := r
			s.add(&rec)
			s.bumpNextID(r.ID)
		}
		result.Applied++
	}
	return result, nil
}

// Purge rebuilds the secondary indexes. Memory holds no tombstones, so
// nothing is ever reclaimed.
func (s *MemoryStore) Purge() (PurgeResult, error) {
	first := make([]index.Entry, len(s.records))
	last := make([]index.Entry, len(s.records))
	born := make([]index.Entry, len(s.records))
	for i, r := range s.records {
		first[i] = index.Entry{Key: nameKey(r.FirstName), ID: r.ID}
		last[i] = index.Entry{Key: nameKey(r.LastName), ID: r.ID}
		born[i] = index.Entry{Key: dateKey(r.DateOfBirth), ID: r.ID}
	}
	s.byFirstName.Rebuild(first)
	s.byLastName.Rebuild(last)
	s.byDateOfBirth.Rebuild(born)

	s.logger.Debug("rebuilt indexes",
		zap.Int("records", len(s.records)),
		zap.Int("firstname_keys", s.byFirstName.Len()),
		zap.Int("lastname_keys", s.byLastName.Len()),
		zap.Int("dateofbirth_keys", s.byDateOfBirth.Len()),
	)
	return PurgeResult{Total: len(s.records)}, nil
}

func (s *MemoryStore) add(r *record.Record) {
	s.records = append(s.records, r)
	s.byID[r.ID] = r
	s.index(r)
}

func (s *MemoryStore) index(r *record.Record) {
	s.byFirstName.Add(nameKey(r.FirstName), r.ID)
	s.byLastName.Add(nameKey(r.LastName), r.ID)
	s.byDateOfBirth.Add(dateKey(r.DateOfBirth), r.ID)
}

func (s *MemoryStore) unindex(r *record.Record) {
	s.byFirstName.Remove(nameKey(r.FirstName), r.ID)
	s.byLastName.Remove(nameKey(r.LastName), r.ID)
	s.byDateOfBirth.Remove(dateKey(r.DateOfBirth), r.ID)
}

func (s *MemoryStore) bumpNextID(id int32) {
	if id >= s.nextID && id < 1<<31-1 {
		s.nextID = id + 1
	}
}

func (s *MemoryStore) lookup(idx *index.Index, key string) Records {
	ids, _ := idx.Lookup(key)
	matches := make([]record.Record, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.byID[id]; ok {
			matches = append(matches, *r)
		}
	}
	return func(yield func(record.Record, error) bool) {
		for _, r := range matches {
			if !yield(r, nil) {
				return
			}
		}
	}
}
