package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"filecabinet/record"
	"filecabinet/validation"
)

// slotEntry locates the latest slot written for an ID
type slotEntry struct {
	offset int64
	state  SlotState
}

// FileStore keeps records in a single file of fixed-size slots.
//
// Deletion flips the slot's status to Tombstoned; Purge compacts live slots
// towards the start of the file and truncates the rest. Every operation
// addresses slots through one id -> offset index, rebuilt by scanning the
// file when it is opened.
type FileStore struct {
	validator validation.Validator
	logger    *zap.Logger

	path    string
	file    *os.File
	slots   map[int32]slotEntry
	end     int64 // append offset
	removed int   // tombstoned slots
	nextID  int32
}

// OpenFileStore opens or creates the store file at path and takes an
// exclusive lock on it until Close.
func OpenFileStore(path string, v validation.Validator, opts ...Option) (*FileStore, error) {
	o := buildOptions(opts)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}

	s := &FileStore{
		validator: v,
		logger:    o.logger.With(zap.String("path", path)),
		path:      path,
		file:      f,
		slots:     make(map[int32]slotEntry),
		nextID:    1,
	}
	if err := s.load(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// load rebuilds the id -> offset index from the file contents
func (s *FileStore) load() error {
	info, err := s.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if tail := size % SlotSize; tail != 0 {
		s.logger.Warn("ignoring trailing partial slot", zap.Int64("bytes", tail))
		size -= tail
	}
	s.end = size

	buf := make([]byte, SlotSize)
	for off := int64(0); off < s.end; off += SlotSize {
		if err := s.readSlot(buf, off); err != nil {
			return err
		}
		state, err := slotState(buf)
		if err != nil {
			s.logCorrupt(off, err)
			continue
		}
		id := slotID(buf)
		s.bumpNextID(id)

		if state == Tombstoned {
			s.removed++
			if prev, known := s.slots[id]; known && prev.state == Live {
				continue
			}
		} else if prev, known := s.slots[id]; known && prev.state == Live {
			s.logger.Warn("duplicate live id, keeping the later slot",
				zap.Int32("id", id), zap.Int64("offset", off), zap.Int64("previous", prev.offset))
		}
		s.slots[id] = slotEntry{offset: off, state: state}
	}
	return nil
}

// Path returns the store file path
func (s *FileStore) Path() string {
	return s.path
}

// Close releases the lock and closes the file
func (s *FileStore) Close() error {
	if s.file == nil {
		return nil
	}
	unlockErr := unlockFile(s.file)
	closeErr := s.file.Close()
	s.file = nil
	return errors.Join(unlockErr, closeErr)
}

// Create validates fields and appends them under the next free ID
func (s *FileStore) Create(fields record.Fields) (int32, error) {
	fields = fields.Normalize()
	if err := s.validator.Validate(fields); err != nil {
		return 0, err
	}

	for {
		if _, known := s.slots[s.nextID]; !known {
			break
		}
		s.nextID++
	}
	r := record.Record{ID: s.nextID, Fields: fields}
	if err := s.appendSlot(r); err != nil {
		return 0, err
	}
	s.nextID++
	return r.ID, nil
}

// Insert appends a record under its own ID. A tombstoned ID is revived by
// appending a fresh slot; the old slot stays until Purge.
func (s *FileStore) Insert(r record.Record) (bool, error) {
	if entry, known := s.slots[r.ID]; known && entry.state == Live {
		return false, fmt.Errorf("insert #%d: %w", r.ID, ErrDuplicateID)
	}
	r.Fields = r.Fields.Normalize()
	if err := s.validator.Validate(r.Fields); err != nil {
		return false, err
	}

	if err := s.appendSlot(r); err != nil {
		return false, err
	}
	s.bumpNextID(r.ID)
	return true, nil
}

// Edit overwrites a live record's slot in place
func (s *FileStore) Edit(id int32, fields record.Fields) error {
	entry, known := s.slots[id]
	if !known || entry.state != Live {
		return fmt.Errorf("edit #%d: %w", id, ErrNotFound)
	}
	fields = fields.Normalize()
	if err := s.validator.Validate(fields); err != nil {
		return err
	}
	return s.writeRecord(entry.offset, Live, record.Record{ID: id, Fields: fields})
}

// Remove tombstones a live record's slot
func (s *FileStore) Remove(id int32) (bool, error) {
	entry, known := s.slots[id]
	if !known || entry.state != Live {
		return false, nil
	}
	if err := s.writeState(entry.offset, Tombstoned); err != nil {
		return false, err
	}
	s.slots[id] = slotEntry{offset: entry.offset, state: Tombstoned}
	s.removed++
	return true, nil
}

// FindByFirstName scans the file for first names matching case-insensitively
func (s *FileStore) FindByFirstName(name string) Records {
	return s.scan(func(buf []byte) (bool, error) {
		got, err := slotFirstName(buf)
		return strings.EqualFold(strings.TrimSpace(name), got), err
	})
}

// FindByLastName scans the file for last names matching case-insensitively
func (s *FileStore) FindByLastName(name string) Records {
	return s.scan(func(buf []byte) (bool, error) {
		got, err := slotLastName(buf)
		return strings.EqualFold(strings.TrimSpace(name), got), err
	})
}

// FindByDateOfBirth scans the file for records born on date
func (s *FileStore) FindByDateOfBirth(date time.Time) Records {
	return s.scan(func(buf []byte) (bool, error) {
		got, err := slotDate(buf)
		return record.SameDate(date, got), err
	})
}

// GetAll decodes every live slot in file order
func (s *FileStore) GetAll() ([]record.Record, error) {
	return Collect(s.scan(nil))
}

// Stat counts slots from the file length, tombstones included
func (s *FileStore) Stat() (Stat, error) {
	return Stat{Total: int(s.end / SlotSize), Removed: s.removed}, nil
}

// Snapshot copies every live record
func (s *FileStore) Snapshot() (*Snapshot, error) {
	all, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	return &Snapshot{records: all}, nil
}

// Restore overwrites known IDs in place and appends unknown ones.
// Invalid records are reported and skipped.
func (s *FileStore) Restore(snap *Snapshot) (RestoreResult, error) {
	var result RestoreResult
	for _, r := range snap.records {
		r.Fields = r.Fields.Normalize()
		if err := s.validator.Validate(r.Fields); err != nil {
			s.logger.Warn("skipping invalid record", zap.Int32("id", r.ID), zap.Error(err))
			result.Failures = append(result.Failures, RestoreFailure{ID: r.ID, Err: err})
			continue
		}

		entry, known := s.slots[r.ID]
		var err error
		if known {
			err = s.writeRecord(entry.offset, Live, r)
			if err == nil && entry.state == Tombstoned {
				s.removed--
			}
		} else {
			if err = s.appendSlot(r); err == nil {
				s.bumpNextID(r.ID)
			}
		}

		var encErr *EncodeError
		switch {
		case errors.As(err, &encErr):
			result.Failures = append(result.Failures, RestoreFailure{ID: r.ID, Err: err})
			continue
		case err != nil:
			return result, err
		}
		result.Applied++
	}
	return result, nil
}

// Purge moves live slots down over tombstoned ones and truncates the file
func (s *FileStore) Purge() (PurgeResult, error) {
	total := int(s.end / SlotSize)
	slots := make(map[int32]slotEntry, len(s.slots))
	buf := make([]byte, SlotSize)

	var write int64
	for read := int64(0); read < s.end; read += SlotSize {
		if err := s.readSlot(buf, read); err != nil {
			return PurgeResult{}, err
		}
		state, err := slotState(buf)
		if err != nil {
			s.logCorrupt(read, err)
			continue
		}
		if state == Tombstoned {
			continue
		}

		if read != write {
			if _, err := s.file.WriteAt(buf, write); err != nil {
				return PurgeResult{}, err
			}
			if err := s.writeState(read, Tombstoned); err != nil {
				return PurgeResult{}, err
			}
		}
		slots[slotID(buf)] = slotEntry{offset: write, state: Live}
		write += SlotSize
	}

	if err := s.file.Truncate(write); err != nil {
		return PurgeResult{}, err
	}
	s.end = write
	s.slots = slots
	s.removed = 0

	return PurgeResult{Total: total, Purged: total - int(write/SlotSize)}, nil
}

// scan yields live records in file order. match, when set, sees the raw
// slot and decides whether to decode it fully.
func (s *FileStore) scan(match func(buf []byte) (bool, error)) Records {
	return func(yield func(record.Record, error) bool) {
		buf := make([]byte, SlotSize)
		for off := int64(0); off < s.end; off += SlotSize {
			if err := s.readSlot(buf, off); err != nil {
				yield(record.Record{}, err)
				return
			}
			state, err := slotState(buf)
			if err != nil {
				s.logCorrupt(off, err)
				continue
			}
			if state == Tombstoned {
				continue
			}

			if match != nil {
				ok, err := match(buf)
				if err != nil {
					s.logCorrupt(off, err)
					continue
				}
				if !ok {
					continue
				}
			}

			_, r, err := DecodeSlot(buf)
			if err != nil {
				s.logCorrupt(off, err)
				continue
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

func (s *FileStore) appendSlot(r record.Record) error {
	if err := s.writeRecord(s.end, Live, r); err != nil {
		return err
	}
	s.slots[r.ID] = slotEntry{offset: s.end, state: Live}
	s.end += SlotSize
	return nil
}

func (s *FileStore) writeRecord(off int64, state SlotState, r record.Record) error {
	buf := make([]byte, SlotSize)
	if err := EncodeSlot(buf, state, r); err != nil {
		return err
	}
	if _, err := s.file.WriteAt(buf, off); err != nil {
		return err
	}
	s.slots[r.ID] = slotEntry{offset: off, state: state}
	return nil
}

func (s *FileStore) writeState(off int64, state SlotState) error {
	_, err := s.file.WriteAt([]byte{byte(state)}, off+offStatus)
	return err
}

func (s *FileStore) readSlot(buf []byte, off int64) error {
	n, err := s.file.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("read slot at %d: %w", off, err)
}

func (s *FileStore) logCorrupt(off int64, err error) {
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		decErr.Offset = off
	}
	s.logger.Warn("skipping corrupt slot", zap.Int64("offset", off), zap.Error(err))
}

func (s *FileStore) bumpNextID(id int32) {
	if id >= s.nextID && id < 1<<31-1 {
		s.nextID = id + 1
	}
}
