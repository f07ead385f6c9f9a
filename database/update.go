package database

import (
	"fmt"

	"go.uber.org/zap"

	"filecabinet/query"
	"filecabinet/record"
)

// Update applies assignments to every record matching clause and returns the
// IDs it changed. The combinator is picked from the clause; an ambiguous AND
// clause or an unparsable assignment changes nothing.
func (db *Database) Update(assignments []record.Assignment, clause string) ([]int32, error) {
	if len(assignments) == 0 {
		return nil, fmt.Errorf("update requires at least one assignment")
	}
	for _, a := range assignments {
		if a.Field == record.FieldID {
			return nil, fmt.Errorf("id cannot be updated")
		}
	}
	// reject bad literals before touching any record
	if err := record.Apply(&record.Fields{}, assignments); err != nil {
		return nil, err
	}

	p, err := query.ParseAuto(clause)
	if err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	matched, err := db.evaluate(p)
	if err != nil {
		return nil, err
	}

	var updated []int32
	defer func() {
		if len(updated) > 0 {
			db.invalidate()
		}
	}()
	for _, r := range matched {
		fields := r.Fields
		if err := record.Apply(&fields, assignments); err != nil {
			return updated, err
		}
		if err := db.store.Edit(r.ID, fields); err != nil {
			db.logger.Warn("update stopped", zap.Int32("id", r.ID), zap.Error(err))
			return updated, fmt.Errorf("record #%d: %w", r.ID, err)
		}
		updated = append(updated, r.ID)
	}
	db.logger.Debug("records updated", zap.Stringers("set", assignments), zap.Int32s("ids", updated))
	return updated, nil
}
