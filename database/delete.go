package database

import (
	"filecabinet/query"
)

// Delete removes every record matching clause and returns the removed IDs.
// The combinator is picked from the clause.
func (db *Database) Delete(clause string) ([]int32, error) {
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

	var removed []int32
	defer func() {
		if len(removed) > 0 {
			db.invalidate()
		}
	}()
	for _, r := range matched {
		ok, err := db.store.Remove(r.ID)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, r.ID)
		}
	}
	return removed, nil
}
