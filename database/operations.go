package database

import (
	"go.uber.org/zap"

	"filecabinet/storage"
	"filecabinet/transfer"
)

// Stat reports the store's record counts
func (db *Database) Stat() (storage.Stat, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.store.Stat()
}

// Purge compacts the store
func (db *Database) Purge() (storage.PurgeResult, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result, err := db.store.Purge()
	if err != nil {
		return result, err
	}
	if result.Purged > 0 {
		db.invalidate()
	}
	return result, nil
}

// Export writes every live record to path and returns how many were written
func (db *Database) Export(format transfer.Format, path string) (int, error) {
	db.mu.Lock()
	snap, err := db.store.Snapshot()
	db.mu.Unlock()
	if err != nil {
		return 0, err
	}

	if err := transfer.ExportFile(path, format, snap.Records()); err != nil {
		return 0, err
	}
	fields := []zap.Field{zap.String("path", path), zap.Int("records", snap.Len())}
	// names longer than a slot holds only live in the memory store
	if digest, err := snap.Digest(); err == nil {
		fields = append(fields, zap.String("sha256", digest))
	}
	db.logger.Info("records exported", fields...)
	return snap.Len(), nil
}

// ImportResult summarizes an import
type ImportResult struct {
	Read     int                      // rows parsed from the file
	Rejected []transfer.RowError      // rows that failed to parse
	Applied  int                      // records admitted by the store
	Failures []storage.RestoreFailure // parsed records the store refused
}

// Import reads records from path and restores them into the store.
// Existing IDs are overwritten.
func (db *Database) Import(format transfer.Format, path string) (ImportResult, error) {
	records, rejected, err := transfer.ImportFile(path, format)
	if err != nil {
		return ImportResult{}, err
	}
	for _, r := range rejected {
		db.logger.Warn("skipping malformed row", zap.String("path", path), zap.Int("row", r.Row), zap.Error(r.Err))
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	restored, err := db.store.Restore(storage.NewSnapshot(records))
	if restored.Applied > 0 {
		db.invalidate()
	}
	return ImportResult{
		Read:     len(records),
		Rejected: rejected,
		Applied:  restored.Applied,
		Failures: restored.Failures,
	}, err
}
