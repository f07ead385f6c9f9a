// Package storage provides the two record stores behind the Store interface.
//
// The storage package is responsible for keeping person records: admitting them
// through a validator, finding them by name or date of birth, soft-deleting them
// and compacting the space that deletions leave behind.
//
// Key Components:
//   - Store: The contract shared by both backends
//   - MemoryStore: Live records in a list plus first name, last name and date of
//     birth indexes; nothing is persisted
//   - FileStore: One file of fixed-size slots with soft delete and Purge
//   - Snapshot: An immutable copy of the live records, used by import/export
//
// Storage Format:
//
// Each FileStore slot is SlotSize bytes:
//
//	[status: 2][id: 4][first name: 122][last name: 122]
//	[day-1: 4][month-1: 4][year-1: 4][sex: 2][weight: 16][height: 2]
//
// status: 0 = live, 1 = tombstoned (the second byte is reserved)
// names:  uint16 UTF-16 unit count + 60 UTF-16LE units, zero padded
// date:   offsets added to 0001-01-01
// weight: 128-bit decimal (lo, mid, hi magnitude words + scale/sign flags)
//
// Key Responsibilities:
//   - Validating records before they are stored
//   - Keeping IDs unique among live records
//   - Keeping the memory indexes consistent on insert, edit and remove
//   - Tombstoning and compacting file slots
//   - Skipping corrupt slots with a warning instead of failing a scan
//
// Usage Example:
//
//	store, err := storage.OpenFileStore("cabinet.db", validation.Default())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	id, err := store.Create(fields)
//	removed, err := store.Remove(id)
//	result, err := store.Purge()
//
// Stores are not safe for concurrent use; callers serialize access.
package storage
