// Package index provides ordered secondary indexes for record lookups.
//
// The index package maps a field key (a lowercased name, or a date rendered as
// yyyy-MM-dd) to the list of record IDs holding that key. Buckets live in a
// B-tree so that iteration follows key order, which keeps date-of-birth buckets
// chronological.
//
// Key Features:
//   - Multi-Value Support: a key maps to every ID holding it, in insertion order
//   - Ordered: Scan visits keys in ascending order
//   - Rebuildable: Rebuild repopulates the index from (key, id) entries, as the
//     memory store does on purge
//   - In-Memory: nothing is persisted; stores rebuild indexes on load
//
// Usage Example:
//
//	idx := index.New("firstname")
//
//	idx.Add("alice", 1)
//	idx.Add("bob", 2)
//	idx.Add("alice", 3)
//
//	ids, found := idx.Lookup("alice") // [1 3], true
//
//	idx.Remove("alice", 1)
//
// Indexes are not safe for concurrent use.
package index
