package index

import (
	"github.com/tidwall/btree"
)

// Index is an ordered secondary index mapping a key to the IDs holding it
type Index struct {
	Name string                     // indexed field name
	data btree.Map[string, []int32] // key -> [ids], insertion order kept
}

// New creates a new index
func New(name string) *Index {
	return &Index{Name: name}
}

// Add adds an ID to the bucket for key
func (idx *Index) Add(key string, id int32) {
	ids, _ := idx.data.Get(key)
	idx.data.Set(key, append(ids, id))
}

// Remove removes an ID from the bucket for key, dropping empty buckets
func (idx *Index) Remove(key string, id int32) {
	ids, found := idx.data.Get(key)
	if !found {
		return
	}
	kept := make([]int32, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) > 0 {
		idx.data.Set(key, kept)
	} else {
		idx.data.Delete(key)
	}
}

// Lookup returns a copy of the IDs stored under key
func (idx *Index) Lookup(key string) ([]int32, bool) {
	ids, found := idx.data.Get(key)
	if !found {
		return nil, false
	}
	return append([]int32(nil), ids...), true
}

// Len returns the number of distinct keys
func (idx *Index) Len() int {
	return idx.data.Len()
}

// Scan visits buckets in key order until fn returns false.
// fn must not modify ids.
func (idx *Index) Scan(fn func(key string, ids []int32) bool) {
	idx.data.Scan(fn)
}

// Entry pairs a key with an ID for Rebuild
type Entry struct {
	Key string
	ID  int32
}

// Rebuild rebuilds the index from scratch
func (idx *Index) Rebuild(entries []Entry) {
	idx.data = btree.Map[string, []int32]{}
	for _, e := range entries {
		idx.Add(e.Key, e.ID)
	}
}
