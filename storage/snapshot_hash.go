package storage

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the SHA-256 of the snapshot's records in their slot
// encoding. Two snapshots with the same records in the same order share a
// digest regardless of which store produced them.
func (s *Snapshot) Digest() (string, error) {
	h := sha256.New()
	buf := make([]byte, SlotSize)
	for _, r := range s.records {
		clear(buf)
		if err := EncodeSlot(buf, Live, r); err != nil {
			return "", err
		}
		h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
