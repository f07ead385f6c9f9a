//go:build !unix

package storage

import (
	"errors"
	"os"
)

// ErrLocked is returned when another process holds the store file
var ErrLocked = errors.New("store file is locked by another process")

// Advisory locking is only implemented on unix; elsewhere the single-writer
// rule is left to the caller.
func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) error { return nil }
