package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"filecabinet/record"
	"filecabinet/validation"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func person(first, last string, dob time.Time) record.Fields {
	return record.Fields{
		FirstName:   first,
		LastName:    last,
		DateOfBirth: dob,
		Sex:         'F',
		Weight:      decimal.NewFromInt(60),
		Height:      160,
	}
}

func ann() record.Fields {
	return person("Ann", "Lee", date(1990, time.January, 1))
}

func bob() record.Fields {
	return person("Bob", "Stone", date(1985, time.July, 14))
}

// newFileStore opens a file store in a fresh temporary directory
func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := OpenFileStore(filepath.Join(t.TempDir(), "cabinet.db"), validation.Default())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// forEachStore runs fn against both backends
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore(validation.Default()))
	})
	t.Run("file", func(t *testing.T) {
		fn(t, newFileStore(t))
	})
}

func ids(records []record.Record) []int32 {
	out := make([]int32, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
