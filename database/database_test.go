package database

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filecabinet/query"
	"filecabinet/record"
	"filecabinet/storage"
	"filecabinet/transfer"
	"filecabinet/validation"
)

func person(first, last string, y int, m time.Month, d int) record.Fields {
	return record.Fields{
		FirstName:   first,
		LastName:    last,
		DateOfBirth: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Sex:         'F',
		Weight:      decimal.NewFromInt(60),
		Height:      160,
	}
}

// newDB returns a database over a memory store seeded with
// #1 Ann Lee, #2 Bob Stone, #3 Ann Stone
func newDB(t *testing.T) *Database {
	t.Helper()
	db := New(storage.NewMemoryStore(validation.Default()))
	for _, f := range []record.Fields{
		person("Ann", "Lee", 1990, time.January, 1),
		person("Bob", "Stone", 1985, time.July, 14),
		person("Ann", "Stone", 1970, time.May, 5),
	} {
		_, err := db.Create(f)
		require.NoError(t, err)
	}
	return db
}

func ids(records []record.Record) []int32 {
	out := make([]int32, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestSelect(t *testing.T) {
	db := newDB(t)

	all, err := db.Select("")
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, ids(all))

	got, err := db.Select("firstname = 'ann' and lastname = 'stone'")
	require.NoError(t, err)
	assert.Equal(t, []int32{3}, ids(got))

	got, err = db.Select("lastname = 'Lee' or firstname = 'Bob'")
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, ids(got))

	_, err = db.Select("firstname = 'Ann' and lastname = 'Lee' or id = '2'")
	assert.ErrorIs(t, err, query.ErrUnsupportedSyntax)
}

func TestSelect_UsesMemoUntilMutation(t *testing.T) {
	db := newDB(t)

	_, err := db.Select("firstname = 'Ann'")
	require.NoError(t, err)
	assert.Equal(t, 1, db.memo.Len())

	_, err = db.Select("firstname = 'Ann'")
	require.NoError(t, err)
	hits, _ := db.memo.Stats()
	assert.Equal(t, uint64(1), hits)

	_, err = db.Create(person("Ann", "New", 2000, time.March, 3))
	require.NoError(t, err)
	assert.Equal(t, 0, db.memo.Len())

	got, err := db.Select("firstname = 'Ann'")
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 3, 4}, ids(got), "fresh results after a mutation")
}

func TestUpdate(t *testing.T) {
	db := newDB(t)

	updated, err := db.Update([]record.Assignment{
		{Field: record.FieldLastName, Value: "Moss"},
		{Field: record.FieldHeight, Value: "170"},
	}, "lastname = 'Stone'")
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 3}, updated)

	got, err := db.Find(record.FieldLastName, "moss")
	require.NoError(t, err)
	require.Equal(t, []int32{2, 3}, ids(got))
	assert.Equal(t, int16(170), got[0].Height)
	assert.Equal(t, "Bob", got[0].FirstName)
}

func TestUpdate_Rejections(t *testing.T) {
	db := newDB(t)

	_, err := db.Update([]record.Assignment{{Field: record.FieldID, Value: "9"}}, "id = '1'")
	assert.Error(t, err)

	_, err = db.Update([]record.Assignment{{Field: record.FieldHeight, Value: "tall"}}, "id = '1'")
	assert.Error(t, err)

	_, err = db.Update(nil, "id = '1'")
	assert.Error(t, err)

	_, err = db.Update([]record.Assignment{{Field: record.FieldLastName, Value: "X"}}, "nickname = 'a'")
	var unknown *query.UnknownFieldError
	assert.True(t, errors.As(err, &unknown))

	// validation failure stops at the offending record
	updated, err := db.Update([]record.Assignment{{Field: record.FieldFirstName, Value: "Z"}}, "id = '1' or id = '2'")
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, updated)

	all, _ := db.List()
	assert.Equal(t, "Ann", all[0].FirstName)
}

func TestUpdate_AmbiguousAndIsNoOp(t *testing.T) {
	db := newDB(t)

	updated, err := db.Update([]record.Assignment{{Field: record.FieldLastName, Value: "Moss"}},
		"firstname = 'Ann' and firstname = 'Bob'")
	assert.ErrorIs(t, err, query.ErrAmbiguousAnd)
	assert.Empty(t, updated)

	got, err := db.Find(record.FieldLastName, "Moss")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDelete(t *testing.T) {
	db := newDB(t)

	removed, err := db.Delete("firstname = 'Ann'")
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 3}, removed)

	all, err := db.List()
	require.NoError(t, err)
	assert.Equal(t, []int32{2}, ids(all))

	removed, err = db.Delete("firstname = 'Ann'")
	require.NoError(t, err)
	assert.Empty(t, removed)

	_, err = db.Delete("")
	assert.Error(t, err)

	_, err = db.Delete("firstname = 'Bob' and firstname = 'Ann'")
	assert.ErrorIs(t, err, query.ErrAmbiguousAnd)
}

func TestDelete_LiteralWithSeparatorsMissesCachedSelect(t *testing.T) {
	db := newDB(t)

	selected, err := db.Select("firstname = 'Ann' and lastname = 'Lee'")
	require.NoError(t, err)
	assert.Equal(t, []int32{1}, ids(selected))

	removed, err := db.Delete("firstname = 'Ann|lastname=Lee'")
	require.NoError(t, err)
	assert.Empty(t, removed)

	all, err := db.List()
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, ids(all))
}

func TestGetAndFind(t *testing.T) {
	db := newDB(t)

	r, err := db.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Bob", r.FirstName)

	_, err = db.Get(42)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got, err := db.Find(record.FieldDateOfBirth, "07/14/1985")
	require.NoError(t, err)
	assert.Equal(t, []int32{2}, ids(got))

	got, err = db.Find(record.FieldFirstName, "ANN")
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 3}, ids(got))

	_, err = db.Find(record.FieldHeight, "160")
	assert.Error(t, err)
}

func TestPatch(t *testing.T) {
	db := newDB(t)

	cached, err := db.Select("lastname = 'Moss'")
	require.NoError(t, err)
	assert.Empty(t, cached)

	got, err := db.Patch(1, []record.Assignment{
		{Field: record.FieldLastName, Value: " Moss "},
		{Field: record.FieldHeight, Value: "170"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Moss", got.LastName)
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, int16(170), got.Height)

	selected, err := db.Select("lastname = 'Moss'")
	require.NoError(t, err)
	assert.Equal(t, []int32{1}, ids(selected))

	_, err = db.Patch(9, []record.Assignment{{Field: record.FieldHeight, Value: "1"}})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = db.Patch(1, []record.Assignment{{Field: record.FieldID, Value: "5"}})
	assert.Error(t, err)

	var invalid *validation.Error
	_, err = db.Patch(1, []record.Assignment{{Field: record.FieldFirstName, Value: "A"}})
	assert.True(t, errors.As(err, &invalid))
}

func TestPatch_ConcurrentChangesAreKept(t *testing.T) {
	db := newDB(t)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			change := record.Assignment{Field: record.FieldLastName, Value: "Moss"}
			if i%2 == 1 {
				change = record.Assignment{Field: record.FieldWeight, Value: "75"}
			}
			_, err := db.Patch(1, []record.Assignment{change})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := db.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Moss", got.LastName)
	assert.True(t, decimal.NewFromInt(75).Equal(got.Weight), "weight %s", got.Weight)
}

func TestEditAndInsert(t *testing.T) {
	db := newDB(t)

	require.NoError(t, db.Edit(1, person("Ann", "Moss", 1990, time.January, 1)))
	assert.ErrorIs(t, db.Edit(9, person("Ann", "Moss", 1990, time.January, 1)), storage.ErrNotFound)

	ok, err := db.Insert(record.Record{ID: 10, Fields: person("Cat", "Ray", 1960, time.October, 2)})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.Insert(record.Record{ID: 10, Fields: person("Cat", "Ray", 1960, time.October, 2)})
	assert.False(t, ok)
	assert.ErrorIs(t, err, storage.ErrDuplicateID)
}

func TestFileStore_DeleteThenPurge(t *testing.T) {
	fs, err := storage.OpenFileStore(filepath.Join(t.TempDir(), "cabinet.db"), validation.Default())
	require.NoError(t, err)
	defer fs.Close()

	db := New(fs)
	_, _ = db.Create(person("Ann", "Lee", 1990, time.January, 1))
	_, _ = db.Create(person("Bob", "Stone", 1985, time.July, 14))

	_, err = db.Delete("id = '1'")
	require.NoError(t, err)

	stat, err := db.Stat()
	require.NoError(t, err)
	assert.Equal(t, storage.Stat{Total: 2, Removed: 1}, stat)

	result, err := db.Purge()
	require.NoError(t, err)
	assert.Equal(t, storage.PurgeResult{Total: 2, Purged: 1}, result)
}

func TestExportImport(t *testing.T) {
	src := newDB(t)
	dir := t.TempDir()

	for _, tc := range []struct {
		format transfer.Format
		name   string
	}{
		{transfer.CSV, "records.csv"},
		{transfer.XML, "records.xml.zst"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			n, err := src.Export(tc.format, path)
			require.NoError(t, err)
			assert.Equal(t, 3, n)

			dst := New(storage.NewMemoryStore(validation.Default()))
			_, _ = dst.Create(person("Old", "Name", 1980, time.February, 2))

			result, err := dst.Import(tc.format, path)
			require.NoError(t, err)
			assert.Equal(t, 3, result.Read)
			assert.Equal(t, 3, result.Applied)
			assert.Empty(t, result.Failures)

			all, err := dst.List()
			require.NoError(t, err)
			assert.Equal(t, []int32{1, 2, 3}, ids(all), "#1 is overwritten by the import")
			assert.Equal(t, "Ann", all[0].FirstName)
		})
	}
}

func TestImport_ReportsValidationFailures(t *testing.T) {
	db := New(storage.NewMemoryStore(validation.Custom()))
	src := newDB(t)
	path := filepath.Join(t.TempDir(), "records.csv")
	_, err := src.Export(transfer.CSV, path)
	require.NoError(t, err)

	// the custom rules reject sex 'F' and every seeded record is female
	result, err := db.Import(transfer.CSV, path)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applied)
	assert.Len(t, result.Failures, 3)
}
