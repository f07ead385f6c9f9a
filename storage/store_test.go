package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filecabinet/record"
	"filecabinet/validation"
)

func TestStore_CreateAssignsFirstID(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		id, err := s.Create(ann())
		require.NoError(t, err)
		assert.Equal(t, int32(1), id)

		all, err := s.GetAll()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.True(t, all[0].Equal(record.Record{ID: 1, Fields: ann()}))
	})
}

func TestStore_CreateRejectsInvalid(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		bad := ann()
		bad.FirstName = "A"

		_, err := s.Create(bad)
		var verr *validation.Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, record.FieldFirstName, verr.Field)

		stat, err := s.Stat()
		require.NoError(t, err)
		assert.Equal(t, 0, stat.Total)
	})
}

func TestStore_InsertDuplicateID(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ok, err := s.Insert(record.Record{ID: 5, Fields: ann()})
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = s.Insert(record.Record{ID: 5, Fields: bob()})
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrDuplicateID)

		all, err := s.GetAll()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, int32(5), all[0].ID)
		assert.Equal(t, "Ann", all[0].FirstName)
	})
}

func TestStore_InsertInvalidLeavesStoreUnchanged(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		bad := ann()
		bad.DateOfBirth = date(1900, time.January, 1)

		ok, err := s.Insert(record.Record{ID: 3, Fields: bad})
		assert.False(t, ok)
		assert.Error(t, err)

		all, err := s.GetAll()
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestStore_CreateAfterExplicitInsert(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, err := s.Insert(record.Record{ID: 1, Fields: ann()})
		require.NoError(t, err)
		_, err = s.Insert(record.Record{ID: 7, Fields: ann()})
		require.NoError(t, err)

		id, err := s.Create(bob())
		require.NoError(t, err)
		assert.Equal(t, int32(8), id)
	})
}

func TestStore_EditReindexes(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		id, err := s.Create(ann())
		require.NoError(t, err)

		require.NoError(t, s.Edit(id, bob()))

		found, err := Collect(s.FindByFirstName("ann"))
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = Collect(s.FindByFirstName("BOB"))
		require.NoError(t, err)
		assert.Equal(t, []int32{id}, ids(found))

		found, err = Collect(s.FindByDateOfBirth(bob().DateOfBirth))
		require.NoError(t, err)
		assert.Equal(t, []int32{id}, ids(found))

		found, err = Collect(s.FindByLastName("lee"))
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestStore_EditFailures(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		assert.ErrorIs(t, s.Edit(42, ann()), ErrNotFound)

		id, err := s.Create(ann())
		require.NoError(t, err)

		bad := bob()
		bad.Height = -1
		assert.Error(t, s.Edit(id, bad))

		all, err := s.GetAll()
		require.NoError(t, err)
		assert.Equal(t, "Ann", all[0].FirstName, "failed edit leaves the record untouched")

		removed, err := s.Remove(id)
		require.NoError(t, err)
		require.True(t, removed)
		assert.ErrorIs(t, s.Edit(id, bob()), ErrNotFound)
	})
}

func TestStore_Remove(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		first, _ := s.Create(ann())
		second, _ := s.Create(bob())

		removed, err := s.Remove(first)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = s.Remove(first)
		require.NoError(t, err)
		assert.False(t, removed)

		removed, err = s.Remove(99)
		require.NoError(t, err)
		assert.False(t, removed)

		all, err := s.GetAll()
		require.NoError(t, err)
		assert.Equal(t, []int32{second}, ids(all))

		for _, seq := range []Records{
			s.FindByFirstName("Ann"),
			s.FindByLastName("Lee"),
			s.FindByDateOfBirth(ann().DateOfBirth),
		} {
			found, err := Collect(seq)
			require.NoError(t, err)
			assert.Empty(t, found)
		}
	})
}

func TestStore_FindIsCaseInsensitive(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		a, _ := s.Create(ann())
		b, _ := s.Create(person("ANN", "Other", date(1970, time.May, 5)))
		_, _ = s.Create(bob())

		found, err := Collect(s.FindByFirstName("aNn"))
		require.NoError(t, err)
		assert.ElementsMatch(t, []int32{a, b}, ids(found))

		found, err = Collect(s.FindByLastName("missing"))
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestStore_FindStopsEarly(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		for i := 0; i < 3; i++ {
			_, err := s.Create(ann())
			require.NoError(t, err)
		}

		n := 0
		for _, err := range s.FindByFirstName("Ann") {
			require.NoError(t, err)
			n++
			break
		}
		assert.Equal(t, 1, n)
	})
}

func TestStore_SnapshotRestoreRoundTrip(t *testing.T) {
	forEachStore(t, func(t *testing.T, src Store) {
		_, _ = src.Create(ann())
		_, _ = src.Create(bob())
		_, _ = src.Insert(record.Record{ID: 10, Fields: person("Cat", "Moss", date(1960, time.October, 2))})

		snap, err := src.Snapshot()
		require.NoError(t, err)
		require.Equal(t, 3, snap.Len())

		for name, dst := range map[string]Store{
			"into memory": NewMemoryStore(validation.Default()),
			"into file":   newFileStore(t),
		} {
			t.Run(name, func(t *testing.T) {
				result, err := dst.Restore(snap)
				require.NoError(t, err)
				assert.Equal(t, 3, result.Applied)
				assert.Empty(t, result.Failures)

				want, _ := src.GetAll()
				got, err := dst.GetAll()
				require.NoError(t, err)
				require.Len(t, got, len(want))
				for i := range want {
					assert.True(t, want[i].Equal(got[i]), "record %d", i)
				}

				copied, err := dst.Snapshot()
				require.NoError(t, err)
				wantDigest, err := snap.Digest()
				require.NoError(t, err)
				gotDigest, err := copied.Digest()
				require.NoError(t, err)
				assert.Equal(t, wantDigest, gotDigest)
			})
		}
	})
}

func TestStore_RestoreOverwritesAndSkipsInvalid(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		id, _ := s.Create(ann())

		bad := bob()
		bad.Sex = ' '
		snap := NewSnapshot([]record.Record{
			{ID: id, Fields: bob()},
			{ID: 20, Fields: bad},
			{ID: 21, Fields: person("Dan", "Ray", date(1977, time.April, 9))},
		})

		result, err := s.Restore(snap)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Applied)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, int32(20), result.Failures[0].ID)

		all, err := s.GetAll()
		require.NoError(t, err)
		assert.Equal(t, []int32{id, 21}, ids(all))
		assert.Equal(t, "Bob", all[0].FirstName)

		found, err := Collect(s.FindByFirstName("Ann"))
		require.NoError(t, err)
		assert.Empty(t, found, "overwritten record leaves its old index bucket")

		next, err := s.Create(ann())
		require.NoError(t, err)
		assert.Equal(t, int32(22), next)
	})
}

func TestSnapshotIsImmutable(t *testing.T) {
	in := []record.Record{{ID: 1, Fields: ann()}}
	snap := NewSnapshot(in)
	in[0].FirstName = "Changed"

	out := snap.Records()
	assert.Equal(t, "Ann", out[0].FirstName)
	out[0].FirstName = "Again"
	assert.Equal(t, "Ann", snap.Records()[0].FirstName)
}
