package decorator

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"filecabinet/metrics"
	"filecabinet/record"
	"filecabinet/storage"
	"filecabinet/validation"
)

func ann() record.Fields {
	return record.Fields{
		FirstName:   "Ann",
		LastName:    "Lee",
		DateOfBirth: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Sex:         'F',
		Weight:      decimal.NewFromInt(60),
		Height:      160,
	}
}

// both wrappers must be drop-in Stores
var (
	_ storage.Store = (*Logged)(nil)
	_ storage.Store = (*Timed)(nil)
)

func TestLogged_LogsCallsAndOutcomes(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewLogged(storage.NewMemoryStore(validation.Default()), zap.New(core))

	id, err := s.Create(ann())
	require.NoError(t, err)
	assert.Equal(t, int32(1), id)

	calls := logs.FilterMessage("calling Create").All()
	require.Len(t, calls, 1)
	assert.Equal(t, "Ann", calls[0].ContextMap()["firstName"])
	assert.Equal(t, "store", calls[0].LoggerName)

	returned := logs.FilterMessage("Create returned").All()
	require.Len(t, returned, 1)
	assert.Equal(t, int32(1), returned[0].ContextMap()["id"])

	require.Error(t, s.Edit(99, ann()))
	failed := logs.FilterMessage("Edit failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
}

func TestLogged_FindIsLoggedAfterIteration(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewLogged(storage.NewMemoryStore(validation.Default()), zap.New(core))
	_, _ = s.Create(ann())
	_, _ = s.Create(ann())

	seq := s.FindByFirstName("ann")
	assert.Zero(t, logs.FilterMessage("calling FindByFirstName").Len(), "nothing logged before iterating")

	found, err := storage.Collect(seq)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	returned := logs.FilterMessage("FindByFirstName returned").All()
	require.Len(t, returned, 1)
	assert.Equal(t, int64(2), returned[0].ContextMap()["records"])
}

func TestTimed_RecordsMetrics(t *testing.T) {
	s := NewTimed(storage.NewMemoryStore(validation.Default()))

	okBefore := testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("Insert", "ok"))
	errBefore := testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("Insert", "error"))

	_, err := s.Insert(record.Record{ID: 5, Fields: ann()})
	require.NoError(t, err)
	_, err = s.Insert(record.Record{ID: 5, Fields: ann()})
	require.ErrorIs(t, err, storage.ErrDuplicateID)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("Insert", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("Insert", "error")))

	_, err = s.Stat()
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.LiveRecords))
}

func TestTimed_Report(t *testing.T) {
	var out bytes.Buffer
	s := NewTimed(storage.NewMemoryStore(validation.Default()), WithReport(&out))
	tick := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}

	_, err := s.Create(ann())
	require.NoError(t, err)
	assert.Equal(t, "Create method execution duration is 1ms.\n", out.String())

	out.Reset()
	_, err = storage.Collect(s.FindByLastName("lee"))
	require.NoError(t, err)
	assert.Equal(t, "FindByLastName method execution duration is 1ms.\n", out.String())
}

func TestDecorators_Stack(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer
	var s storage.Store = storage.NewMemoryStore(validation.Default())
	s = NewTimed(s, WithReport(&out))
	s = NewLogged(s, zap.New(core))

	removed, err := s.Remove(1)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Contains(t, out.String(), "Remove method execution duration")
	assert.Equal(t, 1, logs.FilterMessage("Remove returned").Len())
}
