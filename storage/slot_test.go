package storage

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filecabinet/record"
)

func TestSlotLayout(t *testing.T) {
	assert.Equal(t, 282, SlotSize)
	assert.Equal(t, 6, offFirst)
	assert.Equal(t, 250, offDay)
	assert.Equal(t, 264, offWeight)
}

func TestSlotRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rec  record.Record
	}{
		{"plain", record.Record{ID: 1, Fields: ann()}},
		{"unicode names", record.Record{ID: 2, Fields: person("Zoë", "Ångström", date(1961, time.February, 28))}},
		{"fractional weight", record.Record{ID: -3, Fields: record.Fields{
			FirstName: "Al", LastName: "Bo", DateOfBirth: date(2000, time.February, 29),
			Sex: 'M', Weight: decimal.RequireFromString("-72.125"), Height: -1,
		}}},
		{"scaled weight", record.Record{ID: 4, Fields: record.Fields{
			FirstName: "Cy", LastName: "Do", DateOfBirth: date(1, time.January, 1),
			Sex: 'X', Weight: decimal.New(12, 3), Height: 32767,
		}}},
		{"max length name", record.Record{ID: 5, Fields: person(strings.Repeat("n", MaxNameLength), "Lee", date(1999, time.December, 31))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, SlotSize)
			require.NoError(t, EncodeSlot(buf, Live, tt.rec))

			state, got, err := DecodeSlot(buf)
			require.NoError(t, err)
			assert.Equal(t, Live, state)
			assert.True(t, tt.rec.Equal(got), "want %v, got %v", tt.rec, got)
		})
	}
}

func TestSlotDateIsStoredAsEpochOffsets(t *testing.T) {
	buf := make([]byte, SlotSize)
	r := record.Record{ID: 1, Fields: person("Ann", "Lee", date(1990, time.March, 15))}
	require.NoError(t, EncodeSlot(buf, Tombstoned, r))

	assert.Equal(t, uint32(14), byteOrder.Uint32(buf[offDay:]))
	assert.Equal(t, uint32(2), byteOrder.Uint32(buf[offMonth:]))
	assert.Equal(t, uint32(1989), byteOrder.Uint32(buf[offYear:]))
	assert.Equal(t, byte(Tombstoned), buf[offStatus])
	assert.Equal(t, uint16(3), byteOrder.Uint16(buf[offFirst:]))
	assert.Equal(t, uint16('A'), byteOrder.Uint16(buf[offFirst+2:]))
}

func TestSlotDecimalLayout(t *testing.T) {
	buf := make([]byte, SlotSize)
	r := record.Record{ID: 1, Fields: ann()}
	r.Weight = decimal.RequireFromString("-60.5")
	require.NoError(t, EncodeSlot(buf, Live, r))

	w := buf[offWeight:offHeight]
	assert.Equal(t, uint32(605), byteOrder.Uint32(w[0:]))
	assert.Equal(t, uint32(0), byteOrder.Uint32(w[4:]))
	assert.Equal(t, uint32(0), byteOrder.Uint32(w[8:]))
	assert.Equal(t, uint32(1<<31|1<<16), byteOrder.Uint32(w[12:]))
}

func TestEncodeSlotErrors(t *testing.T) {
	buf := make([]byte, SlotSize)
	var encErr *EncodeError

	long := record.Record{ID: 1, Fields: person(strings.Repeat("x", MaxNameLength+1), "Lee", date(1990, 1, 1))}
	err := EncodeSlot(buf, Live, long)
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, record.FieldFirstName, encErr.Field)

	emoji := record.Record{ID: 1, Fields: ann()}
	emoji.Sex = '😀'
	err = EncodeSlot(buf, Live, emoji)
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, record.FieldSex, encErr.Field)

	precise := record.Record{ID: 1, Fields: ann()}
	precise.Weight = decimal.New(1, -29)
	err = EncodeSlot(buf, Live, precise)
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, record.FieldWeight, encErr.Field)

	assert.Error(t, EncodeSlot(make([]byte, 10), Live, precise))
}

func TestDecodeSlotRejectsCorruption(t *testing.T) {
	valid := make([]byte, SlotSize)
	require.NoError(t, EncodeSlot(valid, Live, record.Record{ID: 1, Fields: ann()}))

	tests := []struct {
		name    string
		corrupt func(buf []byte)
	}{
		{"unknown status", func(buf []byte) { buf[offStatus] = 7 }},
		{"reserved status byte", func(buf []byte) { buf[offStatus+1] = 1 }},
		{"name length", func(buf []byte) { byteOrder.PutUint16(buf[offLast:], 61) }},
		{"impossible day", func(buf []byte) {
			byteOrder.PutUint32(buf[offDay:], 29)  // 30th
			byteOrder.PutUint32(buf[offMonth:], 1) // February
		}},
		{"month offset", func(buf []byte) { byteOrder.PutUint32(buf[offMonth:], 12) }},
		{"decimal flags", func(buf []byte) { byteOrder.PutUint32(buf[offWeight+12:], 1) }},
		{"decimal scale", func(buf []byte) { byteOrder.PutUint32(buf[offWeight+12:], 29<<16) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := append([]byte(nil), valid...)
			tt.corrupt(buf)

			_, _, err := DecodeSlot(buf)
			var decErr *DecodeError
			assert.True(t, errors.As(err, &decErr), "got %v", err)
		})
	}

	_, _, err := DecodeSlot(valid[:SlotSize-1])
	assert.Error(t, err)
}
