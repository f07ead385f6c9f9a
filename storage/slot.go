package storage

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"time"
	"unicode/utf16"

	"github.com/shopspring/decimal"

	"filecabinet/record"
)

// Slot layout. Every record occupies exactly SlotSize bytes:
//
//	[status: 2][id: 4][first name: 122][last name: 122]
//	[day-1: 4][month-1: 4][year-1: 4][sex: 2][weight: 16][height: 2]
//
// Names are a uint16 UTF-16 unit count followed by 60 zero-padded UTF-16LE
// units. The date is stored as offsets from 0001-01-01. Weight uses the
// 128-bit decimal layout: lo, mid, hi magnitude words then a flags word
// holding the scale in bits 16-23 and the sign in bit 31.
const (
	MaxNameLength = 60

	nameFieldSize = 2 + MaxNameLength*2

	offStatus = 0
	offID     = 2
	offFirst  = 6
	offLast   = offFirst + nameFieldSize
	offDay    = offLast + nameFieldSize
	offMonth  = offDay + 4
	offYear   = offMonth + 4
	offSex    = offYear + 4
	offWeight = offSex + 2
	offHeight = offWeight + 16

	// SlotSize is the fixed byte length of one slot
	SlotSize = offHeight + 2

	maxDecimalScale = 28
)

var byteOrder = binary.LittleEndian

// SlotState tags a slot as live or tombstoned
type SlotState uint8

const (
	Live       SlotState = 0
	Tombstoned SlotState = 1
)

func (s SlotState) String() string {
	switch s {
	case Live:
		return "live"
	case Tombstoned:
		return "tombstoned"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// EncodeError reports a field that does not fit the slot layout
type EncodeError struct {
	Field  record.Field
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("cannot encode %s: %s", e.Field, e.Reason)
}

// DecodeError reports a slot whose bytes are not a valid record
type DecodeError struct {
	Offset int64
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("corrupt slot at offset %d: %s", e.Offset, e.Reason)
}

// EncodeSlot writes r into buf, which must be SlotSize bytes long
func EncodeSlot(buf []byte, state SlotState, r record.Record) error {
	if len(buf) != SlotSize {
		return fmt.Errorf("slot buffer has %d bytes, want %d", len(buf), SlotSize)
	}
	clear(buf)

	buf[offStatus] = byte(state)
	byteOrder.PutUint32(buf[offID:], uint32(r.ID))

	if err := encodeName(buf[offFirst:offLast], record.FieldFirstName, r.FirstName); err != nil {
		return err
	}
	if err := encodeName(buf[offLast:offDay], record.FieldLastName, r.LastName); err != nil {
		return err
	}

	y, m, d := r.DateOfBirth.Date()
	if y < 1 || y > 9999 {
		return &EncodeError{Field: record.FieldDateOfBirth, Reason: fmt.Sprintf("year %d out of range", y)}
	}
	byteOrder.PutUint32(buf[offDay:], uint32(d-1))
	byteOrder.PutUint32(buf[offMonth:], uint32(int(m)-1))
	byteOrder.PutUint32(buf[offYear:], uint32(y-1))

	if r.Sex < 0 || r.Sex > 0xFFFF || utf16.IsSurrogate(r.Sex) {
		return &EncodeError{Field: record.FieldSex, Reason: "character outside the basic multilingual plane"}
	}
	byteOrder.PutUint16(buf[offSex:], uint16(r.Sex))

	if err := encodeDecimal(buf[offWeight:offHeight], r.Weight); err != nil {
		return err
	}
	byteOrder.PutUint16(buf[offHeight:], uint16(r.Height))
	return nil
}

// DecodeSlot reads a slot. The returned DecodeError carries offset 0;
// callers that know the slot position fill it in.
func DecodeSlot(buf []byte) (SlotState, record.Record, error) {
	var r record.Record
	state, err := slotState(buf)
	if err != nil {
		return 0, r, err
	}

	r.ID = slotID(buf)
	if r.FirstName, err = decodeName(buf[offFirst:offLast]); err != nil {
		return 0, r, err
	}
	if r.LastName, err = decodeName(buf[offLast:offDay]); err != nil {
		return 0, r, err
	}
	if r.DateOfBirth, err = slotDate(buf); err != nil {
		return 0, r, err
	}

	sex := byteOrder.Uint16(buf[offSex:])
	if utf16.IsSurrogate(rune(sex)) {
		return 0, r, &DecodeError{Reason: "sex is a lone surrogate"}
	}
	r.Sex = rune(sex)

	if r.Weight, err = decodeDecimal(buf[offWeight:offHeight]); err != nil {
		return 0, r, err
	}
	r.Height = int16(byteOrder.Uint16(buf[offHeight:]))
	return state, r, nil
}

func slotState(buf []byte) (SlotState, error) {
	if len(buf) != SlotSize {
		return 0, &DecodeError{Reason: fmt.Sprintf("short slot of %d bytes", len(buf))}
	}
	if buf[offStatus+1] != 0 {
		return 0, &DecodeError{Reason: "reserved status byte is set"}
	}
	switch s := SlotState(buf[offStatus]); s {
	case Live, Tombstoned:
		return s, nil
	default:
		return 0, &DecodeError{Reason: fmt.Sprintf("unknown status %d", uint8(s))}
	}
}

func slotID(buf []byte) int32 {
	return int32(byteOrder.Uint32(buf[offID:]))
}

func slotFirstName(buf []byte) (string, error) {
	return decodeName(buf[offFirst:offLast])
}

func slotLastName(buf []byte) (string, error) {
	return decodeName(buf[offLast:offDay])
}

func slotDate(buf []byte) (time.Time, error) {
	d := int32(byteOrder.Uint32(buf[offDay:]))
	m := int32(byteOrder.Uint32(buf[offMonth:]))
	y := int32(byteOrder.Uint32(buf[offYear:]))
	if d < 0 || d > 30 || m < 0 || m > 11 || y < 0 || y > 9998 {
		return time.Time{}, &DecodeError{Reason: fmt.Sprintf("date offsets %d/%d/%d out of range", d, m, y)}
	}
	t := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(int(y), int(m), int(d))
	if t.Day() != int(d)+1 {
		return time.Time{}, &DecodeError{Reason: fmt.Sprintf("day %d does not exist in month %d", d+1, m+1)}
	}
	return t, nil
}

func encodeName(dst []byte, field record.Field, name string) error {
	units := utf16.Encode([]rune(name))
	if len(units) > MaxNameLength {
		return &EncodeError{Field: field, Reason: fmt.Sprintf("longer than %d characters", MaxNameLength)}
	}
	byteOrder.PutUint16(dst, uint16(len(units)))
	for i, u := range units {
		byteOrder.PutUint16(dst[2+i*2:], u)
	}
	return nil
}

func decodeName(src []byte) (string, error) {
	n := int(byteOrder.Uint16(src))
	if n > MaxNameLength {
		return "", &DecodeError{Reason: fmt.Sprintf("name length %d exceeds %d", n, MaxNameLength)}
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = byteOrder.Uint16(src[2+i*2:])
	}
	return string(utf16.Decode(units)), nil
}

var maxMagnitude = new(big.Int).Lsh(big.NewInt(1), 96)

func encodeDecimal(dst []byte, d decimal.Decimal) error {
	coef := d.Coefficient()
	exp := d.Exponent()
	if exp > 0 {
		coef.Mul(coef, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil))
		exp = 0
	}
	scale := -exp
	if scale > maxDecimalScale {
		return &EncodeError{Field: record.FieldWeight, Reason: fmt.Sprintf("scale %d exceeds %d", scale, maxDecimalScale)}
	}

	negative := coef.Sign() < 0
	mag := new(big.Int).Abs(coef)
	if mag.Cmp(maxMagnitude) >= 0 {
		return &EncodeError{Field: record.FieldWeight, Reason: "magnitude exceeds 96 bits"}
	}

	var raw [12]byte
	mag.FillBytes(raw[:])
	byteOrder.PutUint32(dst[0:], binary.BigEndian.Uint32(raw[8:12]))
	byteOrder.PutUint32(dst[4:], binary.BigEndian.Uint32(raw[4:8]))
	byteOrder.PutUint32(dst[8:], binary.BigEndian.Uint32(raw[0:4]))

	flags := uint32(scale) << 16
	if negative && mag.Sign() != 0 {
		flags |= 1 << 31
	}
	byteOrder.PutUint32(dst[12:], flags)
	return nil
}

func decodeDecimal(src []byte) (decimal.Decimal, error) {
	lo := byteOrder.Uint32(src[0:])
	mid := byteOrder.Uint32(src[4:])
	hi := byteOrder.Uint32(src[8:])
	flags := byteOrder.Uint32(src[12:])

	if flags&0x7F00FFFF != 0 {
		return decimal.Zero, &DecodeError{Reason: fmt.Sprintf("invalid decimal flags %#x", flags)}
	}
	scale := int32(flags>>16) & 0xFF
	if scale > maxDecimalScale {
		return decimal.Zero, &DecodeError{Reason: fmt.Sprintf("decimal scale %d exceeds %d", scale, maxDecimalScale)}
	}

	var raw [12]byte
	binary.BigEndian.PutUint32(raw[0:], hi)
	binary.BigEndian.PutUint32(raw[4:], mid)
	binary.BigEndian.PutUint32(raw[8:], lo)
	mag := new(big.Int).SetBytes(raw[:])
	if flags&(1<<31) != 0 {
		mag.Neg(mag)
	}
	return decimal.NewFromBigInt(mag, -scale), nil
}
