package helpers

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// StringToNullableText converts a string to pgtype.Text; empty is NULL
func StringToNullableText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// StringPtrToNullableText converts *string to pgtype.Text
func StringPtrToNullableText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return StringToNullableText(*s)
}

// TimeToNullableTimestamptz converts a time to pgtype.Timestamptz
func TimeToNullableTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

// TimePtrToNullableTimestamptz converts *time.Time to pgtype.Timestamptz
func TimePtrToNullableTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return TimeToNullableTimestamptz(*t)
}

// NullableTimestamptzToPtr converts pgtype.Timestamptz to *time.Time
func NullableTimestamptzToPtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// Int32ToNullableInt4 converts an int32 to pgtype.Int4
func Int32ToNullableInt4(i int32) pgtype.Int4 {
	return pgtype.Int4{Int32: i, Valid: true}
}

// Int32PtrToNullableInt4 converts *int32 to pgtype.Int4
func Int32PtrToNullableInt4(i *int32) pgtype.Int4 {
	if i == nil {
		return pgtype.Int4{Valid: false}
	}
	return Int32ToNullableInt4(*i)
}

// NullableInt4ToPtr converts pgtype.Int4 to *int32
func NullableInt4ToPtr(i pgtype.Int4) *int32 {
	if !i.Valid {
		return nil
	}
	v := i.Int32
	return &v
}

// UUIDPtrToNullableUUID converts *uuid.UUID to pgtype.UUID
func UUIDPtrToNullableUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

// NullableUUIDToPtr converts pgtype.UUID to *uuid.UUID
func NullableUUIDToPtr(id pgtype.UUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := uuid.UUID(id.Bytes)
	return &v
}

// DecimalPtrToNullDecimal converts *decimal.Decimal to decimal.NullDecimal
func DecimalPtrToNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{Valid: false}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// NullDecimalToPtr converts decimal.NullDecimal to *decimal.Decimal
func NullDecimalToPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
