// Package pgconv converts between the pgtype values sqlc generates and plain Go values.
package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return UUIDToPgtype(*id)
}

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

func StringToPgtype(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func StringPtrFromPgtype(pt pgtype.Text) *string {
	return ptrIf(pt.Valid, pt.String)
}

func Int32ToPgtype(v int32) pgtype.Int4 {
	return pgtype.Int4{Int32: v, Valid: true}
}

// TimeToPgtype stores t in UTC; timestamptz keeps the instant, not the zone.
func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

func TimePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return TimeToPgtype(*t)
}

// TimeFromPgtype returns the zero time for NULL.
func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func TimePtrFromPgtype(pt pgtype.Timestamptz) *time.Time {
	return ptrIf(pt.Valid, pt.Time)
}

// IsNoRows matches both database/sql and pgx flavours of "no rows".
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

func ptrIf[T any](valid bool, v T) *T {
	if !valid {
		return nil
	}
	return &v
}
