package sqlutil

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sqlc-dev/pqtype"
)

// Helper functions for converting between Go types and sql.Null* types

// ToNullTime converts a Go time pointer to sql.NullTime
func ToNullTime(val *time.Time) sql.NullTime {
	if val == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *val, Valid: true}
}

// FromNullTime converts sql.NullTime to a Go time pointer
func FromNullTime(val sql.NullTime) *time.Time {
	if !val.Valid {
		return nil
	}
	t := val.Time
	return &t
}

// ToNullRawMessage wraps raw JSON bytes in pqtype.NullRawMessage
func ToNullRawMessage(val []byte) pqtype.NullRawMessage {
	if len(val) == 0 {
		return pqtype.NullRawMessage{Valid: false}
	}
	return pqtype.NullRawMessage{RawMessage: val, Valid: true}
}

// FromNullRawMessage converts pqtype.NullRawMessage to raw JSON bytes
func FromNullRawMessage(val pqtype.NullRawMessage) json.RawMessage {
	if !val.Valid {
		return nil
	}
	return val.RawMessage
}

// ToNullString converts a Go string pointer to sql.NullString
func ToNullString(val *string) sql.NullString {
	if val == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *val, Valid: true}
}

// FromNullString converts sql.NullString to a Go string pointer
func FromNullString(val sql.NullString) *string {
	if !val.Valid {
		return nil
	}
	s := val.String
	return &s
}
