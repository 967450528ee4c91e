package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// parseTimestamp parses an RFC3339 timestamp, naming the field on failure.
func parseTimestamp(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(timestampFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// nullFloat converts an optional float to its nullable column value.
func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// floatPtr converts a nullable column value back to an optional float.
func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
