package models

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/panelstore/internal/shared"
)

// encodeBlob serializes a configuration blob for a JSON column.
func encodeBlob(column string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", shared.ErrSerialization, column, err)
	}
	return string(data), nil
}

// decodeBlob unmarshals a stored blob into target. NULL and empty values leave target untouched.
func decodeBlob(column string, raw sql.NullString, target any) error {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw.String), target); err != nil {
		return fmt.Errorf("%w: malformed %s: %w", shared.ErrSerialization, column, err)
	}
	return nil
}

// orDefault returns *v when set and def otherwise.
func orDefault(v *bool, def bool) *bool {
	if v != nil {
		return v
	}
	return &def
}
