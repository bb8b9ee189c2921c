package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is a free-form JSON object stored in a JSON column.
// Template schemas and lesson content carry no fixed shape at this layer.
type JSONMap map[string]any

// Value implements driver.Valuer for writing to a JSON column
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json map: %w", err)
	}
	return data, nil
}

// Scan implements sql.Scanner for reading from a JSON column
func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for json map: %T", src)
	}

	if len(data) == 0 {
		*m = nil
		return nil
	}

	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("failed to unmarshal json map: %w", err)
	}
	return nil
}
