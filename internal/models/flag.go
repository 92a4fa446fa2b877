package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"
)

// Flag is a boolean column that also accepts 0/1 when decoded from JSON,
// so exports written with integer flags still import.
type Flag bool

// UnmarshalJSON accepts true, false, 0, 1 and null
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1", `"1"`, `"true"`:
		*f = true
	case "false", "0", `"0"`, `"false"`, "null", `""`:
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s", data)
	}
	return nil
}

// Scan reads the column; SQLite stores booleans as integers
func (f *Flag) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case int64:
		*f = v != 0
	case []byte:
		return f.UnmarshalJSON(v)
	case string:
		return f.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into Flag", value)
	}
	return nil
}

// Value writes the flag as a plain boolean
func (f Flag) Value() (driver.Value, error) {
	return bool(f), nil
}
