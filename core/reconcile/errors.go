package reconcile

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigError.
var ErrConfiguration = errors.New("reconcile: invalid configuration")

// ConfigError reports a mapping that cannot drive a join.
type ConfigError struct {
	// Field is the mapping field at fault (e.g. "parts_designator").
	Field string
	// Table is the table the field refers to ("parts" or "placement").
	Table string
	// Column is the mapped column name, empty when the field is unmapped.
	Column string
}

func (e *ConfigError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("reconcile: %s is not mapped", e.Field)
	}
	return fmt.Sprintf("reconcile: %s column %q not found in %s table", e.Field, e.Column, e.Table)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}
