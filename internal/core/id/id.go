// Package id defines the storage-generated identifiers used by products and movements.
package id

import (
	"fmt"
	"strconv"
)

// ID is a storage-assigned identifier (BIGSERIAL).
type ID int64

// Unassigned marks an entity that has not been persisted yet.
const Unassigned ID = -1

// IsAssigned reports whether the identifier was issued by storage.
func (i ID) IsAssigned() bool {
	return i > 0
}

// Int64 returns the raw value.
func (i ID) Int64() int64 {
	return int64(i)
}

func (i ID) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// Parse converts a path or query value to ID. Only positive values are accepted.
func Parse(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Unassigned, fmt.Errorf("parse id %q: %w", s, err)
	}
	if v <= 0 {
		return Unassigned, fmt.Errorf("parse id %q: must be positive", s)
	}
	return ID(v), nil
}

// Ptr returns a pointer to a copy of i, for optional filter fields.
func Ptr(i ID) *ID {
	return &i
}
