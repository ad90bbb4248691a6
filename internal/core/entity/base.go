// Package entity holds the pieces shared by every persisted record.
package entity

import (
	"context"

	"stockroom/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// BaseEntity carries the storage-assigned identity.
type BaseEntity struct {
	ID id.ID `db:"id" json:"id"`
}

// NewBaseEntity returns an identity that storage has not assigned yet.
func NewBaseEntity() BaseEntity {
	return BaseEntity{ID: id.Unassigned}
}

// IsNew reports whether the entity still waits for its generated key.
func (b BaseEntity) IsNew() bool {
	return !b.ID.IsAssigned()
}
