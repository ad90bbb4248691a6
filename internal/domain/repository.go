// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"stockroom/internal/core/entity"
	"stockroom/internal/core/id"
)

// Repository is the data-access contract shared by every entity type.
//
// F is the entity's filter type. A nil filter selects everything; the meaning
// of extra is defined per repository (products use it for critical-only).
type Repository[T entity.Validatable, F any] interface {
	// Select returns the entities matching every populated field of filter.
	Select(ctx context.Context, filter *F, extra bool) ([]T, error)

	// Insert validates and persists a new entity. It returns the generated key,
	// or id.Unassigned together with the error.
	Insert(ctx context.Context, entity T) (id.ID, error)

	// Update validates and persists an entity that carries an assigned key.
	Update(ctx context.Context, entity T) error

	// Delete removes an entity that carries an assigned key.
	Delete(ctx context.Context, entity T) error
}
