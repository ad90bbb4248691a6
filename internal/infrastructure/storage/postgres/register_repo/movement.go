// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/domain/registers/movement"
	"stockroom/internal/infrastructure/storage/postgres"
)

const movementsTable = "movements"

// Compile-time check that MovementRepo implements movement.Repository.
var _ movement.Repository = (*MovementRepo)(nil)

// MovementRepo implements movement.Repository. The ledger is append-only.
type MovementRepo struct {
	*postgres.BaseRepo[*movement.Movement]
}

// NewMovementRepo creates a new movement repository.
func NewMovementRepo(txm *postgres.TxManager) *MovementRepo {
	return &MovementRepo{
		BaseRepo: postgres.NewBaseRepo[*movement.Movement](
			txm,
			movementsTable,
			postgres.ExtractDBColumns[movement.Movement](),
		),
	}
}

// buildSelect lists movements newest first; id breaks ties within a day.
func (r *MovementRepo) buildSelect(filter *movement.Filter) squirrel.SelectBuilder {
	q := r.BaseSelect()
	if filter != nil {
		if filter.ID != nil {
			q = q.Where(squirrel.Eq{"id": *filter.ID})
		}
		if filter.ProductID != nil {
			q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
		}
	}
	return q.OrderBy("date DESC", "id DESC")
}

// Select returns movements ordered by date descending. extra is ignored.
func (r *MovementRepo) Select(ctx context.Context, filter *movement.Filter, _ bool) ([]*movement.Movement, error) {
	items, err := r.SelectMany(ctx, r.buildSelect(filter))
	if err != nil {
		return nil, err
	}
	for _, m := range items {
		m.Date = movement.DateOf(m.Date)
	}
	return items, nil
}

// Insert validates and appends m to the ledger.
func (r *MovementRepo) Insert(ctx context.Context, m *movement.Movement) (id.ID, error) {
	if m == nil {
		return id.Unassigned, apperror.NewValidation("movement is required")
	}
	if err := m.Validate(ctx); err != nil {
		return id.Unassigned, err
	}

	data := postgres.WritableMap(m)
	data["date"] = movement.DateOf(m.Date)

	newID, err := r.InsertReturningID(ctx, data)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return id.Unassigned, apperror.NewNotFound("product", m.ProductID).WithCause(err)
		}
		return id.Unassigned, apperror.NewStorage("insert movement", err)
	}
	return newID, nil
}

// Update is not supported: movements are append-only.
func (r *MovementRepo) Update(context.Context, *movement.Movement) error {
	return apperror.NewNotImplemented("movement", "update")
}

// Delete is not supported: movements are removed only with their product.
func (r *MovementRepo) Delete(context.Context, *movement.Movement) error {
	return apperror.NewNotImplemented("movement", "delete")
}
