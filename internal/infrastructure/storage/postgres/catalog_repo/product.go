// Package catalog_repo provides PostgreSQL implementations for catalog repositories.
package catalog_repo

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/domain/catalogs/product"
	"stockroom/internal/infrastructure/storage/postgres"
)

const (
	productsTable  = "products"
	movementsTable = "movements"
)

// Compile-time check that ProductRepo implements product.Repository.
var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*postgres.BaseRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseRepo: postgres.NewBaseRepo[*product.Product](
			txm,
			productsTable,
			postgres.ExtractDBColumns[product.Product](),
		),
	}
}

// buildSelect compiles filter into a SELECT. Clauses are added in a fixed
// order: name, description, quantity, critical-only, min stock, purchase
// price, sale price, id. A nil filter selects everything.
func (r *ProductRepo) buildSelect(filter *product.Filter, criticalOnly bool) squirrel.SelectBuilder {
	q := r.BaseSelect()
	if filter == nil {
		filter = &product.Filter{}
	}

	if filter.Name != nil && strings.TrimSpace(*filter.Name) != "" {
		q = q.Where(squirrel.Like{"name": prefixPattern(*filter.Name)})
	}
	if filter.Description != nil && strings.TrimSpace(*filter.Description) != "" {
		q = q.Where(squirrel.Like{"description": prefixPattern(*filter.Description)})
	}
	if filter.Quantity != nil {
		q = q.Where(squirrel.Eq{"quantity": *filter.Quantity})
	}
	if criticalOnly {
		q = q.Where("quantity <= min_stock")
	}
	if filter.MinStock != nil {
		q = q.Where(squirrel.Eq{"min_stock": *filter.MinStock})
	}
	if filter.PurchasePrice != nil {
		q = q.Where(squirrel.Eq{"purchase_price": *filter.PurchasePrice})
	}
	if filter.SalePrice != nil {
		q = q.Where(squirrel.Eq{"sale_price": *filter.SalePrice})
	}
	if filter.ID != nil {
		q = q.Where(squirrel.Eq{"id": *filter.ID})
	}

	return q
}

// prefixPattern turns user input into a LIKE prefix pattern, escaping the
// wildcards it may contain.
func prefixPattern(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return s + "%"
}

// Select returns the products matching filter. criticalOnly restricts the
// result to products at or below their reorder threshold.
func (r *ProductRepo) Select(ctx context.Context, filter *product.Filter, criticalOnly bool) ([]*product.Product, error) {
	return r.SelectMany(ctx, r.buildSelect(filter, criticalOnly))
}

// Insert validates and persists p and returns the generated key.
func (r *ProductRepo) Insert(ctx context.Context, p *product.Product) (id.ID, error) {
	if p == nil {
		return id.Unassigned, apperror.NewValidation("product is required")
	}
	if err := p.Validate(ctx); err != nil {
		return id.Unassigned, err
	}

	newID, err := r.InsertReturningID(ctx, postgres.WritableMap(p))
	if err != nil {
		return id.Unassigned, r.mapWriteError("insert product", p, err)
	}
	return newID, nil
}

// Update validates and persists p. A missing row is NOT_FOUND.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	if p == nil || !p.ID.IsAssigned() {
		return apperror.NewFieldValidation("id", "product id is required")
	}
	if err := p.Validate(ctx); err != nil {
		return err
	}

	affected, err := r.UpdateByID(ctx, p.ID, postgres.WritableMap(p))
	if err != nil {
		return r.mapWriteError("update product", p, err)
	}
	if affected == 0 {
		return apperror.NewNotFound("product", p.ID)
	}
	return nil
}

// Delete removes the product's movements, then the product, in one
// transaction. Rows already gone are not an error.
func (r *ProductRepo) Delete(ctx context.Context, p *product.Product) error {
	if p == nil || !p.ID.IsAssigned() {
		return apperror.NewFieldValidation("id", "product id is required")
	}

	return r.TxManager().RunInTransaction(ctx, func(ctx context.Context) error {
		for _, stmt := range r.deleteStatements(p.ID) {
			if err := r.Exec(ctx, stmt.op, stmt.builder); err != nil {
				return err
			}
		}
		return nil
	})
}

type deleteStatement struct {
	op      string
	builder squirrel.DeleteBuilder
}

// deleteStatements returns the cascade in execution order.
func (r *ProductRepo) deleteStatements(productID id.ID) []deleteStatement {
	return []deleteStatement{
		{
			op:      "delete product movements",
			builder: r.Builder().Delete(movementsTable).Where(squirrel.Eq{"product_id": productID}),
		},
		{
			op:      "delete product",
			builder: r.Builder().Delete(productsTable).Where(squirrel.Eq{"id": productID}),
		},
	}
}

func (r *ProductRepo) mapWriteError(op string, p *product.Product, err error) error {
	if postgres.IsUniqueViolation(err, postgres.ProductNameConstraint) {
		return apperror.NewDuplicate("product", "name", p.Name).WithCause(err)
	}
	if _, ok := apperror.AsAppError(err); ok {
		return err
	}
	return apperror.NewStorage(op, err)
}
