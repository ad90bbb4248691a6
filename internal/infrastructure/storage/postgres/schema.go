package postgres

import (
	"context"
	"fmt"

	"stockroom/pkg/logger"
)

// ProductNameConstraint is the unique constraint on products.name.
const ProductNameConstraint = "products_name_key"

// schemaDDL is idempotent; it can run on every start.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id             BIGSERIAL PRIMARY KEY,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL,
		quantity       INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		min_stock      INTEGER NOT NULL DEFAULT 0 CHECK (min_stock >= 0),
		purchase_price NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (purchase_price >= 0),
		sale_price     NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (sale_price >= 0),
		CONSTRAINT ` + ProductNameConstraint + ` UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id         BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id),
		kind       TEXT NOT NULL,
		quantity   INTEGER NOT NULL CHECK (quantity >= 0),
		date       DATE NOT NULL,
		note       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS movements_product_id_idx ON movements (product_id)`,
	`CREATE INDEX IF NOT EXISTS movements_date_idx ON movements (date DESC)`,
}

// EnsureSchema creates the products and movements tables when missing.
func EnsureSchema(ctx context.Context, txm *TxManager) error {
	err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
		q := txm.GetQuerier(ctx)
		for _, stmt := range schemaDDL {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "schema ready", "statements", len(schemaDDL))
	return nil
}
