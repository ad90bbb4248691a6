// Package inventory ties movements to product stock.
//
// Every write that touches both tables goes through Service: recording a
// movement updates the product's quantity, creating a product opens its
// ledger with an initial-stock movement, and deleting a product removes its
// ledger first. With a tx.Manager each flow is one transaction; without one
// the steps run in order and a failure after the first committed step is
// reported as PARTIAL_WRITE with the committed step names.
package inventory

import (
	"context"
	"time"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/tx"
	"stockroom/internal/domain/catalogs/product"
	"stockroom/internal/domain/registers/movement"
	"stockroom/pkg/logger"
)

// Step names reported in PARTIAL_WRITE details.
const (
	StepInsertProduct  = "insert_product"
	StepInsertMovement = "insert_movement"
	StepUpdateProduct  = "update_product"
	StepDeleteProduct  = "delete_product"
)

// Service provides the inventory write and read operations.
type Service struct {
	products  product.Repository
	movements movement.Repository
	txManager tx.Manager
	now       func() time.Time
}

// Option configures Service.
type Option func(*Service)

// WithTxManager runs every multi-step flow inside one transaction.
func WithTxManager(m tx.Manager) Option {
	return func(s *Service) { s.txManager = m }
}

// WithClock overrides the clock used for movement dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new inventory service.
func NewService(products product.Repository, movements movement.Repository, opts ...Option) *Service {
	s := &Service{
		products:  products,
		movements: movements,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transactional reports whether flows run inside a transaction.
func (s *Service) Transactional() bool {
	return s.txManager != nil
}

// --- Read side ---

// Products returns the products matching filter; a nil filter returns all.
func (s *Service) Products(ctx context.Context, filter *product.Filter, criticalOnly bool) ([]*product.Product, error) {
	return s.products.Select(ctx, filter, criticalOnly)
}

// Product loads a single product.
func (s *Service) Product(ctx context.Context, productID id.ID) (*product.Product, error) {
	items, err := s.products.Select(ctx, product.ByID(productID), false)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewNotFound("product", productID)
	}
	return items[0], nil
}

// Movements returns movements newest first.
func (s *Service) Movements(ctx context.Context, filter *movement.Filter) ([]*movement.Movement, error) {
	return s.movements.Select(ctx, filter, false)
}

// --- Write side ---

// CreateProduct inserts p and opens its ledger with an initial-stock
// movement for the starting quantity. p.ID is set on success.
func (s *Service) CreateProduct(ctx context.Context, p *product.Product) (id.ID, error) {
	if p == nil {
		return id.Unassigned, apperror.NewValidation("product is required")
	}

	err := s.runFlow(ctx, func(ctx context.Context, f *flow) error {
		if err := f.step(ctx, StepInsertProduct, func(ctx context.Context) error {
			newID, err := s.products.Insert(ctx, p)
			if err != nil {
				return err
			}
			p.ID = newID
			return nil
		}); err != nil {
			return err
		}

		f.detail("product_id", p.ID)
		f.detail("initial_quantity", p.Quantity)

		initial := movement.NewInitialStock(p.ID, p.Quantity, s.now())
		return f.step(ctx, StepInsertMovement, func(ctx context.Context) error {
			newID, err := s.movements.Insert(ctx, initial)
			if err != nil {
				return err
			}
			initial.ID = newID
			return nil
		})
	})
	if err != nil {
		if s.txManager != nil {
			// the product row was rolled back with the flow
			p.ID = id.Unassigned
		}
		return id.Unassigned, err
	}

	logger.Info(ctx, "product created",
		"product_id", p.ID,
		"name", p.Name,
		"quantity", p.Quantity,
	)
	return p.ID, nil
}

// UpdateProduct persists a direct edit of p, including its quantity.
// Re-issuing it with the same absolute quantity is idempotent.
func (s *Service) UpdateProduct(ctx context.Context, p *product.Product) error {
	if p == nil {
		return apperror.NewValidation("product is required")
	}
	if err := s.products.Update(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "product updated",
		"product_id", p.ID,
		"quantity", p.Quantity,
	)
	return nil
}

// DeleteProduct removes the product's movements, then the product.
// Deleting a product that no longer exists succeeds.
func (s *Service) DeleteProduct(ctx context.Context, productID id.ID) error {
	if !productID.IsAssigned() {
		return apperror.NewFieldValidation("id", "product id is required")
	}

	target := &product.Product{}
	target.ID = productID

	err := s.runFlow(ctx, func(ctx context.Context, f *flow) error {
		return f.step(ctx, StepDeleteProduct, func(ctx context.Context) error {
			return s.products.Delete(ctx, target)
		})
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "product deleted", "product_id", productID)
	return nil
}

// RecordMovement appends m to the ledger and applies its delta to the
// referenced product. It returns the product with its new quantity.
//
// A zero m.Date is replaced by today. Outbound movements may not exceed
// the stock on hand.
func (s *Service) RecordMovement(ctx context.Context, m *movement.Movement) (*product.Product, error) {
	if m == nil {
		return nil, apperror.NewValidation("movement is required")
	}

	now := s.now()
	if m.Date.IsZero() {
		m.Date = movement.DateOf(now)
	}
	if err := m.ValidateAt(ctx, now); err != nil {
		return nil, err
	}

	delta, err := m.Delta()
	if err != nil {
		return nil, err
	}

	var updated *product.Product
	err = s.runFlow(ctx, func(ctx context.Context, f *flow) error {
		p, err := s.Product(ctx, m.ProductID)
		if err != nil {
			return err
		}

		target := p.Quantity + delta
		if target < 0 {
			return apperror.NewInsufficientStock(p.ID, m.Quantity, p.Quantity)
		}

		f.detail("product_id", p.ID)
		f.detail("target_quantity", target)

		if err := f.step(ctx, StepInsertMovement, func(ctx context.Context) error {
			newID, err := s.movements.Insert(ctx, m)
			if err != nil {
				return err
			}
			m.ID = newID
			return nil
		}); err != nil {
			return err
		}

		p.Quantity = target
		if err := f.step(ctx, StepUpdateProduct, func(ctx context.Context) error {
			return s.products.Update(ctx, p)
		}); err != nil {
			return err
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "movement recorded",
		"movement_id", m.ID,
		"product_id", m.ProductID,
		"kind", m.Kind,
		"quantity", m.Quantity,
		"stock", updated.Quantity,
	)
	return updated, nil
}

// --- Flow execution ---

func (s *Service) runFlow(ctx context.Context, fn func(ctx context.Context, f *flow) error) error {
	if s.txManager == nil {
		return fn(ctx, &flow{reportPartial: true})
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return fn(ctx, &flow{})
	})
}

// flow tracks the committed steps of one multi-step write.
type flow struct {
	reportPartial bool
	completed     []string
	details       []detail
}

type detail struct {
	key   string
	value any
}

func (f *flow) detail(key string, value any) {
	f.details = append(f.details, detail{key: key, value: value})
}

// step runs fn. Inside a transaction errors pass through untouched; in step
// mode a failure after a committed step becomes PARTIAL_WRITE.
func (f *flow) step(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		if !f.reportPartial || len(f.completed) == 0 {
			return err
		}

		completed := append([]string(nil), f.completed...)
		partial := apperror.NewPartialWrite(completed, name, err)
		for _, d := range f.details {
			partial.WithDetail(d.key, d.value)
		}

		logger.Error(ctx, "multi-step write stopped",
			"completed", completed,
			"failed_step", name,
			"error", err,
		)
		return partial
	}

	f.completed = append(f.completed, name)
	return nil
}
