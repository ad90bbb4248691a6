package reports

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/domain/catalogs/product"
	"stockroom/internal/domain/registers/movement"
)

// Service loads the ledger through the repositories and aggregates it.
type Service struct {
	products  product.Repository
	movements movement.Repository
}

// NewService creates a new reports service.
func NewService(products product.Repository, movements movement.Repository) *Service {
	return &Service{products: products, movements: movements}
}

// Daily returns per-day totals for the month preceding ref.
func (s *Service) Daily(ctx context.Context, ref time.Time) (MonthlySeries, error) {
	movements, err := s.movements.Select(ctx, nil, false)
	if err != nil {
		return MonthlySeries{}, fmt.Errorf("load movements: %w", err)
	}
	return DailyByMonth(ref, movements), nil
}

// ByProduct returns inbound and outbound totals for every product.
func (s *Service) ByProduct(ctx context.Context) (Series, error) {
	products, err := s.products.Select(ctx, nil, false)
	if err != nil {
		return Series{}, fmt.Errorf("load products: %w", err)
	}
	movements, err := s.movements.Select(ctx, nil, false)
	if err != nil {
		return Series{}, fmt.Errorf("load movements: %w", err)
	}
	return PerProduct(products, movements), nil
}
