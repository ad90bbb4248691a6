package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/domain/catalogs/product"
	"stockroom/internal/domain/registers/movement"
)

var errStorageDown = errors.New("connection refused")

// store is an in-memory backing for both fake repositories. ops records
// every write in execution order.
type store struct {
	products  map[id.ID]product.Product
	movements []movement.Movement
	nextID    id.ID
	ops       []string

	failProductInsert  error
	failProductUpdate  error
	failMovementInsert error
}

func newStore() *store {
	return &store{products: make(map[id.ID]product.Product), nextID: 1}
}

func (s *store) seed(p *product.Product) *product.Product {
	p.ID = s.nextID
	s.nextID++
	s.products[p.ID] = *p
	return p
}

func (s *store) movementsOf(productID id.ID) []movement.Movement {
	var out []movement.Movement
	for _, m := range s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

type fakeProducts struct{ s *store }

func (r fakeProducts) Select(_ context.Context, filter *product.Filter, critical bool) ([]*product.Product, error) {
	ids := make([]id.ID, 0, len(r.s.products))
	for k := range r.s.products {
		ids = append(ids, k)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*product.Product
	for _, k := range ids {
		p := r.s.products[k]
		if filter != nil && filter.ID != nil && *filter.ID != p.ID {
			continue
		}
		if critical && !p.IsCritical() {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (r fakeProducts) Insert(ctx context.Context, p *product.Product) (id.ID, error) {
	if err := p.Validate(ctx); err != nil {
		return id.Unassigned, err
	}
	if r.s.failProductInsert != nil {
		return id.Unassigned, r.s.failProductInsert
	}
	for _, existing := range r.s.products {
		if existing.Name == p.Name {
			return id.Unassigned, apperror.NewDuplicate("product", "name", p.Name)
		}
	}
	newID := r.s.nextID
	r.s.nextID++
	stored := *p
	stored.ID = newID
	r.s.products[newID] = stored
	r.s.ops = append(r.s.ops, fmt.Sprintf("insert product %d", newID))
	return newID, nil
}

func (r fakeProducts) Update(ctx context.Context, p *product.Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if r.s.failProductUpdate != nil {
		return r.s.failProductUpdate
	}
	if _, ok := r.s.products[p.ID]; !ok {
		return apperror.NewNotFound("product", p.ID)
	}
	r.s.products[p.ID] = *p
	r.s.ops = append(r.s.ops, fmt.Sprintf("update product %d quantity=%d", p.ID, p.Quantity))
	return nil
}

func (r fakeProducts) Delete(_ context.Context, p *product.Product) error {
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProductID != p.ID {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	r.s.ops = append(r.s.ops, fmt.Sprintf("delete movements of %d", p.ID))

	delete(r.s.products, p.ID)
	r.s.ops = append(r.s.ops, fmt.Sprintf("delete product %d", p.ID))
	return nil
}

type fakeMovements struct{ s *store }

func (r fakeMovements) Select(_ context.Context, filter *movement.Filter, _ bool) ([]*movement.Movement, error) {
	var out []*movement.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if filter != nil && filter.ProductID != nil && *filter.ProductID != m.ProductID {
			continue
		}
		cp := m
		out = append(out, &cp)
	}
	return out, nil
}

func (r fakeMovements) Insert(ctx context.Context, m *movement.Movement) (id.ID, error) {
	if err := m.Validate(ctx); err != nil {
		return id.Unassigned, err
	}
	if r.s.failMovementInsert != nil {
		return id.Unassigned, r.s.failMovementInsert
	}
	newID := r.s.nextID
	r.s.nextID++
	stored := *m
	stored.ID = newID
	r.s.movements = append(r.s.movements, stored)
	r.s.ops = append(r.s.ops, fmt.Sprintf("insert movement %s %d for %d", m.Kind, m.Quantity, m.ProductID))
	return newID, nil
}

func (r fakeMovements) Update(context.Context, *movement.Movement) error {
	return apperror.NewNotImplemented("movement", "update")
}

func (r fakeMovements) Delete(context.Context, *movement.Movement) error {
	return apperror.NewNotImplemented("movement", "delete")
}

// fakeTx runs fn directly and counts transactions.
type fakeTx struct{ calls int }

func (t *fakeTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}
