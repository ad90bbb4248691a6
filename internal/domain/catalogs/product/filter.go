package product

import (
	"strings"

	"stockroom/internal/core/entity"
	"stockroom/internal/core/id"
	"stockroom/internal/core/types"
)

// Filter selects products. A nil field leaves that column unconstrained, so
// zero quantities and zero prices can be matched exactly.
type Filter struct {
	// Name and Description match by prefix
	Name        *string
	Description *string

	Quantity      *int
	MinStock      *int
	PurchasePrice *types.Money
	SalePrice     *types.Money

	ID *id.ID
}

// ByID returns a filter matching a single product.
func ByID(productID id.ID) *Filter {
	return &Filter{ID: id.Ptr(productID)}
}

// FilterFromPrototype converts a sentinel-style prototype into a Filter:
// blank strings, -1 counters, non-positive prices and unassigned ids mean
// "no constraint". A nil prototype yields an empty filter.
func FilterFromPrototype(p *Product) *Filter {
	f := &Filter{}
	if p == nil {
		return f
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		f.Name = &name
	}
	if desc := strings.TrimSpace(p.Description); desc != "" {
		f.Description = &desc
	}
	if p.Quantity > -1 {
		q := p.Quantity
		f.Quantity = &q
	}
	if p.MinStock > -1 {
		m := p.MinStock
		f.MinStock = &m
	}
	if p.PurchasePrice.IsPositive() {
		f.PurchasePrice = types.MoneyPtr(p.PurchasePrice)
	}
	if p.SalePrice.IsPositive() {
		f.SalePrice = types.MoneyPtr(p.SalePrice)
	}
	if p.ID.IsAssigned() {
		f.ID = id.Ptr(p.ID)
	}
	return f
}

// SearchPrototype is the all-unconstrained prototype.
func SearchPrototype() *Product {
	return &Product{
		BaseEntity:    entity.NewBaseEntity(),
		Quantity:      -1,
		MinStock:      -1,
		PurchasePrice: types.Zero(),
		SalePrice:     types.Zero(),
	}
}
