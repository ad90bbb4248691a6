// Package product provides the Product catalog: inventory items with a stock
// level, a reorder threshold and two prices.
package product

import (
	"context"
	"strings"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/types"
)

// Product is an inventory item.
type Product struct {
	entity.BaseEntity

	// Name is unique across the catalog
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`

	// Quantity is the stock on hand
	Quantity int `db:"quantity" json:"quantity"`

	// MinStock is the reorder threshold
	MinStock int `db:"min_stock" json:"minStock"`

	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`
	SalePrice     types.Money `db:"sale_price" json:"salePrice"`
}

// NewProduct creates an unsaved product.
func NewProduct(name, description string, quantity, minStock int, purchase, sale types.Money) *Product {
	return &Product{
		BaseEntity:    entity.NewBaseEntity(),
		Name:          name,
		Description:   description,
		Quantity:      quantity,
		MinStock:      minStock,
		PurchasePrice: purchase,
		SalePrice:     sale,
	}
}

// IsCritical reports whether stock is at or below the reorder threshold.
func (p *Product) IsCritical() bool {
	return p.Quantity <= p.MinStock
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return apperror.NewFieldValidation("description", "description is required")
	}
	if p.Quantity < 0 {
		return apperror.NewFieldValidation("quantity", "quantity cannot be negative").
			WithDetail("value", p.Quantity)
	}
	if p.MinStock < 0 {
		return apperror.NewFieldValidation("minStock", "minimum stock cannot be negative").
			WithDetail("value", p.MinStock)
	}
	if err := validatePrice("purchasePrice", "purchase price", p.PurchasePrice); err != nil {
		return err
	}
	return validatePrice("salePrice", "sale price", p.SalePrice)
}

// Prices are stored as NUMERIC(12,2).
const priceScale = 2

var maxPrice = types.MustMoney("9999999999.99")

func validatePrice(field, label string, m types.Money) error {
	if m.IsNegative() {
		return apperror.NewFieldValidation(field, label+" cannot be negative")
	}
	if m.Exponent() < -priceScale && !m.Equal(m.Truncate(priceScale)) {
		return apperror.NewFieldValidation(field, label+" has more than two decimals").
			WithDetail("value", m.String())
	}
	if m.GreaterThan(maxPrice) {
		return apperror.NewFieldValidation(field, label+" is too large").
			WithDetail("value", m.String()).
			WithDetail("max", maxPrice.String())
	}
	return nil
}
