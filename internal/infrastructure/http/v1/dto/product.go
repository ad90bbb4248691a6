package dto

import (
	"strings"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
// Quantity is the opening stock, recorded as the first movement.
type CreateProductRequest struct {
	Name          string      `json:"name" binding:"required"`
	Description   string      `json:"description" binding:"required"`
	Quantity      int         `json:"quantity" binding:"min=0"`
	MinStock      int         `json:"minStock" binding:"min=0"`
	PurchasePrice types.Money `json:"purchasePrice"`
	SalePrice     types.Money `json:"salePrice"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	return product.NewProduct(
		strings.TrimSpace(r.Name),
		strings.TrimSpace(r.Description),
		r.Quantity,
		r.MinStock,
		r.PurchasePrice,
		r.SalePrice,
	)
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	CreateProductRequest
}

// ApplyTo overwrites the editable fields of p.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Name = strings.TrimSpace(r.Name)
	p.Description = strings.TrimSpace(r.Description)
	p.Quantity = r.Quantity
	p.MinStock = r.MinStock
	p.PurchasePrice = r.PurchasePrice
	p.SalePrice = r.SalePrice
}

// ProductListRequest holds the query parameters of the product list.
// Absent parameters leave their column unconstrained, as do blank text and
// a -1 quantity or minStock.
type ProductListRequest struct {
	Name          *string `form:"name"`
	Description   *string `form:"description"`
	Quantity      *int    `form:"quantity" binding:"omitempty,min=-1"`
	MinStock      *int    `form:"minStock" binding:"omitempty,min=-1"`
	PurchasePrice *string `form:"purchasePrice"`
	SalePrice     *string `form:"salePrice"`
	ID            *int64  `form:"id" binding:"omitempty,gt=0"`
	Critical      bool    `form:"critical"`
}

// ToFilter converts query parameters to a repository filter.
func (r *ProductListRequest) ToFilter() (*product.Filter, error) {
	proto := product.SearchPrototype()
	if r.Name != nil {
		proto.Name = *r.Name
	}
	if r.Description != nil {
		proto.Description = *r.Description
	}
	if r.Quantity != nil {
		proto.Quantity = *r.Quantity
	}
	if r.MinStock != nil {
		proto.MinStock = *r.MinStock
	}
	if r.ID != nil {
		proto.ID = id.ID(*r.ID)
	}
	f := product.FilterFromPrototype(proto)

	// prices skip the prototype so that an explicit zero still matches
	var err error
	if f.PurchasePrice, err = parseMoney("purchasePrice", r.PurchasePrice); err != nil {
		return nil, err
	}
	if f.SalePrice, err = parseMoney("salePrice", r.SalePrice); err != nil {
		return nil, err
	}
	return f, nil
}

func parseMoney(field string, s *string) (*types.Money, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	m, err := types.NewMoneyFromString(strings.TrimSpace(*s))
	if err != nil {
		return nil, apperror.NewFieldValidation(field, "invalid decimal").WithDetail("value", *s)
	}
	return &m, nil
}

// --- Response DTOs ---

// ProductResponse is the response for a product.
type ProductResponse struct {
	ID            id.ID  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Quantity      int    `json:"quantity"`
	MinStock      int    `json:"minStock"`
	PurchasePrice string `json:"purchasePrice"`
	SalePrice     string `json:"salePrice"`
	Critical      bool   `json:"critical"`
}

// FromProduct converts domain entity to DTO.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Quantity:      p.Quantity,
		MinStock:      p.MinStock,
		PurchasePrice: types.FormatMoney(p.PurchasePrice),
		SalePrice:     types.FormatMoney(p.SalePrice),
		Critical:      p.IsCritical(),
	}
}
