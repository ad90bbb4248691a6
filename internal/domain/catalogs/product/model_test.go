package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/core/types"
)

func validProduct() *Product {
	return NewProduct("Screwdriver", "Flat head 5mm", 10, 2, types.MustMoney("1.50"), types.MustMoney("3.90"))
}

func TestProduct_IsCritical(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		minStock int
		want     bool
	}{
		{"above threshold", 5, 2, false},
		{"at threshold", 2, 2, true},
		{"below threshold", 1, 2, true},
		{"both zero", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Quantity: tt.quantity, MinStock: tt.minStock}
			assert.Equal(t, tt.want, p.IsCritical())
		})
	}
}

func TestProduct_Validate(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, validProduct().Validate(ctx))

	tests := []struct {
		name   string
		mutate func(p *Product)
		field  string
	}{
		{"negative quantity", func(p *Product) { p.Quantity = -1 }, "quantity"},
		{"negative min stock", func(p *Product) { p.MinStock = -1 }, "minStock"},
		{"negative purchase price", func(p *Product) { p.PurchasePrice = types.MustMoney("-0.01") }, "purchasePrice"},
		{"negative sale price", func(p *Product) { p.SalePrice = types.MustMoney("-1") }, "salePrice"},
		{"purchase price with three decimals", func(p *Product) { p.PurchasePrice = types.MustMoney("1.555") }, "purchasePrice"},
		{"sale price with three decimals", func(p *Product) { p.SalePrice = types.MustMoney("3.901") }, "salePrice"},
		{"purchase price out of range", func(p *Product) { p.PurchasePrice = types.MustMoney("10000000000") }, "purchasePrice"},
		{"sale price out of range", func(p *Product) { p.SalePrice = types.MustMoney("1e10") }, "salePrice"},
		{"missing name", func(p *Product) { p.Name = "" }, "name"},
		{"blank name", func(p *Product) { p.Name = "   " }, "name"},
		{"missing description", func(p *Product) { p.Description = "" }, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)

			err := p.Validate(ctx)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestProduct_Validate_ZeroValuesAllowed(t *testing.T) {
	p := NewProduct("Washer", "M6", 0, 0, types.Zero(), types.Zero())
	assert.NoError(t, p.Validate(context.Background()))
	assert.True(t, p.IsNew())
}

func TestProduct_Validate_PriceBounds(t *testing.T) {
	ctx := context.Background()

	for _, price := range []string{"0", "1.5", "1.50", "1.500", "9999999999.99"} {
		t.Run(price, func(t *testing.T) {
			p := validProduct()
			p.PurchasePrice = types.MustMoney(price)
			p.SalePrice = types.MustMoney(price)
			assert.NoError(t, p.Validate(ctx))
		})
	}
}

func TestFilterFromPrototype(t *testing.T) {
	t.Run("nil prototype is unconstrained", func(t *testing.T) {
		assert.Equal(t, &Filter{}, FilterFromPrototype(nil))
	})

	t.Run("search prototype is unconstrained", func(t *testing.T) {
		assert.Equal(t, &Filter{}, FilterFromPrototype(SearchPrototype()))
	})

	t.Run("populated fields are kept", func(t *testing.T) {
		proto := SearchPrototype()
		proto.Name = " Scr "
		proto.Quantity = 0
		proto.SalePrice = types.MustMoney("3.90")
		proto.ID = 7

		f := FilterFromPrototype(proto)
		require.NotNil(t, f.Name)
		assert.Equal(t, "Scr", *f.Name)
		assert.Nil(t, f.Description)
		require.NotNil(t, f.Quantity)
		assert.Equal(t, 0, *f.Quantity)
		assert.Nil(t, f.MinStock)
		assert.Nil(t, f.PurchasePrice)
		require.NotNil(t, f.SalePrice)
		assert.True(t, f.SalePrice.Equal(types.MustMoney("3.9")))
		require.NotNil(t, f.ID)
		assert.Equal(t, id.ID(7), *f.ID)
	})
}
