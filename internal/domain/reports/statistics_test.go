package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/id"
	"stockroom/internal/domain/catalogs/product"
	"stockroom/internal/domain/registers/movement"
)

func mv(productID id.ID, kind movement.Kind, qty int, date time.Time) *movement.Movement {
	return movement.NewMovement(productID, kind, qty, date, "")
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDailyByMonth(t *testing.T) {
	ref := date(2024, time.March, 20)
	movements := []*movement.Movement{
		mv(1, movement.KindInbound, 10, date(2024, time.February, 5)),
		mv(2, movement.KindOutbound, 4, date(2024, time.February, 5)),
		mv(1, movement.KindInbound, 1, date(2024, time.February, 29)),
		mv(1, movement.KindInbound, 100, date(2024, time.March, 5)),
		mv(1, movement.KindOutbound, 100, date(2023, time.February, 5)),
		{ProductID: 1, Kind: "TRANSFER", Quantity: 50, Date: date(2024, time.February, 6)},
	}

	got := DailyByMonth(ref, movements)

	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, time.February, got.Month)
	require.Len(t, got.Labels, 29)
	require.Len(t, got.Inbound, 29)
	require.Len(t, got.Outbound, 29)
	assert.Equal(t, "1", got.Labels[0])
	assert.Equal(t, "29", got.Labels[28])

	assert.Equal(t, 10, got.Inbound[4])
	assert.Equal(t, 4, got.Outbound[4])
	assert.Equal(t, 1, got.Inbound[28])
	assert.Equal(t, 0, got.Inbound[5])

	total := 0
	for i := range got.Inbound {
		total += got.Inbound[i] + got.Outbound[i]
	}
	assert.Equal(t, 15, total)
}

func TestDailyByMonth_YearBoundary(t *testing.T) {
	got := DailyByMonth(date(2024, time.January, 31), []*movement.Movement{
		mv(1, movement.KindInbound, 3, date(2023, time.December, 31)),
	})

	assert.Equal(t, 2023, got.Year)
	assert.Equal(t, time.December, got.Month)
	require.Len(t, got.Inbound, 31)
	assert.Equal(t, 3, got.Inbound[30])
}

func TestDailyByMonth_MonthEndReference(t *testing.T) {
	got := DailyByMonth(date(2023, time.March, 31), nil)
	assert.Equal(t, time.February, got.Month)
	assert.Len(t, got.Labels, 28)
}

func TestPerProduct(t *testing.T) {
	a := &product.Product{Name: "A"}
	a.ID = 1
	b := &product.Product{Name: "B"}
	b.ID = 2

	movements := []*movement.Movement{
		mv(1, movement.KindInbound, 15, date(2024, time.January, 1)),
		mv(1, movement.KindInbound, 5, date(2024, time.February, 1)),
		mv(1, movement.KindOutbound, 5, date(2024, time.February, 2)),
		mv(3, movement.KindInbound, 99, date(2024, time.February, 2)),
	}

	got := PerProduct([]*product.Product{a, b}, movements)

	assert.Equal(t, []string{"A", "B"}, got.Labels)
	assert.Equal(t, []int{20, 0}, got.Inbound)
	assert.Equal(t, []int{5, 0}, got.Outbound)
}

func TestPerProduct_SharedIDGetsFullTotals(t *testing.T) {
	a := &product.Product{Name: "A"}
	a.ID = 1
	aCopy := &product.Product{Name: "A"}
	aCopy.ID = 1

	got := PerProduct([]*product.Product{a, aCopy}, []*movement.Movement{
		mv(1, movement.KindInbound, 20, date(2024, time.February, 1)),
		mv(1, movement.KindOutbound, 3, date(2024, time.February, 2)),
	})

	assert.Equal(t, []int{20, 20}, got.Inbound)
	assert.Equal(t, []int{3, 3}, got.Outbound)
}

func TestPerProduct_Empty(t *testing.T) {
	got := PerProduct(nil, nil)
	assert.Empty(t, got.Labels)
	assert.Empty(t, got.Inbound)
}
