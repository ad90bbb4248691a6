package reports

import (
	"strconv"
	"time"

	"stockroom/internal/core/id"
	"stockroom/internal/domain/catalogs/product"
	"stockroom/internal/domain/registers/movement"
)

// PreviousMonth returns the first day of the month before ref's month.
func PreviousMonth(ref time.Time) time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -1, 0)
}

// daysIn returns the number of days of the month starting at first.
func daysIn(first time.Time) int {
	return first.AddDate(0, 1, -1).Day()
}

// DailyByMonth sums movement quantities per day of the month preceding ref.
// A zero ref means now. Movements outside that month are ignored, as are
// movements of unknown kind.
func DailyByMonth(ref time.Time, movements []*movement.Movement) MonthlySeries {
	if ref.IsZero() {
		ref = time.Now()
	}

	first := PreviousMonth(ref)
	n := daysIn(first)

	out := MonthlySeries{
		Year:   first.Year(),
		Month:  first.Month(),
		Series: newSeries(n),
	}
	for i := 0; i < n; i++ {
		out.Labels[i] = strconv.Itoa(i + 1)
	}

	for _, m := range movements {
		if m == nil {
			continue
		}
		if m.Date.Year() != out.Year || m.Date.Month() != out.Month {
			continue
		}
		day := m.Date.Day() - 1
		switch m.Kind {
		case movement.KindInbound:
			out.Inbound[day] += m.Quantity
		case movement.KindOutbound:
			out.Outbound[day] += m.Quantity
		}
	}

	return out
}

// PerProduct sums inbound and outbound quantities per product. The product
// list fixes the order and the labels; movements of products not in the list
// are ignored. Entries sharing an id each receive the full totals.
func PerProduct(products []*product.Product, movements []*movement.Movement) Series {
	out := newSeries(len(products))

	positions := make(map[id.ID][]int, len(products))
	for i, p := range products {
		out.Labels[i] = p.Name
		positions[p.ID] = append(positions[p.ID], i)
	}

	for _, m := range movements {
		if m == nil {
			continue
		}
		for _, i := range positions[m.ProductID] {
			switch m.Kind {
			case movement.KindInbound:
				out.Inbound[i] += m.Quantity
			case movement.KindOutbound:
				out.Outbound[i] += m.Quantity
			}
		}
	}

	return out
}
