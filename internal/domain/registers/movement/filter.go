package movement

import "stockroom/internal/core/id"

// Filter narrows a movement listing. Results are always newest first.
type Filter struct {
	ID        *id.ID
	ProductID *id.ID
}

// ByProduct returns a filter for one product's ledger.
func ByProduct(productID id.ID) *Filter {
	return &Filter{ProductID: id.Ptr(productID)}
}
