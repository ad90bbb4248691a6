package product

import (
	"stockroom/internal/domain"
)

// Repository defines the interface for Product persistence.
//
// Select treats extra as "critical only". Delete removes the product's
// movements before the product itself.
type Repository interface {
	domain.Repository[*Product, Filter]
}
