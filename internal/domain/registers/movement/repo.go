package movement

import (
	"stockroom/internal/domain"
)

// Repository defines the interface for Movement persistence.
// Update and Delete are not supported and report NOT_IMPLEMENTED.
type Repository interface {
	domain.Repository[*Movement, Filter]
}
