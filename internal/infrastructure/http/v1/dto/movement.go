package dto

import (
	"strings"
	"time"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/internal/domain/registers/movement"
)

// CreateMovementRequest is the request body for recording a movement.
// An empty Date is left zero and the service dates the movement today.
type CreateMovementRequest struct {
	ProductID int64  `json:"productId" binding:"required,gt=0"`
	Kind      string `json:"kind" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Date      string `json:"date"`
	Note      string `json:"note" binding:"max=500"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateMovementRequest) ToEntity() (*movement.Movement, error) {
	kind, err := movement.ParseKind(r.Kind)
	if err != nil {
		return nil, apperror.NewFieldValidation("kind", err.Error())
	}

	var date time.Time
	if strings.TrimSpace(r.Date) != "" {
		date, err = time.Parse(time.DateOnly, strings.TrimSpace(r.Date))
		if err != nil {
			return nil, apperror.NewFieldValidation("date", "expected YYYY-MM-DD").WithDetail("value", r.Date)
		}
	}

	return movement.NewMovement(id.ID(r.ProductID), kind, r.Quantity, date, strings.TrimSpace(r.Note)), nil
}

// MovementListRequest holds the query parameters of the movement list.
type MovementListRequest struct {
	ProductID *int64 `form:"productId" binding:"omitempty,gt=0"`
}

// ToFilter converts query parameters to a repository filter.
func (r *MovementListRequest) ToFilter() *movement.Filter {
	if r.ProductID == nil {
		return nil
	}
	return movement.ByProduct(id.ID(*r.ProductID))
}

// MovementResponse is the response for a movement.
type MovementResponse struct {
	ID        id.ID         `json:"id"`
	ProductID id.ID         `json:"productId"`
	Kind      movement.Kind `json:"kind"`
	Quantity  int           `json:"quantity"`
	Date      string        `json:"date"`
	Note      string        `json:"note"`
	Initial   bool          `json:"initial"`
}

// FromMovement converts domain entity to DTO.
func FromMovement(m *movement.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		Date:      m.Date.Format(time.DateOnly),
		Note:      m.Note,
		Initial:   m.IsInitialStock(),
	}
}

// RecordMovementResponse returns the new movement id and the product's
// resulting stock.
type RecordMovementResponse struct {
	ID      id.ID           `json:"id"`
	Product ProductResponse `json:"product"`
}
