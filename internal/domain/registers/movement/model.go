// Package movement provides the stock movement ledger. Movements are
// append-only: each one records an inbound or outbound change for one product.
package movement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/id"
)

// Kind is the direction of a movement.
type Kind string

const (
	KindInbound  Kind = "INBOUND"
	KindOutbound Kind = "OUTBOUND"
)

// InitialStockNote marks the synthetic movement written when a product is created.
const InitialStockNote = "initial stock"

// legacyInitialStockNote is the same marker as written by older clients.
const legacyInitialStockNote = "Carico iniziale"

// ParseKind accepts the canonical names and the legacy CARICO/SCARICO tokens,
// case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INBOUND", "CARICO":
		return KindInbound, nil
	case "OUTBOUND", "SCARICO":
		return KindOutbound, nil
	}
	return "", fmt.Errorf("unknown movement kind %q", s)
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	return k == KindInbound || k == KindOutbound
}

// Movement is one ledger entry.
type Movement struct {
	entity.BaseEntity

	ProductID id.ID `db:"product_id" json:"productId"`
	Kind      Kind  `db:"kind" json:"kind"`
	Quantity  int   `db:"quantity" json:"quantity"`

	// Date has no time component (UTC midnight)
	Date time.Time `db:"date" json:"date"`
	Note string    `db:"note" json:"note"`
}

// NewMovement creates an unsaved movement dated on the calendar day of date.
func NewMovement(productID id.ID, kind Kind, quantity int, date time.Time, note string) *Movement {
	return &Movement{
		BaseEntity: entity.NewBaseEntity(),
		ProductID:  productID,
		Kind:       kind,
		Quantity:   quantity,
		Date:       DateOf(date),
		Note:       note,
	}
}

// NewInitialStock creates the movement that opens a new product's ledger.
func NewInitialStock(productID id.ID, quantity int, date time.Time) *Movement {
	return NewMovement(productID, KindInbound, quantity, date, InitialStockNote)
}

// DateOf truncates t to its calendar day, expressed as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsInitialStock reports whether the note carries the initial-stock marker.
func (m *Movement) IsInitialStock() bool {
	note := strings.TrimSpace(m.Note)
	return strings.EqualFold(note, InitialStockNote) || strings.EqualFold(note, legacyInitialStockNote)
}

// Delta returns the signed change this movement applies to the product's stock.
func (m *Movement) Delta() (int, error) {
	switch m.Kind {
	case KindInbound:
		return m.Quantity, nil
	case KindOutbound:
		return -m.Quantity, nil
	}
	return 0, apperror.NewFieldValidation("kind", "unknown movement kind").
		WithDetail("value", string(m.Kind))
}

// Validate implements entity.Validatable interface.
func (m *Movement) Validate(ctx context.Context) error {
	if !m.ProductID.IsAssigned() {
		return apperror.NewFieldValidation("productId", "movement must reference a product").
			WithDetail("value", m.ProductID)
	}
	if strings.TrimSpace(string(m.Kind)) == "" {
		return apperror.NewFieldValidation("kind", "movement kind is required")
	}
	if !m.Kind.IsValid() {
		return apperror.NewFieldValidation("kind", "unknown movement kind").
			WithDetail("value", string(m.Kind))
	}
	if m.Quantity < 0 {
		return apperror.NewFieldValidation("quantity", "quantity cannot be negative").
			WithDetail("value", m.Quantity)
	}
	if m.Quantity == 0 && !m.IsInitialStock() {
		return apperror.NewFieldValidation("quantity", "quantity must be greater than zero")
	}
	if m.Date.IsZero() {
		return apperror.NewFieldValidation("date", "date is required")
	}
	return nil
}

// ValidateAt additionally rejects dates after the calendar day of now.
func (m *Movement) ValidateAt(ctx context.Context, now time.Time) error {
	if err := m.Validate(ctx); err != nil {
		return err
	}
	if DateOf(m.Date).After(DateOf(now)) {
		return apperror.NewFieldValidation("date", "date cannot be in the future").
			WithDetail("value", m.Date.Format(time.DateOnly))
	}
	return nil
}
