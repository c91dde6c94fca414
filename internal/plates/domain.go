package plates

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Status is the availability of a plate.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
)

// ParseStatus converts operator input into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusSold:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
}

// Plate represents a sellable license plate.
type Plate struct {
	ID     string          `json:"id"`
	Number string          `json:"number"`
	Price  decimal.Decimal `json:"price"`
	Status Status          `json:"status"`
}

// New returns an available plate.
func New(id, number string, price decimal.Decimal) *Plate {
	return &Plate{
		ID:     id,
		Number: number,
		Price:  price,
		Status: StatusAvailable,
	}
}

// IsAvailable reports whether the plate can still be sold.
func (p *Plate) IsAvailable() bool {
	return p.Status == StatusAvailable
}

// MarkSold moves the plate to StatusSold. A sold plate can never be sold again.
func (p *Plate) MarkSold() error {
	if !p.IsAvailable() {
		return ErrInvalidTransition
	}
	p.Status = StatusSold
	return nil
}

// String renders the plate for listings and logs.
func (p *Plate) String() string {
	return fmt.Sprintf("ID: %s, Number: %s, Price: $%s, Status: %s", p.ID, p.Number, p.Price.StringFixed(2), p.Status)
}

// Patch holds the fields of an edit. Nil fields are left unchanged.
type Patch struct {
	Number *string
	Price  *decimal.Decimal
	Status *Status
}
