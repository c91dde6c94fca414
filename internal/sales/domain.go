package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"plate_sales/internal/plates"
	"plate_sales/internal/users"
)

// Sale represents one plate sold to one user. Sales are never modified
// after they are recorded.
type Sale struct {
	ID    int           `json:"id"`
	Plate *plates.Plate `json:"plate"`
	User  *users.User   `json:"-"`

	// PlateNumber and Price are copied from the plate at the time of the sale.
	PlateNumber string          `json:"plate_number"`
	Price       decimal.Decimal `json:"price"`
	Date        time.Time       `json:"date"`
}

// Details is the printable summary of a sale.
type Details struct {
	SaleID      int       `json:"sale_id"`
	PlateNumber string    `json:"license_plate"`
	UserName    string    `json:"user"`
	Date        time.Time `json:"date"`
}

// Details summarizes the sale with the plate number it was sold under.
func (s *Sale) Details() Details {
	return Details{
		SaleID:      s.ID,
		PlateNumber: s.PlateNumber,
		UserName:    s.User.Name,
		Date:        s.Date,
	}
}
