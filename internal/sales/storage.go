package sales

import "errors"

// ErrNotFound is returned when a sale with the given ID is not found.
var ErrNotFound = errors.New("sale not found")

// ErrInvalidID is returned when trying to store a sale out of sequence.
var ErrInvalidID = errors.New("invalid sale ID")

// Storage is the main interface for our sales storage layer.
type Storage interface {
	Append(sale *Sale) error
	Read(id int) (*Sale, error)
	Count() int
	GetAll() []*Sale
}

// LocalStorage provides an in-memory, append-only list of sales.
type LocalStorage struct {
	sales []*Sale
}

// NewLocalStorage instantiates a new empty LocalStorage for sales.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

// Append returns ErrInvalidID unless the sale carries the next sequential ID.
func (l *LocalStorage) Append(sale *Sale) error {
	if sale.ID != len(l.sales)+1 {
		return ErrInvalidID
	}
	l.sales = append(l.sales, sale)
	return nil
}

// Read retrieves a sale by ID.
// Returns ErrNotFound if the sale is not found.
func (l *LocalStorage) Read(id int) (*Sale, error) {
	for _, s := range l.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

// Count returns the number of stored sales.
func (l *LocalStorage) Count() int {
	return len(l.sales)
}

// GetAll retrieves all sales in the order they were recorded.
func (l *LocalStorage) GetAll() []*Sale {
	sales := make([]*Sale, len(l.sales))
	copy(sales, l.sales)
	return sales
}
