package sales

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"plate_sales/internal/plates"
	"plate_sales/internal/users"
)

// ErrInvalidInput is returned when a sale is recorded without a plate or a user.
var ErrInvalidInput = errors.New("invalid sale input")

// Service is the sales ledger.
type Service struct {
	storage Storage
	logger  *zap.Logger
	now     func() time.Time
}

// Statistics aggregates every recorded sale.
type Statistics struct {
	TotalSales   int             `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Service{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

type recordOptions struct {
	date time.Time
}

// RecordOption customizes RecordSale.
type RecordOption func(*recordOptions)

// WithDate sets the sale timestamp instead of the current time.
func WithDate(date time.Time) RecordOption {
	return func(o *recordOptions) {
		o.date = date
	}
}

// RecordSale appends a sale of plate to user and returns it. The sale ID is
// the number of recorded sales plus one. Plate and user are not modified.
func (s *Service) RecordSale(plate *plates.Plate, user *users.User, opts ...RecordOption) (*Sale, error) {
	if plate == nil {
		return nil, fmt.Errorf("%w: nil plate", ErrInvalidInput)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: nil user", ErrInvalidInput)
	}

	var o recordOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.date.IsZero() {
		o.date = s.now()
	}

	sale := &Sale{
		ID:          s.storage.Count() + 1,
		Plate:       plate,
		User:        user,
		PlateNumber: plate.Number,
		Price:       plate.Price,
		Date:        o.date,
	}

	if err := s.storage.Append(sale); err != nil {
		s.logger.Error("failed to save sale", zap.Int("sale_id", sale.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	s.logger.Info("sale recorded",
		zap.Int("sale_id", sale.ID),
		zap.String("plate_id", plate.ID),
		zap.String("user_id", user.ID),
		zap.Stringer("price", sale.Price),
	)
	return sale, nil
}

// Statistics returns the number of sales and the revenue from their
// recorded prices.
func (s *Service) Statistics() Statistics {
	stats := Statistics{TotalRevenue: decimal.Zero}
	for _, sale := range s.storage.GetAll() {
		stats.TotalSales++
		stats.TotalRevenue = stats.TotalRevenue.Add(sale.Price)
	}

	s.logger.Debug("sales statistics computed", zap.Any("statistics", stats))
	return stats
}

// ByUser returns the sales of the given user in the order they were recorded.
func (s *Service) ByUser(userID string) []*Sale {
	filtered := make([]*Sale, 0)
	for _, sale := range s.storage.GetAll() {
		if sale.User.ID != userID {
			continue
		}
		filtered = append(filtered, sale)
	}
	return filtered
}

// FindByID returns ErrNotFound if no sale has the given ID.
func (s *Service) FindByID(id int) (*Sale, error) {
	return s.storage.Read(id)
}

// List returns every sale in the order it was recorded.
func (s *Service) List() []*Sale {
	return s.storage.GetAll()
}
