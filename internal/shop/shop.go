// Package shop ties the plate registry, the user registry and the sales
// ledger together and tracks the session user.
package shop

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"plate_sales/internal/plates"
	"plate_sales/internal/sales"
	"plate_sales/internal/users"
)

var (
	ErrPlateNotFound     = errors.New("plate does not exist")
	ErrPlateNotAvailable = errors.New("plate is not available")
	ErrBuyerNotFound     = errors.New("buyer not found")
	ErrNoCurrentUser     = errors.New("no registered session user")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrInvalidInput      = errors.New("invalid input")
)

// BuyerMode selects who a plate is sold to.
type BuyerMode int

const (
	// BuyerSelf sells to the session user.
	BuyerSelf BuyerMode = iota + 1
	// BuyerExisting sells to a registered user looked up by ID.
	BuyerExisting
	// BuyerNew creates a user and sells to it.
	BuyerNew
)

// Buyer describes the target of a sale. ID is used by BuyerExisting and
// BuyerNew, Name and Address only by BuyerNew.
type Buyer struct {
	Mode    BuyerMode
	ID      string
	Name    string
	Address string
}

// Shop is the application context. It is created once at startup and
// owns every registry for the lifetime of the process.
type Shop struct {
	Plates *plates.Service
	Users  *users.Service
	Sales  *sales.Service

	current *users.User
	logger  *zap.Logger
}

// New creates a Shop on top of the given services.
func New(plateSvc *plates.Service, userSvc *users.Service, salesSvc *sales.Service, logger *zap.Logger) *Shop {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Shop{
		Plates: plateSvc,
		Users:  userSvc,
		Sales:  salesSvc,
		logger: logger,
	}
}

// NewInMemory creates a Shop with empty in-memory registries.
func NewInMemory(logger *zap.Logger) *Shop {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return New(
		plates.NewService(plates.NewLocalStorage(), logger.Named("plates")),
		users.NewService(users.NewLocalStorage(), logger.Named("users")),
		sales.NewService(sales.NewLocalStorage(), logger.Named("sales")),
		logger.Named("shop"),
	)
}

// Register creates a user and makes it the session user.
func (s *Shop) Register(id, name, address string) (*users.User, error) {
	if s.current != nil {
		return nil, ErrAlreadyRegistered
	}

	user := users.New(id, name, address)
	if err := s.Users.Add(user); err != nil {
		return nil, err
	}
	s.current = user

	s.logger.Info("session user registered", zap.String("user_id", user.ID))
	return user, nil
}

// CurrentUser returns ErrNoCurrentUser until Register succeeds.
func (s *Shop) CurrentUser() (*users.User, error) {
	if s.current == nil {
		return nil, ErrNoCurrentUser
	}
	return s.current, nil
}

// CreateUser adds a user without changing the session user.
func (s *Shop) CreateUser(id, name, address string) (*users.User, error) {
	user := users.New(id, name, address)
	if err := s.Users.Add(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile edits the session user.
func (s *Shop) UpdateProfile(patch users.ProfilePatch) (*users.User, error) {
	if s.current == nil {
		return nil, ErrNoCurrentUser
	}
	return s.Users.UpdateProfile(s.current.ID, patch)
}

// Sell sells the plate with the given ID to buyer. Every check runs before
// the first write, so a failed sale leaves the ledger, the plate and the
// users unchanged.
func (s *Shop) Sell(plateID string, buyer Buyer) (*sales.Sale, error) {
	plate, err := s.Plates.FindByID(plateID)
	if err != nil {
		s.logger.Warn("sale rejected", zap.String("plate_id", plateID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPlateNotFound, err)
	}
	if !plate.IsAvailable() {
		s.logger.Warn("sale rejected", zap.String("plate_id", plateID), zap.String("status", string(plate.Status)))
		return nil, ErrPlateNotAvailable
	}

	user, err := s.resolveBuyer(buyer)
	if err != nil {
		s.logger.Warn("sale rejected", zap.String("plate_id", plateID), zap.Error(err))
		return nil, err
	}

	sale, err := s.Sales.RecordSale(plate, user)
	if err != nil {
		return nil, err
	}
	if err := s.Plates.MarkSold(plate.ID); err != nil {
		s.logger.Error("sale recorded but plate not marked sold", zap.Int("sale_id", sale.ID), zap.Error(err))
		return nil, err
	}
	if err := s.Users.AddPurchase(user.ID, plate); err != nil {
		s.logger.Error("sale recorded but purchase not added", zap.Int("sale_id", sale.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("plate sold",
		zap.Int("sale_id", sale.ID),
		zap.String("plate_id", plate.ID),
		zap.String("user_id", user.ID),
	)
	return sale, nil
}

// resolveBuyer is the only step of Sell that may write, and only for
// BuyerNew, after which nothing else can fail.
func (s *Shop) resolveBuyer(buyer Buyer) (*users.User, error) {
	switch buyer.Mode {
	case BuyerSelf:
		return s.CurrentUser()
	case BuyerExisting:
		user, err := s.Users.FindByID(buyer.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuyerNotFound, err)
		}
		return user, nil
	case BuyerNew:
		return s.CreateUser(buyer.ID, buyer.Name, buyer.Address)
	default:
		return nil, fmt.Errorf("%w: unknown buyer mode %d", ErrInvalidInput, buyer.Mode)
	}
}

// Statistics returns the sales count and revenue of the ledger.
func (s *Shop) Statistics() sales.Statistics {
	return s.Sales.Statistics()
}

// SalesByUser returns the sales of the user with the given ID.
func (s *Shop) SalesByUser(userID string) []*sales.Sale {
	return s.Sales.ByUser(userID)
}
