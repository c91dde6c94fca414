package users

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"plate_sales/internal/plates"
)

var (
	// ErrDuplicateID is returned when adding a user whose ID is already registered.
	ErrDuplicateID = errors.New("duplicate user ID")
	// ErrInvalidInput is returned for empty required fields.
	ErrInvalidInput = errors.New("invalid user input")
)

// Service provides user registry operations on a Storage backend.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Add registers a user. IDs are unique across the registry.
func (s *Service) Add(user *User) error {
	if user == nil {
		return fmt.Errorf("%w: nil user", ErrInvalidInput)
	}
	if strings.TrimSpace(user.ID) == "" {
		return fmt.Errorf("%w: empty user ID", ErrInvalidInput)
	}
	if strings.TrimSpace(user.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidInput)
	}
	if _, err := s.storage.Read(user.ID); err == nil {
		s.logger.Warn("user already exists", zap.String("user_id", user.ID))
		return ErrDuplicateID
	}

	if err := s.storage.Append(user); err != nil {
		s.logger.Error("failed to save user", zap.String("user_id", user.ID), zap.Error(err))
		return fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user added", zap.String("user_id", user.ID), zap.String("name", user.Name))
	return nil
}

// FindByID returns the first user with the given ID, or ErrNotFound.
func (s *Service) FindByID(id string) (*User, error) {
	return s.storage.Read(id)
}

// List returns all users in registration order.
func (s *Service) List() []*User {
	return s.storage.GetAll()
}

// UpdateProfile overwrites the supplied profile fields of the user.
func (s *Service) UpdateProfile(id string, patch ProfilePatch) (*User, error) {
	user, err := s.storage.Read(id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidInput)
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}

	s.logger.Info("profile updated", zap.String("user_id", id))
	return user, nil
}

// AddPurchase appends plate to the purchases of the user with the given ID.
func (s *Service) AddPurchase(id string, plate *plates.Plate) error {
	user, err := s.storage.Read(id)
	if err != nil {
		return err
	}
	user.AddPurchase(plate)

	s.logger.Debug("purchase added",
		zap.String("user_id", id),
		zap.String("plate_id", plate.ID),
		zap.Int("purchases", len(user.Purchases)),
	)
	return nil
}
