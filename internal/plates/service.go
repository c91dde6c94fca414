package plates

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidInput is returned for empty required fields and negative prices.
var ErrInvalidInput = errors.New("invalid plate input")

// ErrInvalidTransition is returned when a sold plate would become available again.
var ErrInvalidTransition = errors.New("invalid status transition")

// Service provides plate registry operations on a Storage backend.
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

// Add registers a new plate.
func (s *Service) Add(plate *Plate) error {
	if plate == nil {
		return fmt.Errorf("%w: nil plate", ErrInvalidInput)
	}
	if strings.TrimSpace(plate.ID) == "" {
		return fmt.Errorf("%w: empty plate ID", ErrInvalidInput)
	}
	if strings.TrimSpace(plate.Number) == "" {
		return fmt.Errorf("%w: empty plate number", ErrInvalidInput)
	}
	if plate.Price.IsNegative() {
		return fmt.Errorf("%w: negative price", ErrInvalidInput)
	}
	if plate.Status == "" {
		plate.Status = StatusAvailable
	}
	if _, err := ParseStatus(string(plate.Status)); err != nil {
		return err
	}

	if err := s.storage.Create(plate); err != nil {
		s.logger.Warn("failed to add plate", zap.String("plate_id", plate.ID), zap.Error(err))
		return err
	}

	s.logger.Info("plate added",
		zap.String("plate_id", plate.ID),
		zap.String("number", plate.Number),
		zap.Stringer("price", plate.Price),
	)
	return nil
}

// Delete removes the plate with the given ID. Unknown IDs are ignored.
func (s *Service) Delete(id string) bool {
	removed := s.storage.Delete(id)
	s.logger.Info("plate delete", zap.String("plate_id", id), zap.Bool("removed", removed))
	return removed
}

// Edit applies the supplied fields of patch to the plate with the given ID.
// Nothing is written unless every supplied field is valid.
func (s *Service) Edit(id string, patch Patch) (*Plate, error) {
	plate, err := s.storage.Read(id)
	if err != nil {
		return nil, err
	}

	if patch.Number != nil && strings.TrimSpace(*patch.Number) == "" {
		return nil, fmt.Errorf("%w: empty plate number", ErrInvalidInput)
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, fmt.Errorf("%w: negative price", ErrInvalidInput)
	}
	if patch.Status != nil {
		if _, err := ParseStatus(string(*patch.Status)); err != nil {
			return nil, err
		}
		if plate.Status == StatusSold && *patch.Status != StatusSold {
			return nil, ErrInvalidTransition
		}
	}

	if patch.Number != nil {
		plate.Number = *patch.Number
	}
	if patch.Price != nil {
		plate.Price = *patch.Price
	}
	if patch.Status != nil {
		plate.Status = *patch.Status
	}

	s.logger.Info("plate edited", zap.String("plate_id", id), zap.Stringer("plate", plate))
	return plate, nil
}

// MarkSold flags the plate with the given ID as sold.
func (s *Service) MarkSold(id string) error {
	plate, err := s.storage.Read(id)
	if err != nil {
		return err
	}
	if err := plate.MarkSold(); err != nil {
		return fmt.Errorf("plate %s: %w", id, err)
	}
	return nil
}

// FindByID returns ErrNotFound if no plate has the given ID.
func (s *Service) FindByID(id string) (*Plate, error) {
	return s.storage.Read(id)
}

// List returns every plate in registry order.
func (s *Service) List() []*Plate {
	return s.storage.GetAll()
}

// ListAvailable yields the available plates in registry order. The
// sequence reads the registry each time it is ranged over.
func (s *Service) ListAvailable() iter.Seq[*Plate] {
	return func(yield func(*Plate) bool) {
		for _, p := range s.storage.GetAll() {
			if !p.IsAvailable() {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}
