package plates

import "errors"

// ErrNotFound is returned when a plate with the given ID is not found.
var ErrNotFound = errors.New("plate not found")

// ErrDuplicateID is returned when trying to store a plate whose ID is already taken.
var ErrDuplicateID = errors.New("duplicate plate ID")

// Storage is the main interface for our plate storage layer.
type Storage interface {
	Create(plate *Plate) error
	Read(id string) (*Plate, error)
	Delete(id string) bool
	GetAll() []*Plate
}

// LocalStorage keeps plates in memory, keyed by ID, and remembers the
// order in which they were added.
type LocalStorage struct {
	m     map[string]*Plate
	order []string
}

// NewLocalStorage instantiates a new LocalStorage for plates with an empty map.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]*Plate{},
	}
}

// Create returns ErrDuplicateID if a plate with the same ID is stored.
func (l *LocalStorage) Create(plate *Plate) error {
	if _, ok := l.m[plate.ID]; ok {
		return ErrDuplicateID
	}
	l.m[plate.ID] = plate
	l.order = append(l.order, plate.ID)
	return nil
}

// Read retrieves a plate by ID.
// Returns ErrNotFound if the plate is not found.
func (l *LocalStorage) Read(id string) (*Plate, error) {
	p, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// Delete reports whether a plate was removed.
func (l *LocalStorage) Delete(id string) bool {
	if _, ok := l.m[id]; !ok {
		return false
	}
	delete(l.m, id)
	for i, key := range l.order {
		if key == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// GetAll returns the plates in insertion order.
func (l *LocalStorage) GetAll() []*Plate {
	plates := make([]*Plate, 0, len(l.order))
	for _, id := range l.order {
		plates = append(plates, l.m[id])
	}
	return plates
}
