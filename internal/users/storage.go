package users

import "errors"

// ErrNotFound is returned when a user with the given ID is not found.
var ErrNotFound = errors.New("user not found")

// Storage is the main interface for our user storage layer.
type Storage interface {
	Append(user *User) error
	Read(id string) (*User, error)
	GetAll() []*User
}

// LocalStorage provides an in-memory, insertion ordered list of users.
type LocalStorage struct {
	users []*User
}

// NewLocalStorage instantiates a new empty LocalStorage for users.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

// Append adds the user at the end of the list.
func (l *LocalStorage) Append(user *User) error {
	l.users = append(l.users, user)
	return nil
}

// Read returns the first user with the given ID.
// Returns ErrNotFound if the user is not found.
func (l *LocalStorage) Read(id string) (*User, error) {
	for _, u := range l.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

// GetAll returns the users in insertion order.
func (l *LocalStorage) GetAll() []*User {
	users := make([]*User, len(l.users))
	copy(users, l.users)
	return users
}
