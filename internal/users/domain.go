package users

import "plate_sales/internal/plates"

// User represents a person who can register or buy plates.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`

	// Purchases holds the plates bought by the user, oldest first.
	Purchases []*plates.Plate `json:"purchases"`
}

// New returns a user with no purchases.
func New(id, name, address string) *User {
	return &User{
		ID:      id,
		Name:    name,
		Address: address,
	}
}

// AddPurchase appends plate to the user's purchases.
func (u *User) AddPurchase(plate *plates.Plate) {
	u.Purchases = append(u.Purchases, plate)
}

// PurchaseHistory returns a copy of the user's purchases in purchase order.
func (u *User) PurchaseHistory() []*plates.Plate {
	history := make([]*plates.Plate, len(u.Purchases))
	copy(history, u.Purchases)
	return history
}

// ProfilePatch holds the fields of a profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	Name    *string
	Address *string
}
