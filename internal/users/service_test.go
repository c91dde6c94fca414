package users

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"plate_sales/internal/plates"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewLocalStorage(), zaptest.NewLogger(t))
}

func TestAddAndFind(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Add(New("u1", "Alice", "1 Main St")))
	require.NoError(t, svc.Add(New("u2", "Bob", "")))

	u, err := svc.FindByID("u2")
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)
	assert.Empty(t, u.Purchases)

	_, err = svc.FindByID("nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	t.Run("duplicate ID is rejected", func(t *testing.T) {
		err := svc.Add(New("u1", "Impostor", ""))
		assert.ErrorIs(t, err, ErrDuplicateID)

		u, err := svc.FindByID("u1")
		require.NoError(t, err)
		assert.Equal(t, "Alice", u.Name)
	})

	t.Run("invalid input", func(t *testing.T) {
		assert.ErrorIs(t, svc.Add(nil), ErrInvalidInput)
		assert.ErrorIs(t, svc.Add(New("", "Name", "")), ErrInvalidInput)
		assert.ErrorIs(t, svc.Add(New("u3", "  ", "")), ErrInvalidInput)
	})
}

func TestList(t *testing.T) {
	svc := newTestService(t)
	assert.Empty(t, svc.List())

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, svc.Add(New(id, "user "+id, "")))
	}

	var ids []string
	for _, u := range svc.List() {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids, "users are listed in registration order")

	t.Run("returned slice is a copy", func(t *testing.T) {
		list := svc.List()
		list[0] = nil
		assert.NotNil(t, svc.List()[0])
	})
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Add(New("u1", "Alice", "1 Main St")))

	name := "Alice Smith"
	u, err := svc.UpdateProfile("u1", ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", u.Name)
	assert.Equal(t, "1 Main St", u.Address)

	address := "2 Side Rd"
	u, err = svc.UpdateProfile("u1", ProfilePatch{Address: &address})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", u.Name)
	assert.Equal(t, "2 Side Rd", u.Address)

	empty := ""
	_, err = svc.UpdateProfile("u1", ProfilePatch{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateProfile("nobody", ProfilePatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddPurchase(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Add(New("u1", "Alice", "")))

	p1 := plates.New("p1", "AAA-111", decimal.NewFromInt(100))
	p2 := plates.New("p2", "BBB-222", decimal.NewFromInt(200))
	require.NoError(t, svc.AddPurchase("u1", p1))
	require.NoError(t, svc.AddPurchase("u1", p2))

	u, err := svc.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, []*plates.Plate{p1, p2}, u.PurchaseHistory())

	history := u.PurchaseHistory()
	history[0] = nil
	assert.Same(t, p1, u.Purchases[0], "history is a copy")

	assert.ErrorIs(t, svc.AddPurchase("nobody", p1), ErrNotFound)
}
