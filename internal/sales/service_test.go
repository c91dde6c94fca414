package sales

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"plate_sales/internal/plates"
	"plate_sales/internal/users"
)

// TestNewService verifies the ledger initialization.
func TestNewService(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))

	require.NotNil(t, svc)
	assert.NotNil(t, svc.storage)
	assert.NotNil(t, svc.logger)
	assert.NotNil(t, svc.now)
	assert.Equal(t, 0, svc.Statistics().TotalSales)
	assert.True(t, svc.Statistics().TotalRevenue.IsZero())
}

func TestRecordSale_SequentialIDs(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))
	alice := users.New("u1", "Alice", "")
	bob := users.New("u2", "Bob", "")

	buyers := []*users.User{alice, bob, alice, bob}
	for i, buyer := range buyers {
		plate := plates.New(string(rune('a'+i)), "N", decimal.NewFromInt(10))
		sale, err := svc.RecordSale(plate, buyer)
		require.NoError(t, err)
		assert.Equal(t, i+1, sale.ID)
	}
	assert.Len(t, svc.List(), 4)
}

func TestRecordSale_Date(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))
	svc.now = func() time.Time { return fixed }

	plate := plates.New("p1", "ABC-123", decimal.NewFromInt(100))
	user := users.New("u1", "Alice", "")

	sale, err := svc.RecordSale(plate, user)
	require.NoError(t, err)
	assert.Equal(t, fixed, sale.Date, "defaults to the service clock")

	given := fixed.Add(-48 * time.Hour)
	sale, err = svc.RecordSale(plate, user, WithDate(given))
	require.NoError(t, err)
	assert.Equal(t, given, sale.Date)
}

func TestRecordSale_DoesNotTouchPlateOrUser(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))
	plate := plates.New("p1", "ABC-123", decimal.NewFromInt(100))
	user := users.New("u1", "Alice", "")

	_, err := svc.RecordSale(plate, user)
	require.NoError(t, err)
	assert.Equal(t, plates.StatusAvailable, plate.Status)
	assert.Empty(t, user.Purchases)
}

func TestRecordSale_InvalidInput(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))

	_, err := svc.RecordSale(nil, users.New("u1", "Alice", ""))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordSale(plates.New("p1", "N", decimal.Zero), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, svc.List())
}

func TestStatistics(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))
	user := users.New("u1", "Alice", "")
	p1 := plates.New("p1", "AAA-111", decimal.NewFromInt(100))
	p2 := plates.New("p2", "BBB-222", decimal.NewFromInt(250))

	_, err := svc.RecordSale(p1, user)
	require.NoError(t, err)
	_, err = svc.RecordSale(p2, user)
	require.NoError(t, err)

	stats := svc.Statistics()
	assert.Equal(t, 2, stats.TotalSales)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(350)), "got %s", stats.TotalRevenue)

	t.Run("revenue uses the price at sale time", func(t *testing.T) {
		p1.Price = decimal.NewFromInt(150)

		stats := svc.Statistics()
		assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(350)), "got %s", stats.TotalRevenue)
	})

	t.Run("decimal prices do not drift", func(t *testing.T) {
		svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))
		for i := 0; i < 10; i++ {
			_, err := svc.RecordSale(plates.New("p", "N", decimal.RequireFromString("0.1")), user)
			require.NoError(t, err)
		}
		assert.True(t, svc.Statistics().TotalRevenue.Equal(decimal.NewFromInt(1)))
	})
}

func TestByUser(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))
	alice := users.New("u1", "Alice", "")
	bob := users.New("u2", "Bob", "")

	s1, _ := svc.RecordSale(plates.New("p1", "A", decimal.NewFromInt(1)), alice)
	_, _ = svc.RecordSale(plates.New("p2", "B", decimal.NewFromInt(2)), bob)
	s3, _ := svc.RecordSale(plates.New("p3", "C", decimal.NewFromInt(3)), alice)

	assert.Equal(t, []*Sale{s1, s3}, svc.ByUser("u1"))
	assert.Empty(t, svc.ByUser("nobody"))
}

func TestDetails(t *testing.T) {
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))

	sale, err := svc.RecordSale(plates.New("p1", "ABC-123", decimal.NewFromInt(1)), users.New("u1", "Alice", ""), WithDate(date))
	require.NoError(t, err)

	assert.Equal(t, Details{SaleID: 1, PlateNumber: "ABC-123", UserName: "Alice", Date: date}, sale.Details())

	found, err := svc.FindByID(1)
	require.NoError(t, err)
	assert.Same(t, sale, found)

	_, err = svc.FindByID(2)
	assert.ErrorIs(t, err, ErrNotFound)

	t.Run("plate renumbered after the sale", func(t *testing.T) {
		sale.Plate.Number = "NEW-000"

		assert.Equal(t, "ABC-123", sale.Details().PlateNumber)
		assert.Equal(t, "ABC-123", sale.PlateNumber)
	})
}

func TestLocalStorage_RejectsOutOfSequenceIDs(t *testing.T) {
	storage := NewLocalStorage()

	assert.ErrorIs(t, storage.Append(&Sale{ID: 2}), ErrInvalidID)
	require.NoError(t, storage.Append(&Sale{ID: 1}))
	assert.ErrorIs(t, storage.Append(&Sale{ID: 1}), ErrInvalidID)
	assert.Equal(t, 1, storage.Count())
}
