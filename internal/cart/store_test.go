package cart

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hcnails/studio/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProduct(id uint, name string, price string) *models.Product {
	return &models.Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Sizes: models.StringList{"S", "M", "L"},
	}
}

func TestAddItemMergesSameProductAndSize(t *testing.T) {
	store := Open("c1", NewMemoryStorage(), testLogger())
	p := testProduct(1, "chrome set", "24.99")

	store.AddItem(p, "M", 2)
	store.AddItem(p, "M", 3)

	lines := store.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, uint(5), lines[0].Quantity)
}

func TestAddItemDifferentSizeAddsLine(t *testing.T) {
	store := Open("c1", NewMemoryStorage(), testLogger())
	p := testProduct(1, "chrome set", "24.99")

	store.AddItem(p, "M", 1)
	store.AddItem(p, "L", 1)

	require.Len(t, store.Lines(), 2)
}

func TestAddItemZeroQuantityDefaultsToOne(t *testing.T) {
	store := Open("c1", NewMemoryStorage(), testLogger())
	store.AddItem(testProduct(1, "chrome set", "24.99"), "M", 0)

	require.Equal(t, uint(1), store.TotalItems())
}

func TestTotals(t *testing.T) {
	store := Open("c1", NewMemoryStorage(), testLogger())
	store.AddItem(testProduct(1, "chrome set", "24.99"), "M", 1)
	store.AddItem(testProduct(2, "french tips", "22.99"), "S", 2)

	require.Equal(t, uint(3), store.TotalItems())
	require.True(t, store.TotalPrice().Equal(decimal.RequireFromString("70.97")),
		"got %s", store.TotalPrice())
}

func TestRemoveAbsentLineIsNoOp(t *testing.T) {
	store := Open("c1", NewMemoryStorage(), testLogger())
	store.AddItem(testProduct(1, "chrome set", "24.99"), "M", 1)

	store.RemoveItem(99, "M")
	store.RemoveItem(1, "XL")

	require.Len(t, store.Lines(), 1)
}

func TestRemoveItem(t *testing.T) {
	store := Open("c1", NewMemoryStorage(), testLogger())
	store.AddItem(testProduct(1, "chrome set", "24.99"), "M", 1)
	store.AddItem(testProduct(1, "chrome set", "24.99"), "L", 1)

	store.RemoveItem(1, "M")

	lines := store.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, "L", lines[0].Size)
}

func TestUpdateQuantitySetsVerbatim(t *testing.T) {
	store := Open("c1", NewMemoryStorage(), testLogger())
	store.AddItem(testProduct(1, "chrome set", "24.99"), "M", 1)

	store.UpdateQuantity(1, "M", 7)

	require.Equal(t, uint(7), store.Lines()[0].Quantity)
}

func TestClearCart(t *testing.T) {
	store := Open("c1", NewMemoryStorage(), testLogger())
	store.AddItem(testProduct(1, "chrome set", "24.99"), "M", 2)

	store.Clear()

	require.Empty(t, store.Lines())
	require.Equal(t, uint(0), store.TotalItems())
	require.True(t, store.TotalPrice().IsZero())
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()

	store := Open("c1", storage, testLogger())
	store.AddItem(testProduct(1, "chrome set", "24.99"), "M", 2)

	reloaded := Open("c1", storage, testLogger())
	lines := reloaded.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, uint(2), lines[0].Quantity)
	require.True(t, lines[0].Price.Equal(decimal.RequireFromString("24.99")))
}

func TestOpenUnknownKeyStartsEmpty(t *testing.T) {
	store := Open("never-seen", NewMemoryStorage(), testLogger())
	require.Empty(t, store.Lines())
}

func TestFileStorageRoundTrip(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Load("missing")
	require.ErrorIs(t, err, ErrNoCart)

	require.NoError(t, storage.Save("c1", []byte(`[{"product_id":1}]`)))
	data, err := storage.Load("c1")
	require.NoError(t, err)
	require.JSONEq(t, `[{"product_id":1}]`, string(data))
}
