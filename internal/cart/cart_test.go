package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/relove-market/storefront/internal/errors"
)

func denimJacket() Item {
	return Item{
		Name:       "Vintage Denim Jacket",
		ImageUrl:   "https://cdn.example.com/denim.jpg",
		Size:       "M",
		Color:      "blue",
		UnitPrice:  decimal.NewFromInt(45),
		ProductID:  7,
		VariantID:  71,
		StockLimit: 3,
	}
}

func TestAddLineAccumulatesSameKey(t *testing.T) {
	store := NewStore()

	for i := 1; i <= 3; i++ {
		err := store.AddLine(denimJacket())
		assert.NoError(t, err)
		assert.Equal(t, i, store.Count())
		assert.True(t, decimal.NewFromInt(int64(45*i)).Equal(store.Subtotal()))
	}
	assert.Len(t, store.Lines(), 1)
}

func TestAddLineRejectsAtStockCeiling(t *testing.T) {
	store := NewStore()
	for i := 0; i < 3; i++ {
		assert.NoError(t, store.AddLine(denimJacket()))
	}

	err := store.AddLine(denimJacket())

	assert.ErrorIs(t, err, errors.ErrStockExceeded)
	assert.Equal(t, 3, store.Count())
	assert.True(t, decimal.NewFromInt(135).Equal(store.Subtotal()))
}

func TestAddLineRejectsOutOfStockItem(t *testing.T) {
	store := NewStore()
	item := denimJacket()
	item.StockLimit = 0

	err := store.AddLine(item)

	assert.ErrorIs(t, err, errors.ErrStockExceeded)
	assert.Empty(t, store.Lines())
	assert.Equal(t, 0, store.Count())
}

func TestAddLineKeysByProductSizeColor(t *testing.T) {
	store := NewStore()
	medium := denimJacket()
	large := denimJacket()
	large.Size = "L"
	large.VariantID = 72

	assert.NoError(t, store.AddLine(medium))
	assert.NoError(t, store.AddLine(large))
	assert.NoError(t, store.AddLine(medium))

	lines := store.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, 3, store.Count())
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name        string
		quantity    int
		expectedErr error
		expectedQty int
	}{
		{name: "zero is rejected", quantity: 0, expectedErr: errors.ErrInvalidQuantity, expectedQty: 1},
		{name: "negative is rejected", quantity: -1, expectedErr: errors.ErrInvalidQuantity, expectedQty: 1},
		{name: "above stock is rejected not clamped", quantity: 4, expectedErr: errors.ErrInvalidQuantity, expectedQty: 1},
		{name: "exactly stock succeeds", quantity: 3, expectedErr: nil, expectedQty: 3},
		{name: "within stock succeeds", quantity: 2, expectedErr: nil, expectedQty: 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := NewStore()
			assert.NoError(t, store.AddLine(denimJacket()))

			err := store.SetQuantity(denimJacket().Key(), test.quantity)

			assert.ErrorIs(t, err, test.expectedErr)
			lines := store.Lines()
			assert.Equal(t, test.expectedQty, lines[0].Quantity)
			assert.Equal(t, test.expectedQty, store.Count())
			expectedSubtotal := decimal.NewFromInt(int64(45 * test.expectedQty))
			assert.True(t, expectedSubtotal.Equal(store.Subtotal()))
		})
	}
}

func TestSetQuantityUnknownKey(t *testing.T) {
	store := NewStore()
	assert.NoError(t, store.AddLine(denimJacket()))

	err := store.SetQuantity(Key{ProductID: 99, Size: "M"}, 1)

	assert.ErrorIs(t, err, errors.ErrInvalidQuantity)
	assert.Equal(t, 1, store.Count())
}

func TestRemoveLine(t *testing.T) {
	store := NewStore()
	assert.NoError(t, store.AddLine(denimJacket()))

	store.RemoveLine(Key{ProductID: 99, Size: "M"})
	assert.Equal(t, 1, store.Count())

	store.RemoveLine(denimJacket().Key())
	assert.Equal(t, 0, store.Count())
	assert.True(t, decimal.Zero.Equal(store.Subtotal()))
	assert.Empty(t, store.Lines())
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewStore()
	assert.NoError(t, store.AddLine(denimJacket()))
	assert.NoError(t, store.AddLine(denimJacket()))

	store.Clear()
	store.Clear()

	assert.Equal(t, 0, store.Count())
	assert.True(t, decimal.Zero.Equal(store.Subtotal()))
	assert.Empty(t, store.Lines())
}

func TestCheckoutItemsCarryVariantIds(t *testing.T) {
	store := NewStore()
	medium := denimJacket()
	large := denimJacket()
	large.Size = "L"
	large.VariantID = 72
	assert.NoError(t, store.AddLine(medium))
	assert.NoError(t, store.AddLine(medium))
	assert.NoError(t, store.AddLine(large))

	items := store.CheckoutItems()

	assert.Len(t, items, 2)
	assert.Equal(t, int64(71), items[0].ProductVariantID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(72), items[1].ProductVariantID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestLinesReturnsSnapshot(t *testing.T) {
	store := NewStore()
	assert.NoError(t, store.AddLine(denimJacket()))

	lines := store.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, store.Count())
	assert.Equal(t, 1, store.Lines()[0].Quantity)
}

func TestSubtotalRecomputedAcrossMixedLines(t *testing.T) {
	store := NewStore()
	jacket := denimJacket()
	scarf := Item{
		Name:       "Silk Scarf",
		Size:       "One Size",
		UnitPrice:  decimal.RequireFromString("12.50"),
		ProductID:  8,
		VariantID:  81,
		StockLimit: 5,
	}
	assert.NoError(t, store.AddLine(jacket))
	assert.NoError(t, store.AddLine(scarf))
	assert.NoError(t, store.SetQuantity(scarf.Key(), 4))

	assert.Equal(t, 5, store.Count())
	assert.True(t, decimal.RequireFromString("95.00").Equal(store.Subtotal()))
}
