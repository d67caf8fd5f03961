package pricing_test

import (
	"testing"

	"cinebook/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubtotal_SeatsCombosSnacksAndRoomFee(t *testing.T) {
	sel := pricing.NewSelection(10000)

	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemSeat, Ref: "A1", UnitPrice: 90000, Quantity: 1, Availability: pricing.Available,
	}))
	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemSeat, Ref: "A2", UnitPrice: 90000, Quantity: 1, Availability: pricing.Available,
	}))
	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemCombo, Ref: "combo-1", UnitPrice: 85000, Quantity: 2, Availability: pricing.Available,
	}))
	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemSnack, Ref: "snack-1", UnitPrice: 30000, Quantity: 1, Availability: pricing.Available,
	}))

	// 2*90000 + 2*85000 + 30000 + 2 seats * 10000 room fee
	assert.Equal(t, pricing.Money(400000), sel.Subtotal())
	assert.Equal(t, 2, sel.SeatCount())
	assert.Equal(t, pricing.Money(180000), sel.KindTotal(pricing.ItemSeat))
	assert.Equal(t, pricing.Money(170000), sel.KindTotal(pricing.ItemCombo))
	assert.Equal(t, pricing.Money(30000), sel.KindTotal(pricing.ItemSnack))
}

func TestAddLineItem_NegativeQuantityRejected(t *testing.T) {
	sel := pricing.NewSelection(0)

	err := sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemCombo, Ref: "combo-1", UnitPrice: 50000, Quantity: -1, Availability: pricing.Available,
	})

	assert.ErrorIs(t, err, pricing.ErrInvalidQuantity)
	assert.Empty(t, sel.Items())
	assert.Equal(t, pricing.Money(0), sel.Subtotal())
}

func TestAddLineItem_ZeroQuantityIsDeselectedRow(t *testing.T) {
	sel := pricing.NewSelection(0)

	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemSnack, Ref: "snack-1", UnitPrice: 30000, Quantity: 0, Availability: pricing.Available,
	}))

	assert.Len(t, sel.Items(), 1)
	assert.Equal(t, pricing.Money(0), sel.Subtotal())
}

func TestSubtotal_UnavailableItemContributesZero(t *testing.T) {
	// A combo that went unavailable with a lingering quantity of 2
	// must contribute nothing regardless of price.
	sel := pricing.NewSelection(0)

	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemCombo, Ref: "combo-1", UnitPrice: 120000, Quantity: 2, Availability: pricing.Unavailable,
	}))

	assert.Equal(t, pricing.Money(0), sel.Subtotal())
	assert.Equal(t, []string{"combo-1"}, sel.StaleRefs())
}

func TestSetQuantity_IncreaseOnUnavailableItemIgnored(t *testing.T) {
	sel := pricing.NewSelection(0)
	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemCombo, Ref: "combo-1", UnitPrice: 50000, Quantity: 1, Availability: pricing.Unavailable,
	}))

	require.NoError(t, sel.SetQuantity("combo-1", 5))
	assert.Equal(t, 1, sel.Items()[0].Quantity)

	// Decreases are always allowed.
	require.NoError(t, sel.SetQuantity("combo-1", 0))
	assert.Equal(t, 0, sel.Items()[0].Quantity)
}

func TestSetQuantity_NegativeRejectedSelectionUnchanged(t *testing.T) {
	sel := pricing.NewSelection(0)
	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemSnack, Ref: "snack-1", UnitPrice: 25000, Quantity: 2, Availability: pricing.Available,
	}))

	assert.ErrorIs(t, sel.SetQuantity("snack-1", -3), pricing.ErrInvalidQuantity)
	assert.Equal(t, 2, sel.Items()[0].Quantity)
}

func TestSubtotal_NeverNegativeAndDeterministic(t *testing.T) {
	sel := pricing.NewSelection(5000)
	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemSeat, Ref: "B4", UnitPrice: 75000, Quantity: 1, Availability: pricing.Available,
	}))

	first := sel.Subtotal()
	second := sel.Subtotal()

	assert.GreaterOrEqual(t, int64(first), int64(0))
	assert.Equal(t, first, second)
}
