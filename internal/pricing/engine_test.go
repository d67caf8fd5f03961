package pricing_test

import (
	"testing"
	"time"

	"cinebook/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionWithSubtotal(t *testing.T, subtotal pricing.Money) *pricing.Selection {
	t.Helper()
	sel := pricing.NewSelection(0)
	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemSeat, Ref: "A1", UnitPrice: subtotal, Quantity: 1, Availability: pricing.Available,
	}))
	require.Equal(t, subtotal, sel.Subtotal())
	return sel
}

func TestCompute_PercentageVoucherUnderCap(t *testing.T) {
	// WELCOME10: 10%, cap 50,000, min 100,000 on a 500,000 order.
	engine := pricing.NewEngine()
	sel := selectionWithSubtotal(t, 500000)
	voucher := pricing.VoucherDiscount{
		Code: "WELCOME10", Type: pricing.DiscountPercentage, Value: 10,
		MinOrder: 100000, MaxDiscount: moneyPtr(50000),
		ValidFrom: now.Add(-time.Hour), ValidTo: now.Add(time.Hour), UsageLimit: 100,
	}

	b := engine.Compute(sel, []pricing.DiscountSource{voucher}, now)

	require.Len(t, b.Applied, 1)
	assert.Equal(t, pricing.Money(50000), b.Applied[0].Amount)
	assert.Equal(t, pricing.Money(50000), b.TotalDiscount)
	assert.Equal(t, pricing.Money(450000), b.FinalTotal)
	assert.Empty(t, b.Rejected)
}

func TestCompute_VoucherBelowMinimumDropped(t *testing.T) {
	// MOVIE50K: fixed 50,000 with min 200,000 on an 80,000 order.
	engine := pricing.NewEngine()
	sel := selectionWithSubtotal(t, 80000)
	voucher := pricing.VoucherDiscount{
		Code: "MOVIE50K", Type: pricing.DiscountFixed, Value: 50000,
		MinOrder:  200000,
		ValidFrom: now.Add(-time.Hour), ValidTo: now.Add(time.Hour), UsageLimit: 100,
	}

	b := engine.Compute(sel, []pricing.DiscountSource{voucher}, now)

	assert.Empty(t, b.Applied)
	require.Len(t, b.Rejected, 1)
	assert.Equal(t, pricing.ReasonBelowMinimum, b.Rejected[0].Reason)
	assert.Equal(t, pricing.Money(0), b.TotalDiscount)
	assert.Equal(t, pricing.Money(80000), b.FinalTotal)
}

func TestCompute_PointsAndPromotionStackAgainstOriginalSubtotal(t *testing.T) {
	engine := pricing.NewEngine()
	sel := selectionWithSubtotal(t, 300000)
	sources := []pricing.DiscountSource{
		pricing.LoyaltyRedemption{Points: 100, PointValue: 1000},
		pricing.PromotionDiscount{
			Type: pricing.DiscountPercentage, Value: 20, MinPurchase: 150000,
			StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour),
		},
	}

	b := engine.Compute(sel, sources, now)

	// The promotion's 20% is taken from 300,000, not from the balance
	// left after the points redemption.
	require.Len(t, b.Applied, 2)
	assert.Equal(t, pricing.Money(100000), b.Applied[0].Amount)
	assert.Equal(t, pricing.Money(60000), b.Applied[1].Amount)
	assert.Equal(t, pricing.Money(160000), b.TotalDiscount)
	assert.Equal(t, pricing.Money(140000), b.FinalTotal)
}

func TestCompute_AggregateDiscountMayExceedSubtotal_FinalFloorsAtZero(t *testing.T) {
	// Each source is individually capped to the 50,000 subtotal, yet the
	// sum may still pass it; the zero floor on the final total is the
	// only backstop.
	engine := pricing.NewEngine()
	sel := selectionWithSubtotal(t, 50000)
	sources := []pricing.DiscountSource{
		pricing.LoyaltyRedemption{Points: 40, PointValue: 1000},
		pricing.VoucherDiscount{
			Code: "BIG", Type: pricing.DiscountFixed, Value: 40000,
			ValidFrom: now.Add(-time.Hour), ValidTo: now.Add(time.Hour), UsageLimit: 10,
		},
		pricing.PromotionDiscount{
			Type: pricing.DiscountFixed, Value: 40000,
			StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour),
		},
	}

	b := engine.Compute(sel, sources, now)

	assert.Equal(t, pricing.Money(120000), b.TotalDiscount)
	assert.Equal(t, pricing.Money(0), b.FinalTotal)
}

func TestCompute_StaleComboZeroedAndReported(t *testing.T) {
	engine := pricing.NewEngine()
	sel := pricing.NewSelection(10000)
	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemSeat, Ref: "C3", UnitPrice: 90000, Quantity: 1, Availability: pricing.Available,
	}))
	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemCombo, Ref: "combo-9", UnitPrice: 120000, Quantity: 2, Availability: pricing.Unavailable,
	}))

	b := engine.Compute(sel, nil, now)

	assert.Equal(t, pricing.Money(100000), b.Subtotal)
	assert.Equal(t, pricing.Money(0), b.ComboCost)
	assert.Equal(t, []string{"combo-9"}, b.StaleItems)
	assert.Equal(t, pricing.Money(100000), b.FinalTotal)
}

func TestCompute_Idempotent(t *testing.T) {
	engine := pricing.NewEngine()
	sel := selectionWithSubtotal(t, 250000)
	sources := []pricing.DiscountSource{
		pricing.LoyaltyRedemption{Points: 50, PointValue: 1000},
		activeVoucher(pricing.DiscountPercentage, 10, 100000, moneyPtr(30000)),
		pricing.PromotionDiscount{
			Type: pricing.DiscountFixed, Value: 20000,
			StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour),
		},
	}

	first := engine.Compute(sel, sources, now)
	second := engine.Compute(sel, sources, now)

	assert.Equal(t, first, second)
}

func TestCompute_NoDiscountSources(t *testing.T) {
	engine := pricing.NewEngine()
	sel := selectionWithSubtotal(t, 180000)

	b := engine.Compute(sel, nil, now)

	assert.Empty(t, b.Applied)
	assert.Equal(t, pricing.Money(0), b.TotalDiscount)
	assert.Equal(t, pricing.Money(180000), b.FinalTotal)
}

func TestCompute_CombosOnlyWithoutSeats(t *testing.T) {
	// Zero seats still yields a valid breakdown; rejecting seatless
	// bookings is the booking service's job, not the engine's.
	engine := pricing.NewEngine()
	sel := pricing.NewSelection(10000)
	require.NoError(t, sel.AddLineItem(pricing.LineItem{
		Kind: pricing.ItemCombo, Ref: "combo-1", UnitPrice: 85000, Quantity: 1, Availability: pricing.Available,
	}))

	b := engine.Compute(sel, nil, now)

	assert.Equal(t, pricing.Money(0), b.RoomFeeTotal)
	assert.Equal(t, pricing.Money(85000), b.Subtotal)
	assert.Equal(t, pricing.Money(85000), b.FinalTotal)
}

func TestCompute_FinalTotalInvariantHolds(t *testing.T) {
	engine := pricing.NewEngine()
	for _, subtotal := range []pricing.Money{0, 10000, 50000, 500000} {
		sel := pricing.NewSelection(0)
		if subtotal > 0 {
			require.NoError(t, sel.AddLineItem(pricing.LineItem{
				Kind: pricing.ItemSeat, Ref: "A1", UnitPrice: subtotal, Quantity: 1, Availability: pricing.Available,
			}))
		}
		sources := []pricing.DiscountSource{
			pricing.LoyaltyRedemption{Points: 30, PointValue: 1000},
			activeVoucher(pricing.DiscountPercentage, 25, 0, nil),
		}

		b := engine.Compute(sel, sources, now)

		var sum pricing.Money
		for _, a := range b.Applied {
			sum += a.Amount
		}
		assert.Equal(t, sum, b.TotalDiscount)
		expected := b.Subtotal - b.TotalDiscount
		if expected < 0 {
			expected = 0
		}
		assert.Equal(t, expected, b.FinalTotal)
		assert.GreaterOrEqual(t, int64(b.FinalTotal), int64(0))
	}
}
