package pricing_test

import (
	"testing"
	"time"

	"cinebook/internal/pricing"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 19, 30, 0, 0, time.UTC)

func activeVoucher(typ pricing.DiscountType, value float64, minOrder pricing.Money, cap *pricing.Money) pricing.VoucherDiscount {
	return pricing.VoucherDiscount{
		Code:        "TEST",
		Type:        typ,
		Value:       value,
		MinOrder:    minOrder,
		MaxDiscount: cap,
		ValidFrom:   now.Add(-24 * time.Hour),
		ValidTo:     now.Add(24 * time.Hour),
		UsageLimit:  100,
		UsedCount:   0,
	}
}

func moneyPtr(m pricing.Money) *pricing.Money { return &m }

func TestLoyaltyRedemption_Amount(t *testing.T) {
	l := pricing.LoyaltyRedemption{Points: 100, PointValue: 1000}

	ok, _ := l.Eligible(300000, now)
	assert.True(t, ok)
	assert.Equal(t, pricing.Money(100000), l.Amount(300000))

	// Capped at subtotal.
	assert.Equal(t, pricing.Money(50000), l.Amount(50000))
	// Zero points redeem nothing.
	assert.Equal(t, pricing.Money(0), pricing.LoyaltyRedemption{Points: 0, PointValue: 1000}.Amount(300000))
}

func TestVoucherDiscount_PercentageWithCap(t *testing.T) {
	v := activeVoucher(pricing.DiscountPercentage, 10, 100000, moneyPtr(50000))

	// 10% of 500,000 is exactly the cap.
	assert.Equal(t, pricing.Money(50000), v.Amount(500000))
	// 10% of 800,000 exceeds the cap.
	assert.Equal(t, pricing.Money(50000), v.Amount(800000))
	// Floor applies before the cap.
	assert.Equal(t, pricing.Money(10005), v.Amount(100055))
}

func TestVoucherDiscount_FixedCappedAtSubtotal(t *testing.T) {
	v := activeVoucher(pricing.DiscountFixed, 50000, 0, nil)

	assert.Equal(t, pricing.Money(50000), v.Amount(80000))
	assert.Equal(t, pricing.Money(30000), v.Amount(30000))
}

func TestVoucherDiscount_Eligibility(t *testing.T) {
	tests := []struct {
		name     string
		voucher  pricing.VoucherDiscount
		subtotal pricing.Money
		eligible bool
		reason   string
	}{
		{
			name:     "within window and above minimum",
			voucher:  activeVoucher(pricing.DiscountFixed, 20000, 100000, nil),
			subtotal: 150000,
			eligible: true,
		},
		{
			name: "not yet valid",
			voucher: pricing.VoucherDiscount{
				Type: pricing.DiscountFixed, Value: 20000,
				ValidFrom: now.Add(time.Hour), ValidTo: now.Add(48 * time.Hour),
				UsageLimit: 10,
			},
			subtotal: 150000,
			reason:   pricing.ReasonNotStarted,
		},
		{
			name: "expired",
			voucher: pricing.VoucherDiscount{
				Type: pricing.DiscountFixed, Value: 20000,
				ValidFrom: now.Add(-48 * time.Hour), ValidTo: now.Add(-time.Hour),
				UsageLimit: 10,
			},
			subtotal: 150000,
			reason:   pricing.ReasonExpired,
		},
		{
			name: "usage limit reached",
			voucher: pricing.VoucherDiscount{
				Type: pricing.DiscountFixed, Value: 20000,
				ValidFrom: now.Add(-time.Hour), ValidTo: now.Add(time.Hour),
				UsageLimit: 5, UsedCount: 5,
			},
			subtotal: 150000,
			reason:   pricing.ReasonUsageExhausted,
		},
		{
			name:     "below minimum order amount",
			voucher:  activeVoucher(pricing.DiscountFixed, 50000, 200000, nil),
			subtotal: 80000,
			reason:   pricing.ReasonBelowMinimum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := tt.voucher.Eligible(tt.subtotal, now)
			assert.Equal(t, tt.eligible, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestPromotionDiscount_EligibilityAndAmount(t *testing.T) {
	p := pricing.PromotionDiscount{
		Name:        "Summer Blockbuster",
		Type:        pricing.DiscountPercentage,
		Value:       20,
		MinPurchase: 150000,
		StartTime:   now.Add(-time.Hour),
		EndTime:     now.Add(time.Hour),
	}

	ok, _ := p.Eligible(300000, now)
	assert.True(t, ok)
	assert.Equal(t, pricing.Money(60000), p.Amount(300000))

	ok, reason := p.Eligible(100000, now)
	assert.False(t, ok)
	assert.Equal(t, pricing.ReasonBelowMinimum, reason)

	ok, reason = p.Eligible(300000, now.Add(2*time.Hour))
	assert.False(t, ok)
	assert.Equal(t, pricing.ReasonExpired, reason)
}

func TestEligibility_MonotonicInSubtotal(t *testing.T) {
	// If a minimum-purchase rule passes at subtotal S it must pass at any S' > S.
	v := activeVoucher(pricing.DiscountPercentage, 15, 120000, nil)

	lower := pricing.Money(120000)
	for _, higher := range []pricing.Money{120001, 200000, 1000000} {
		okLow, _ := v.Eligible(lower, now)
		okHigh, _ := v.Eligible(higher, now)
		assert.True(t, okLow)
		assert.True(t, okHigh)
	}
}

func TestAmount_BoundedBySubtotalForAllVariants(t *testing.T) {
	subtotals := []pricing.Money{0, 1, 999, 50000, 500000}
	sources := []pricing.DiscountSource{
		pricing.LoyaltyRedemption{Points: 1000, PointValue: 1000},
		activeVoucher(pricing.DiscountPercentage, 90, 0, nil),
		activeVoucher(pricing.DiscountFixed, 750000, 0, nil),
		pricing.PromotionDiscount{
			Type: pricing.DiscountFixed, Value: 900000,
			StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour),
		},
	}

	for _, subtotal := range subtotals {
		for _, src := range sources {
			amount := src.Amount(subtotal)
			assert.GreaterOrEqual(t, int64(amount), int64(0))
			assert.LessOrEqual(t, int64(amount), int64(subtotal))
		}
	}
}
