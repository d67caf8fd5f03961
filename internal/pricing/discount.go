package pricing

import (
	"math"
	"time"
)

// DiscountType enumerates how a voucher or promotion discount is computed.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// Rejection reasons reported when a discount source fails its eligibility
// check. They are surfaced to the UI verbatim.
const (
	ReasonNotStarted     = "not yet valid"
	ReasonExpired        = "expired"
	ReasonBelowMinimum   = "below minimum order amount"
	ReasonUsageExhausted = "usage limit reached"
)

// DiscountSource is the closed set of discount variants a checkout can
// carry: a loyalty-point redemption, a voucher code, or a promotion.
// Each variant owns its eligibility rule and its standalone amount
// formula; neither depends on the other chosen sources.
type DiscountSource interface {
	// Label names the source for display and for the breakdown audit trail.
	Label() string
	// Eligible reports whether the source may be applied to an order with
	// the given subtotal at the given time. When it is not, the second
	// return value carries the reason.
	Eligible(subtotal Money, now time.Time) (bool, string)
	// Amount computes the standalone discount against the subtotal.
	// The result is always in [0, subtotal].
	Amount(subtotal Money) Money

	isDiscountSource()
}

// discountAmount applies the shared percentage/fixed formula:
// percentage discounts floor(subtotal*value/100) and honour an optional
// cap; fixed discounts are the configured value. Both are then clamped
// to the subtotal.
func discountAmount(subtotal Money, typ DiscountType, value float64, cap *Money) Money {
	var amount Money
	switch typ {
	case DiscountPercentage:
		amount = Money(math.Floor(float64(subtotal) * value / 100))
		if cap != nil && amount > *cap {
			amount = *cap
		}
	case DiscountFixed:
		amount = Money(value)
	}
	return clampDiscount(amount, subtotal)
}

// LoyaltyRedemption converts member points into money at a fixed rate.
// It is structurally always eligible; the member's available balance is
// enforced by the loyalty service, not here.
type LoyaltyRedemption struct {
	Points     int
	PointValue Money // money per point
}

func (LoyaltyRedemption) Label() string { return "points" }

func (LoyaltyRedemption) Eligible(Money, time.Time) (bool, string) {
	return true, ""
}

func (l LoyaltyRedemption) Amount(subtotal Money) Money {
	return clampDiscount(Money(l.Points)*l.PointValue, subtotal)
}

func (LoyaltyRedemption) isDiscountSource() {}

// VoucherDiscount is a code-based discount with a validity window, a
// minimum order amount, and a usage limit. UsedCount is a snapshot taken
// when the voucher was looked up; incrementing it on redemption belongs
// to the voucher service at booking commit.
type VoucherDiscount struct {
	Code        string
	Type        DiscountType
	Value       float64
	MinOrder    Money
	MaxDiscount *Money // nil means uncapped
	ValidFrom   time.Time
	ValidTo     time.Time
	UsageLimit  int
	UsedCount   int
}

func (v VoucherDiscount) Label() string { return "voucher" }

func (v VoucherDiscount) Eligible(subtotal Money, now time.Time) (bool, string) {
	if now.Before(v.ValidFrom) {
		return false, ReasonNotStarted
	}
	if now.After(v.ValidTo) {
		return false, ReasonExpired
	}
	if v.UsedCount >= v.UsageLimit {
		return false, ReasonUsageExhausted
	}
	if subtotal < v.MinOrder {
		return false, ReasonBelowMinimum
	}
	return true, ""
}

func (v VoucherDiscount) Amount(subtotal Money) Money {
	return discountAmount(subtotal, v.Type, v.Value, v.MaxDiscount)
}

func (VoucherDiscount) isDiscountSource() {}

// PromotionDiscount is a running promotion with a time window and a
// minimum purchase. Its amount formula is identical to the voucher's,
// without a discount cap.
type PromotionDiscount struct {
	Name        string
	Type        DiscountType
	Value       float64
	MinPurchase Money
	StartTime   time.Time
	EndTime     time.Time
}

func (p PromotionDiscount) Label() string { return "promotion" }

func (p PromotionDiscount) Eligible(subtotal Money, now time.Time) (bool, string) {
	if now.Before(p.StartTime) {
		return false, ReasonNotStarted
	}
	if now.After(p.EndTime) {
		return false, ReasonExpired
	}
	if subtotal < p.MinPurchase {
		return false, ReasonBelowMinimum
	}
	return true, ""
}

func (p PromotionDiscount) Amount(subtotal Money) Money {
	return discountAmount(subtotal, p.Type, p.Value, nil)
}

func (PromotionDiscount) isDiscountSource() {}
