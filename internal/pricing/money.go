package pricing

// Money represents a monetary value in minor currency units (e.g. VND).
// Integer math keeps percentage discounts exact under floor semantics.
type Money int64

// clampDiscount bounds a discount amount to [0, subtotal].
func clampDiscount(amount, subtotal Money) Money {
	if amount < 0 {
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}
