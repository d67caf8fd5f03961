package pricing

import "time"

// AppliedDiscount records one discount source that passed its eligibility
// check, with the amount it contributes.
type AppliedDiscount struct {
	Label  string `json:"label"`
	Amount Money  `json:"amount"`
}

// RejectedDiscount records a chosen discount source that was dropped,
// with the reason. A rejection never fails the overall computation.
type RejectedDiscount struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// Breakdown is the full pricing result for one checkout preview or
// booking submission. It is derived data: recomputed on every input
// change and never persisted.
type Breakdown struct {
	TicketCost    Money             `json:"ticket_cost"`
	RoomFeeTotal  Money             `json:"room_fee_total"`
	ComboCost     Money             `json:"combo_cost"`
	SnackCost     Money             `json:"snack_cost"`
	Subtotal      Money             `json:"subtotal"`
	Applied       []AppliedDiscount `json:"applied_discounts"`
	Rejected      []RejectedDiscount `json:"rejected_discounts,omitempty"`
	StaleItems    []string          `json:"stale_items,omitempty"`
	TotalDiscount Money             `json:"total_discount"`
	FinalTotal    Money             `json:"final_total"`
}

// Engine composes a selection and the chosen discount sources into a
// Breakdown. It is pure: no I/O, no clock reads, no mutation of its
// inputs, so identical inputs always yield identical output.
type Engine struct{}

// NewEngine creates a pricing engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute produces the pricing breakdown for a selection and zero or
// more discount sources at the given time.
//
// Every discount amount is computed against the original subtotal, not
// a running discounted balance: the three sources stack by summation,
// never by compounding. The sum of discounts is deliberately not capped
// to the subtotal; flooring the final total at zero is the only
// backstop. Ineligible sources are dropped with a reason and the
// computation continues.
func (e *Engine) Compute(sel *Selection, sources []DiscountSource, now time.Time) Breakdown {
	subtotal := sel.Subtotal()

	b := Breakdown{
		TicketCost:   sel.KindTotal(ItemSeat),
		RoomFeeTotal: sel.RoomFee() * Money(sel.SeatCount()),
		ComboCost:    sel.KindTotal(ItemCombo),
		SnackCost:    sel.KindTotal(ItemSnack),
		Subtotal:     subtotal,
		StaleItems:   sel.StaleRefs(),
	}

	for _, src := range sources {
		ok, reason := src.Eligible(subtotal, now)
		if !ok {
			b.Rejected = append(b.Rejected, RejectedDiscount{
				Label:  src.Label(),
				Reason: reason,
			})
			continue
		}
		amount := src.Amount(subtotal)
		b.Applied = append(b.Applied, AppliedDiscount{
			Label:  src.Label(),
			Amount: amount,
		})
		b.TotalDiscount += amount
	}

	b.FinalTotal = subtotal - b.TotalDiscount
	if b.FinalTotal < 0 {
		b.FinalTotal = 0
	}

	return b
}
