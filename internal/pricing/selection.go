package pricing

import "errors"

// ItemKind identifies what a line item charges for.
type ItemKind string

const (
	ItemSeat  ItemKind = "SEAT"
	ItemCombo ItemKind = "COMBO"
	ItemSnack ItemKind = "SNACK"
)

// Availability mirrors the catalog status of the item behind a line item.
type Availability string

const (
	Available   Availability = "AVAILABLE"
	Unavailable Availability = "UNAVAILABLE"
)

// ErrInvalidQuantity is returned when a negative quantity is requested
// for a line item. The selection is left unchanged.
var ErrInvalidQuantity = errors.New("line item quantity must not be negative")

// LineItem is a priceable unit: one seat, one combo row, or one snack row.
// A quantity of zero is a valid "deselected" row and contributes nothing.
type LineItem struct {
	Kind         ItemKind
	Ref          string // seat or catalog item identifier, used for display and stale reporting
	UnitPrice    Money
	Quantity     int
	Availability Availability
}

// contributes reports whether the item adds to the subtotal.
func (li LineItem) contributes() bool {
	return li.Quantity > 0 && li.Availability != Unavailable
}

// Selection is the set of line items a customer is checking out, plus the
// per-seat room fee of the screening room. It is rebuilt from fresh data on
// every computation; it carries no persistent identity.
type Selection struct {
	roomFee Money
	items   []LineItem
}

// NewSelection creates an empty selection with the given per-seat room fee.
func NewSelection(roomFee Money) *Selection {
	return &Selection{roomFee: roomFee}
}

// AddLineItem appends an item to the selection. Negative quantities are
// rejected with ErrInvalidQuantity. An unavailable item may carry a stale
// positive quantity from lingering UI state; it is kept on the row for
// stale reporting but never contributes to the subtotal.
func (s *Selection) AddLineItem(item LineItem) error {
	if item.Quantity < 0 {
		return ErrInvalidQuantity
	}
	s.items = append(s.items, item)
	return nil
}

// SetQuantity updates the quantity of the item identified by ref.
// Negative quantities are rejected with ErrInvalidQuantity. Increasing the
// quantity of an unavailable item is silently ignored and the prior
// quantity kept; decreases are always allowed.
func (s *Selection) SetQuantity(ref string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	for i := range s.items {
		if s.items[i].Ref != ref {
			continue
		}
		if s.items[i].Availability == Unavailable && quantity > s.items[i].Quantity {
			return nil
		}
		s.items[i].Quantity = quantity
		return nil
	}
	return nil
}

// Items returns a copy of the line items in insertion order.
func (s *Selection) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// RoomFee returns the per-seat room fee.
func (s *Selection) RoomFee() Money {
	return s.roomFee
}

// SeatCount returns the number of seats that contribute to the subtotal.
func (s *Selection) SeatCount() int {
	count := 0
	for _, li := range s.items {
		if li.Kind == ItemSeat && li.contributes() {
			count += li.Quantity
		}
	}
	return count
}

// Subtotal computes the pre-discount order total:
// sum(unitPrice*quantity) over contributing items plus roomFee per seat.
// Unavailable items contribute zero even when a stale quantity lingers.
func (s *Selection) Subtotal() Money {
	var subtotal Money
	for _, li := range s.items {
		if !li.contributes() {
			continue
		}
		subtotal += li.UnitPrice * Money(li.Quantity)
	}
	subtotal += s.roomFee * Money(s.SeatCount())
	return subtotal
}

// KindTotal sums the contribution of a single item kind, excluding the
// room fee.
func (s *Selection) KindTotal(kind ItemKind) Money {
	var total Money
	for _, li := range s.items {
		if li.Kind == kind && li.contributes() {
			total += li.UnitPrice * Money(li.Quantity)
		}
	}
	return total
}

// StaleRefs lists items that were selected but have since become
// unavailable, so the UI can prompt their removal.
func (s *Selection) StaleRefs() []string {
	var refs []string
	for _, li := range s.items {
		if li.Availability == Unavailable && li.Quantity > 0 {
			refs = append(refs, li.Ref)
		}
	}
	return refs
}
