package bookings

import (
	"time"

	"github.com/google/uuid"

	"cinebook/internal/pricing"
	"cinebook/internal/showtimes"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is a confirmed purchase of seats (and optional concessions)
// for one showtime. Monetary fields are a snapshot of the pricing
// breakdown at confirmation time.
type Booking struct {
	ID         uuid.UUID           `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID     uuid.UUID           `json:"user_id" gorm:"type:uuid;not null;index"`
	ShowtimeID uuid.UUID           `json:"showtime_id" gorm:"type:uuid;not null;index"`
	Showtime   *showtimes.Showtime `json:"showtime,omitempty" gorm:"foreignKey:ShowtimeID"`

	BookingRef string `json:"booking_ref" gorm:"size:20;uniqueIndex;not null"`

	Status BookingStatus `json:"status" gorm:"not null;default:'CONFIRMED';index"`

	Subtotal      pricing.Money `json:"subtotal" gorm:"not null"`
	TotalDiscount pricing.Money `json:"total_discount" gorm:"not null;default:0"`
	FinalTotal    pricing.Money `json:"final_total" gorm:"not null"`

	// Per-source discount amounts, kept for reporting
	PointsDiscount    pricing.Money `json:"points_discount" gorm:"not null;default:0"`
	VoucherDiscount   pricing.Money `json:"voucher_discount" gorm:"not null;default:0"`
	PromotionDiscount pricing.Money `json:"promotion_discount" gorm:"not null;default:0"`

	VoucherCode    *string `json:"voucher_code,omitempty" gorm:"size:50"`
	PointsRedeemed int     `json:"points_redeemed" gorm:"not null;default:0"`
	PointsEarned   int     `json:"points_earned" gorm:"not null;default:0"`

	Tickets []Ticket    `json:"tickets,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Lines   []OrderLine `json:"lines,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ticket is one seat on one showtime. The (seat_id, showtime_id) unique
// constraint is the last line of defense against double booking.
type Ticket struct {
	ID         uuid.UUID     `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	BookingID  uuid.UUID     `json:"booking_id" gorm:"type:uuid;not null;index"`
	ShowtimeID uuid.UUID     `json:"showtime_id" gorm:"type:uuid;not null"`
	SeatID     uuid.UUID     `json:"seat_id" gorm:"type:uuid;not null"`
	SeatLabel  string        `json:"seat_label" gorm:"size:10;not null"`
	Price      pricing.Money `json:"price" gorm:"not null"`
	CreatedAt  time.Time     `json:"created_at"`
}

// OrderLine is one concession row (combo or snack) on a booking.
type OrderLine struct {
	ID        uuid.UUID     `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	BookingID uuid.UUID     `json:"booking_id" gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID     `json:"item_id" gorm:"type:uuid;not null"`
	Name      string        `json:"name" gorm:"not null"`
	Kind      string        `json:"kind" gorm:"size:20;not null"`
	UnitPrice pricing.Money `json:"unit_price" gorm:"not null"`
	Quantity  int           `json:"quantity" gorm:"not null"`
	LineTotal pricing.Money `json:"line_total" gorm:"not null"`
	CreatedAt time.Time     `json:"created_at"`
}

// ItemSelection is one requested concession row.
type ItemSelection struct {
	ItemID   string `json:"item_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"min=0,max=20"`
}

// PricePreviewRequest drives a checkout price computation without
// touching any state. Seats come either from an active hold or as an
// explicit list.
type PricePreviewRequest struct {
	ShowtimeID  string          `json:"showtime_id" binding:"required,uuid"`
	HoldID      string          `json:"hold_id,omitempty"`
	SeatIDs     []string        `json:"seat_ids,omitempty" binding:"omitempty,max=10,dive,uuid"`
	Items       []ItemSelection `json:"items,omitempty" binding:"omitempty,dive"`
	VoucherCode string          `json:"voucher_code,omitempty"`
	Points      int             `json:"points,omitempty" binding:"omitempty,min=0"`
}

// ConfirmBookingRequest commits a held selection into a booking.
type ConfirmBookingRequest struct {
	ShowtimeID  string          `json:"showtime_id" binding:"required,uuid"`
	HoldID      string          `json:"hold_id" binding:"required"`
	Items       []ItemSelection `json:"items,omitempty" binding:"omitempty,dive"`
	VoucherCode string          `json:"voucher_code,omitempty"`
	Points      int             `json:"points,omitempty" binding:"omitempty,min=0"`
}

// BookingListQuery filters the back-office booking listing.
type BookingListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=CONFIRMED CANCELLED"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
}

// BookingResponse pairs the stored booking with the breakdown that
// produced it.
type BookingResponse struct {
	Booking   *Booking           `json:"booking"`
	Breakdown *pricing.Breakdown `json:"breakdown,omitempty"`
}
