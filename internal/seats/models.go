package seats

import "time"

// SeatState is the effective state of one seat for one showtime.
type SeatState string

const (
	StateAvailable SeatState = "AVAILABLE"
	StateHeld      SeatState = "HELD"
	StateBooked    SeatState = "BOOKED"
)

type HoldSeatsRequest struct {
	ShowtimeID string   `json:"showtime_id" binding:"required,uuid"`
	SeatIDs    []string `json:"seat_ids" binding:"required,min=1,max=10,dive,uuid"`
}

type HoldResponse struct {
	HoldID     string    `json:"hold_id"`
	ShowtimeID string    `json:"showtime_id"`
	SeatIDs    []string  `json:"seat_ids"`
	ExpiresAt  time.Time `json:"expires_at"`
	TTL        int       `json:"ttl_seconds"`
}

type SeatMapEntry struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Row       string    `json:"row"`
	Position  int       `json:"position"`
	Type      string    `json:"type"`
	Surcharge int64     `json:"surcharge"`
	Price     int64     `json:"price"`
	State     SeatState `json:"state"`
}

type SeatMapResponse struct {
	ShowtimeID  string         `json:"showtime_id"`
	RoomID      string         `json:"room_id"`
	RoomFee     int64          `json:"room_fee"`
	BasePrice   int64          `json:"base_price"`
	Rows        int            `json:"rows"`
	SeatsPerRow int            `json:"seats_per_row"`
	Available   int            `json:"available"`
	Seats       []SeatMapEntry `json:"seats"`
}
