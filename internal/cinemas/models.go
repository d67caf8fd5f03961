package cinemas

import (
	"fmt"
	"time"

	"cinebook/internal/pricing"

	"github.com/google/uuid"
)

type SeatType string

const (
	SeatStandard SeatType = "STANDARD"
	SeatVIP      SeatType = "VIP"
	SeatCouple   SeatType = "COUPLE"
)

type Cinema struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	City      string    `gorm:"not null;index" json:"city"`
	Address   string    `json:"address"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	Rooms     []Room    `gorm:"constraint:OnDelete:CASCADE;" json:"rooms,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Room struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CinemaID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"cinema_id"`
	Name        string        `gorm:"not null" json:"name"`
	RoomFee     pricing.Money `gorm:"not null;default:0" json:"room_fee"`
	Rows        int           `gorm:"not null" json:"rows"`
	SeatsPerRow int           `gorm:"not null" json:"seats_per_row"`
	Seats       []Seat        `gorm:"constraint:OnDelete:CASCADE;" json:"seats,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Seat struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoomID    uuid.UUID     `gorm:"type:uuid;not null;index:idx_seats_room_row_pos,unique" json:"room_id"`
	Row       string        `gorm:"not null;index:idx_seats_room_row_pos,unique" json:"row"`
	Position  int           `gorm:"not null;index:idx_seats_room_row_pos,unique" json:"position"`
	Type      SeatType      `gorm:"type:varchar(20);not null;default:'STANDARD'" json:"type"`
	Surcharge pricing.Money `gorm:"not null;default:0" json:"surcharge"`
	CreatedAt time.Time     `json:"created_at"`
}

// Label returns the display name of a seat, e.g. "A5".
func (s *Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Position)
}

type CreateCinemaRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=255"`
	City    string `json:"city" binding:"required,min=2,max=100"`
	Address string `json:"address" binding:"max=500"`
}

type UpdateCinemaRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	City     *string `json:"city" binding:"omitempty,min=2,max=100"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	IsActive *bool   `json:"is_active"`
}

type CreateRoomRequest struct {
	Name         string        `json:"name" binding:"required,min=1,max=100"`
	RoomFee      pricing.Money `json:"room_fee" binding:"min=0"`
	Rows         int           `json:"rows" binding:"required,min=1,max=40"`
	SeatsPerRow  int           `json:"seats_per_row" binding:"required,min=1,max=50"`
	VIPRows      int           `json:"vip_rows" binding:"min=0"`
	VIPSurcharge pricing.Money `json:"vip_surcharge" binding:"min=0"`
}

type UpdateRoomRequest struct {
	Name    *string        `json:"name" binding:"omitempty,min=1,max=100"`
	RoomFee *pricing.Money `json:"room_fee" binding:"omitempty,min=0"`
}

type RoomLayoutResponse struct {
	RoomID      string     `json:"room_id"`
	CinemaID    string     `json:"cinema_id"`
	Name        string     `json:"name"`
	RoomFee     int64      `json:"room_fee"`
	Rows        int        `json:"rows"`
	SeatsPerRow int        `json:"seats_per_row"`
	TotalSeats  int        `json:"total_seats"`
	Seats       []SeatInfo `json:"seats"`
}

type SeatInfo struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Row       string `json:"row"`
	Position  int    `json:"position"`
	Type      string `json:"type"`
	Surcharge int64  `json:"surcharge"`
}
