package showtimes

import (
	"time"

	"cinebook/internal/cinemas"
	"cinebook/internal/movies"
	"cinebook/internal/pricing"

	"github.com/google/uuid"
)

type Showtime struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MovieID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"movie_id"`
	Movie     *movies.Movie `gorm:"foreignKey:MovieID" json:"movie,omitempty"`
	RoomID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"room_id"`
	Room      *cinemas.Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	StartTime time.Time     `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time     `gorm:"not null" json:"end_time"`
	BasePrice pricing.Money `gorm:"not null" json:"base_price"`
	Status    Status        `gorm:"type:varchar(20);not null;default:'SCHEDULED'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type CreateShowtimeRequest struct {
	MovieID   string        `json:"movie_id" binding:"required,uuid"`
	RoomID    string        `json:"room_id" binding:"required,uuid"`
	StartTime time.Time     `json:"start_time" binding:"required"`
	BasePrice pricing.Money `json:"base_price" binding:"required,min=1"`
}

type UpdateShowtimeRequest struct {
	StartTime *time.Time     `json:"start_time"`
	BasePrice *pricing.Money `json:"base_price" binding:"omitempty,min=1"`
	Status    *string        `json:"status" binding:"omitempty,oneof=SCHEDULED OPEN CLOSED CANCELLED"`
}

type ShowtimeListQuery struct {
	MovieID string `form:"movie_id" binding:"omitempty,uuid"`
	RoomID  string `form:"room_id" binding:"omitempty,uuid"`
	Date    string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

type ShowtimeResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title,omitempty"`
	RoomID     string    `json:"room_id"`
	RoomName   string    `json:"room_name,omitempty"`
	CinemaID   string    `json:"cinema_id,omitempty"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	BasePrice  int64     `json:"base_price"`
	Status     Status    `json:"status"`
}

func (st *Showtime) ToResponse() ShowtimeResponse {
	resp := ShowtimeResponse{
		ID:        st.ID.String(),
		MovieID:   st.MovieID.String(),
		RoomID:    st.RoomID.String(),
		StartTime: st.StartTime,
		EndTime:   st.EndTime,
		BasePrice: int64(st.BasePrice),
		Status:    st.Status,
	}
	if st.Movie != nil {
		resp.MovieTitle = st.Movie.Title
	}
	if st.Room != nil {
		resp.RoomName = st.Room.Name
		resp.CinemaID = st.Room.CinemaID.String()
	}
	return resp
}
