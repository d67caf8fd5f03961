package seats

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// BookedSeatIDs returns the seats already sold for a showtime.
	// Cancelled bookings do not block their seats.
	BookedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) BookedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("tickets").
		Joins("JOIN bookings ON bookings.id = tickets.booking_id").
		Where("tickets.showtime_id = ?", showtimeID).
		Where("bookings.status != ?", "CANCELLED").
		Pluck("tickets.seat_id", &ids).Error
	return ids, err
}
