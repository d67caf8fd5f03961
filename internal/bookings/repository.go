package bookings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/users"
)

type Repository interface {
	CreateTx(tx *gorm.DB, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	List(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	CancelTx(tx *gorm.DB, id uuid.UUID) (bool, error)
	SetPointsEarnedTx(tx *gorm.DB, id uuid.UUID, points int) error
	GetUser(ctx context.Context, id uuid.UUID) (*users.User, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTx(tx *gorm.DB, booking *Booking) error {
	return tx.Create(booking).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Tickets").
		Preload("Lines").
		Preload("Showtime").
		Preload("Showtime.Movie").
		Preload("Showtime.Room").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Tickets").
		Preload("Showtime").
		Preload("Showtime.Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) List(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&Booking{})
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []Booking
	offset := (query.Page - 1) * query.Limit
	err := q.Preload("Tickets").
		Preload("Showtime").
		Preload("Showtime.Movie").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error
	return bookings, total, err
}

// CancelTx flips a confirmed booking to cancelled. The status guard in
// the WHERE clause makes concurrent cancellations race-safe.
func (r *repository) CancelTx(tx *gorm.DB, id uuid.UUID) (bool, error) {
	result := tx.Model(&Booking{}).
		Where("id = ? AND status = ?", id, BookingStatusConfirmed).
		UpdateColumn("status", BookingStatusCancelled)
	if result.Error != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) SetPointsEarnedTx(tx *gorm.DB, id uuid.UUID, points int) error {
	return tx.Model(&Booking{}).
		Where("id = ?", id).
		UpdateColumn("points_earned", points).Error
}

func (r *repository) GetUser(ctx context.Context, id uuid.UUID) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
