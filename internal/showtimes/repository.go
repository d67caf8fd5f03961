package showtimes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, showtime *Showtime) error
	GetByID(ctx context.Context, id uuid.UUID) (*Showtime, error)
	List(ctx context.Context, query ShowtimeListQuery) ([]Showtime, error)
	Update(ctx context.Context, showtime *Showtime) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasOverlap(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, showtime *Showtime) error {
	return r.db.WithContext(ctx).Create(showtime).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	var showtime Showtime
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Preload("Room").
		First(&showtime, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &showtime, nil
}

func (r *repository) List(ctx context.Context, query ShowtimeListQuery) ([]Showtime, error) {
	db := r.db.WithContext(ctx).
		Preload("Movie").
		Preload("Room").
		Where("status NOT IN ?", []Status{StatusCancelled})

	if query.MovieID != "" {
		db = db.Where("movie_id = ?", query.MovieID)
	}
	if query.RoomID != "" {
		db = db.Where("room_id = ?", query.RoomID)
	}
	if query.Date != "" {
		day, err := time.Parse("2006-01-02", query.Date)
		if err == nil {
			db = db.Where("start_time >= ? AND start_time < ?", day, day.Add(24*time.Hour))
		}
	}

	var result []Showtime
	err := db.Order("start_time ASC").Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, showtime *Showtime) error {
	return r.db.WithContext(ctx).Save(showtime).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Showtime{}, "id = ?", id).Error
}

func (r *repository) HasOverlap(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&Showtime{}).
		Where("room_id = ?", roomID).
		Where("status != ?", StatusCancelled).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != uuid.Nil {
		db = db.Where("id != ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}
