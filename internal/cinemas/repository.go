package cinemas

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, cinema *Cinema) error
	GetByID(ctx context.Context, id uuid.UUID) (*Cinema, error)
	ListActive(ctx context.Context, city string) ([]Cinema, error)
	Update(ctx context.Context, cinema *Cinema) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateRoomWithSeats(ctx context.Context, room *Room, seats []Seat) error
	GetRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	GetRoomWithSeats(ctx context.Context, id uuid.UUID) (*Room, error)
	UpdateRoom(ctx context.Context, room *Room) error
	DeleteRoom(ctx context.Context, id uuid.UUID) error

	GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]Seat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cinema *Cinema) error {
	return r.db.WithContext(ctx).Create(cinema).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Cinema, error) {
	var cinema Cinema
	err := r.db.WithContext(ctx).
		Preload("Rooms").
		First(&cinema, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cinema, nil
}

func (r *repository) ListActive(ctx context.Context, city string) ([]Cinema, error) {
	var cinemas []Cinema
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if city != "" {
		query = query.Where("city ILIKE ?", city)
	}
	err := query.Order("name ASC").Find(&cinemas).Error
	return cinemas, err
}

func (r *repository) Update(ctx context.Context, cinema *Cinema) error {
	return r.db.WithContext(ctx).Save(cinema).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Cinema{}, "id = ?", id).Error
}

func (r *repository) CreateRoomWithSeats(ctx context.Context, room *Room, seats []Seat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		for i := range seats {
			seats[i].RoomID = room.ID
		}
		return tx.CreateInBatches(seats, 200).Error
	})
}

func (r *repository) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repository) GetRoomWithSeats(ctx context.Context, id uuid.UUID) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).
		Preload("Seats", func(db *gorm.DB) *gorm.DB {
			return db.Order("row ASC, position ASC")
		}).
		First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repository) UpdateRoom(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *repository) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Room{}, "id = ?", id).Error
}

func (r *repository) GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&seats).Error
	return seats, err
}
