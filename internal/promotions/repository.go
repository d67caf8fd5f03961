package promotions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, promotion *Promotion) error
	GetByID(ctx context.Context, id uuid.UUID) (*Promotion, error)
	List(ctx context.Context) ([]Promotion, error)
	ListActiveAt(ctx context.Context, at time.Time) ([]Promotion, error)
	Update(ctx context.Context, promotion *Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, promotion *Promotion) error {
	return r.db.WithContext(ctx).Create(promotion).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	var promotion Promotion
	if err := r.db.WithContext(ctx).First(&promotion, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *repository) List(ctx context.Context) ([]Promotion, error) {
	var promotions []Promotion
	err := r.db.WithContext(ctx).Order("start_time DESC").Find(&promotions).Error
	return promotions, err
}

func (r *repository) ListActiveAt(ctx context.Context, at time.Time) ([]Promotion, error) {
	var promotions []Promotion
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Where("start_time <= ? AND end_time >= ?", at, at).
		Order("start_time ASC").
		Find(&promotions).Error
	return promotions, err
}

func (r *repository) Update(ctx context.Context, promotion *Promotion) error {
	return r.db.WithContext(ctx).Save(promotion).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Promotion{}, "id = ?", id).Error
}
