package genres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, genre *Genre) error
	GetByID(ctx context.Context, id uuid.UUID) (*Genre, error)
	GetBySlug(ctx context.Context, slug string) (*Genre, error)
	GetByNames(ctx context.Context, names []string) ([]Genre, error)
	GetActive(ctx context.Context) ([]Genre, error)
	Update(ctx context.Context, genre *Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, genre *Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Genre, error) {
	var genre Genre
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Genre, error) {
	var genre Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *repository) GetByNames(ctx context.Context, names []string) ([]Genre, error) {
	var found []Genre
	err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Where("is_active = ?", true).
		Find(&found).Error
	return found, err
}

func (r *repository) GetActive(ctx context.Context) ([]Genre, error) {
	var found []Genre
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&found).Error
	return found, err
}

func (r *repository) Update(ctx context.Context, genre *Genre) error {
	return r.db.WithContext(ctx).Save(genre).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Genre{}, "id = ?", id).Error
}
