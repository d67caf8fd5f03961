package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)
	List(ctx context.Context, kind ItemKind, onlyAvailable bool) ([]Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	var item Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error) {
	var items []Item
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *repository) List(ctx context.Context, kind ItemKind, onlyAvailable bool) ([]Item, error) {
	db := r.db.WithContext(ctx)
	if kind != "" {
		db = db.Where("kind = ?", kind)
	}
	if onlyAvailable {
		db = db.Where("status = ?", StatusAvailable)
	}
	var items []Item
	err := db.Order("kind ASC, name ASC").Find(&items).Error
	return items, err
}

func (r *repository) Update(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Item{}, "id = ?", id).Error
}
