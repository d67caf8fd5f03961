package catalog

import (
	"time"

	"cinebook/internal/pricing"

	"github.com/google/uuid"
)

type ItemKind string

const (
	KindCombo ItemKind = "combo"
	KindSnack ItemKind = "snack"
)

type ItemStatus string

const (
	StatusAvailable   ItemStatus = "AVAILABLE"
	StatusUnavailable ItemStatus = "UNAVAILABLE"
)

type Item struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string        `gorm:"uniqueIndex;not null" json:"name"`
	Description string        `json:"description"`
	Kind        ItemKind      `gorm:"type:varchar(10);not null;index" json:"kind"`
	Price       pricing.Money `gorm:"not null" json:"price"`
	Status      ItemStatus    `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
	ImageURL    string        `json:"image_url"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Available reports whether the item can currently be sold. Anything
// else contributes zero when a saved selection is re-priced.
func (i *Item) Available() bool {
	return i.Status == StatusAvailable
}

type CreateItemRequest struct {
	Name        string        `json:"name" binding:"required,min=2,max=255"`
	Description string        `json:"description" binding:"max=1000"`
	Kind        string        `json:"kind" binding:"required,oneof=combo snack"`
	Price       pricing.Money `json:"price" binding:"required,min=1"`
	ImageURL    string        `json:"image_url" binding:"omitempty,url"`
}

type UpdateItemRequest struct {
	Name        *string        `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string        `json:"description" binding:"omitempty,max=1000"`
	Price       *pricing.Money `json:"price" binding:"omitempty,min=1"`
	Status      *string        `json:"status" binding:"omitempty,oneof=AVAILABLE UNAVAILABLE"`
	ImageURL    *string        `json:"image_url" binding:"omitempty,url"`
}
