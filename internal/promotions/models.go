package promotions

import (
	"time"

	"cinebook/internal/pricing"

	"github.com/google/uuid"
)

type PromotionStatus string

const (
	StatusActive   PromotionStatus = "ACTIVE"
	StatusInactive PromotionStatus = "INACTIVE"
)

type Promotion struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string               `gorm:"uniqueIndex;not null" json:"name"`
	Description string               `json:"description"`
	Type        pricing.DiscountType `gorm:"type:varchar(20);not null" json:"type"`
	Value       float64              `gorm:"not null" json:"value"`
	MinPurchase pricing.Money        `gorm:"not null;default:0" json:"min_purchase"`
	StartTime   time.Time            `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time            `gorm:"not null;index" json:"end_time"`
	Status      PromotionStatus      `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToDiscount converts the record to its checkout discount form.
func (p *Promotion) ToDiscount() pricing.PromotionDiscount {
	return pricing.PromotionDiscount{
		Name:        p.Name,
		Type:        p.Type,
		Value:       p.Value,
		MinPurchase: p.MinPurchase,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
	}
}

type CreatePromotionRequest struct {
	Name        string        `json:"name" binding:"required,min=2,max=255"`
	Description string        `json:"description" binding:"max=1000"`
	Type        string        `json:"type" binding:"required,oneof=PERCENTAGE FIXED"`
	Value       float64       `json:"value" binding:"required,gt=0"`
	MinPurchase pricing.Money `json:"min_purchase" binding:"min=0"`
	StartTime   time.Time     `json:"start_time" binding:"required"`
	EndTime     time.Time     `json:"end_time" binding:"required,gtfield=StartTime"`
}

type UpdatePromotionRequest struct {
	Name        *string        `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string        `json:"description" binding:"omitempty,max=1000"`
	Type        *string        `json:"type" binding:"omitempty,oneof=PERCENTAGE FIXED"`
	Value       *float64       `json:"value" binding:"omitempty,gt=0"`
	MinPurchase *pricing.Money `json:"min_purchase" binding:"omitempty,min=0"`
	StartTime   *time.Time     `json:"start_time"`
	EndTime     *time.Time     `json:"end_time"`
	Status      *string        `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}
