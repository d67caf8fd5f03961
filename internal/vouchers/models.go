package vouchers

import (
	"strings"
	"time"

	"cinebook/internal/pricing"

	"github.com/google/uuid"
)

type Voucher struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code        string               `gorm:"uniqueIndex;not null" json:"code"`
	Description string               `json:"description"`
	Type        pricing.DiscountType `gorm:"type:varchar(20);not null" json:"type"`
	Value       float64              `gorm:"not null" json:"value"`
	MinOrder    pricing.Money        `gorm:"not null;default:0" json:"min_order"`
	MaxDiscount *pricing.Money       `json:"max_discount,omitempty"`
	ValidFrom   time.Time            `gorm:"not null" json:"valid_from"`
	ValidTo     time.Time            `gorm:"not null;index" json:"valid_to"`
	UsageLimit  int                  `gorm:"not null" json:"usage_limit"`
	UsedCount   int                  `gorm:"not null;default:0" json:"used_count"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToDiscount converts the record to its checkout discount form, with
// UsedCount as a point-in-time snapshot.
func (v *Voucher) ToDiscount() pricing.VoucherDiscount {
	return pricing.VoucherDiscount{
		Code:        v.Code,
		Type:        v.Type,
		Value:       v.Value,
		MinOrder:    v.MinOrder,
		MaxDiscount: v.MaxDiscount,
		ValidFrom:   v.ValidFrom,
		ValidTo:     v.ValidTo,
		UsageLimit:  v.UsageLimit,
		UsedCount:   v.UsedCount,
	}
}

// NormalizeCode uppercases and trims a user-supplied voucher code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type CreateVoucherRequest struct {
	Code        string         `json:"code" binding:"required,min=3,max=50"`
	Description string         `json:"description" binding:"max=1000"`
	Type        string         `json:"type" binding:"required,oneof=PERCENTAGE FIXED"`
	Value       float64        `json:"value" binding:"required,gt=0"`
	MinOrder    pricing.Money  `json:"min_order" binding:"min=0"`
	MaxDiscount *pricing.Money `json:"max_discount" binding:"omitempty,min=1"`
	ValidFrom   time.Time      `json:"valid_from" binding:"required"`
	ValidTo     time.Time      `json:"valid_to" binding:"required,gtfield=ValidFrom"`
	UsageLimit  int            `json:"usage_limit" binding:"required,min=1"`
}

type UpdateVoucherRequest struct {
	Description *string        `json:"description" binding:"omitempty,max=1000"`
	MinOrder    *pricing.Money `json:"min_order" binding:"omitempty,min=0"`
	MaxDiscount *pricing.Money `json:"max_discount" binding:"omitempty,min=1"`
	ValidTo     *time.Time     `json:"valid_to"`
	UsageLimit  *int           `json:"usage_limit" binding:"omitempty,min=1"`
}

type ValidateVoucherRequest struct {
	Code     string        `json:"code" binding:"required"`
	Subtotal pricing.Money `json:"subtotal" binding:"required,min=1"`
}

type ValidateVoucherResponse struct {
	Code     string `json:"code"`
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
	Discount int64  `json:"discount"`
}
