package loyalty

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TxEarn   TransactionType = "EARN"
	TxRedeem TransactionType = "REDEEM"
	TxBonus  TransactionType = "BONUS"
	TxRefund TransactionType = "REFUND"
)

type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Balance   int       `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Transaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	BookingID *uuid.UUID      `gorm:"type:uuid;index" json:"booking_id,omitempty"`
	Type      TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Points    int             `gorm:"not null" json:"points"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

type AccountResponse struct {
	Balance    int   `json:"balance"`
	PointValue int64 `json:"point_value"`
}
