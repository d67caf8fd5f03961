package vouchers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, voucher *Voucher) error
	GetByID(ctx context.Context, id uuid.UUID) (*Voucher, error)
	GetByCode(ctx context.Context, code string) (*Voucher, error)
	List(ctx context.Context) ([]Voucher, error)
	Update(ctx context.Context, voucher *Voucher) error
	Delete(ctx context.Context, id uuid.UUID) error

	// RedeemTx increments used_count inside the caller's transaction,
	// guarded so the count can never pass the limit. Returns false when
	// the limit was already reached.
	RedeemTx(tx *gorm.DB, code string) (bool, error)
	// ReleaseTx returns a previously consumed use, e.g. when the booking
	// that redeemed it is cancelled.
	ReleaseTx(tx *gorm.DB, code string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, voucher *Voucher) error {
	return r.db.WithContext(ctx).Create(voucher).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Voucher, error) {
	var voucher Voucher
	if err := r.db.WithContext(ctx).First(&voucher, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Voucher, error) {
	var voucher Voucher
	if err := r.db.WithContext(ctx).First(&voucher, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *repository) List(ctx context.Context) ([]Voucher, error) {
	var result []Voucher
	err := r.db.WithContext(ctx).Order("valid_to DESC").Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, voucher *Voucher) error {
	return r.db.WithContext(ctx).Save(voucher).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Voucher{}, "id = ?", id).Error
}

func (r *repository) RedeemTx(tx *gorm.DB, code string) (bool, error) {
	result := tx.Model(&Voucher{}).
		Where("code = ? AND used_count < usage_limit", code).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) ReleaseTx(tx *gorm.DB, code string) error {
	return tx.Model(&Voucher{}).
		Where("code = ? AND used_count > 0", code).
		UpdateColumn("used_count", gorm.Expr("used_count - 1")).Error
}
