package loyalty

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateAccount(ctx context.Context, account *Account) error
	GetAccountByUserID(ctx context.Context, userID uuid.UUID) (*Account, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID, limit int) ([]Transaction, error)
	RecordTransaction(ctx context.Context, tx *Transaction) error

	// DeductTx removes points inside the caller's transaction, guarded
	// so the balance can never go negative. Returns false when the
	// balance was insufficient.
	DeductTx(tx *gorm.DB, userID uuid.UUID, points int) (bool, error)
	// CreditTx adds points inside the caller's transaction.
	CreditTx(tx *gorm.DB, userID uuid.UUID, points int) error
	// RecordTransactionTx appends a ledger entry inside the caller's
	// transaction.
	RecordTransactionTx(tx *gorm.DB, entry *Transaction) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateAccount(ctx context.Context, account *Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repository) GetAccountByUserID(ctx context.Context, userID uuid.UUID) (*Account, error) {
	var account Account
	err := r.db.WithContext(ctx).First(&account, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) ListTransactions(ctx context.Context, accountID uuid.UUID, limit int) ([]Transaction, error) {
	var list []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *repository) RecordTransaction(ctx context.Context, entry *Transaction) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) DeductTx(tx *gorm.DB, userID uuid.UUID, points int) (bool, error) {
	result := tx.Model(&Account{}).
		Where("user_id = ? AND balance >= ?", userID, points).
		UpdateColumn("balance", gorm.Expr("balance - ?", points))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) CreditTx(tx *gorm.DB, userID uuid.UUID, points int) error {
	return tx.Model(&Account{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", points)).Error
}

func (r *repository) RecordTransactionTx(tx *gorm.DB, entry *Transaction) error {
	return tx.Create(entry).Error
}
