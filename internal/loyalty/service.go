package loyalty

import (
	"context"
	"errors"
	"fmt"

	"cinebook/internal/pricing"
	"cinebook/internal/shared/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound    = errors.New("loyalty account not found")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
)

type Service interface {
	// EnsureAccount creates the member's account on first touch, with
	// the configured signup bonus.
	EnsureAccount(ctx context.Context, userID uuid.UUID) (*Account, error)
	GetAccount(ctx context.Context, userID uuid.UUID) (*AccountResponse, error)
	GetHistory(ctx context.Context, userID uuid.UUID, limit int) ([]Transaction, error)

	// RedemptionFor builds the checkout discount for a points spend,
	// after checking the member's balance covers it.
	RedemptionFor(ctx context.Context, userID uuid.UUID, points int) (pricing.LoyaltyRedemption, error)

	// DeductTx spends points inside the caller's transaction; the
	// guarded update keeps the balance non-negative under concurrency.
	DeductTx(tx *gorm.DB, userID uuid.UUID, bookingID uuid.UUID, points int) error
	// EarnTx credits points for a completed booking inside the caller's
	// transaction.
	EarnTx(tx *gorm.DB, userID uuid.UUID, bookingID uuid.UUID, total pricing.Money) (int, error)
	// RefundTx returns previously spent points when a booking is
	// cancelled.
	RefundTx(tx *gorm.DB, userID uuid.UUID, bookingID uuid.UUID, points int) error

	PointValue() pricing.Money
}

type service struct {
	repo Repository
	cfg  config.LoyaltyConfig
}

func NewService(repo Repository, cfg config.LoyaltyConfig) Service {
	return &service{repo: repo, cfg: cfg}
}

func (s *service) EnsureAccount(ctx context.Context, userID uuid.UUID) (*Account, error) {
	account, err := s.repo.GetAccountByUserID(ctx, userID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	account = &Account{UserID: userID, Balance: s.cfg.SignupBonus}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create loyalty account: %w", err)
	}
	if s.cfg.SignupBonus > 0 {
		entry := &Transaction{
			AccountID: account.ID,
			Type:      TxBonus,
			Points:    s.cfg.SignupBonus,
			Note:      "signup bonus",
		}
		if err := s.repo.RecordTransaction(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record signup bonus: %w", err)
		}
	}
	return account, nil
}

func (s *service) GetAccount(ctx context.Context, userID uuid.UUID) (*AccountResponse, error) {
	account, err := s.EnsureAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &AccountResponse{
		Balance:    account.Balance,
		PointValue: s.cfg.PointValue,
	}, nil
}

func (s *service) GetHistory(ctx context.Context, userID uuid.UUID, limit int) ([]Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	account, err := s.repo.GetAccountByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return s.repo.ListTransactions(ctx, account.ID, limit)
}

func (s *service) RedemptionFor(ctx context.Context, userID uuid.UUID, points int) (pricing.LoyaltyRedemption, error) {
	account, err := s.repo.GetAccountByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pricing.LoyaltyRedemption{}, ErrAccountNotFound
		}
		return pricing.LoyaltyRedemption{}, err
	}
	if account.Balance < points {
		return pricing.LoyaltyRedemption{}, ErrInsufficientPoints
	}
	return pricing.LoyaltyRedemption{
		Points:     points,
		PointValue: pricing.Money(s.cfg.PointValue),
	}, nil
}

func (s *service) DeductTx(tx *gorm.DB, userID uuid.UUID, bookingID uuid.UUID, points int) error {
	ok, err := s.repo.DeductTx(tx, userID, points)
	if err != nil {
		return fmt.Errorf("failed to deduct points: %w", err)
	}
	if !ok {
		return ErrInsufficientPoints
	}
	return s.recordTx(tx, userID, bookingID, TxRedeem, -points, "points redeemed at checkout")
}

func (s *service) EarnTx(tx *gorm.DB, userID uuid.UUID, bookingID uuid.UUID, total pricing.Money) (int, error) {
	earned := int(float64(total/1000) * s.cfg.EarnRate)
	if earned <= 0 {
		return 0, nil
	}
	if err := s.repo.CreditTx(tx, userID, earned); err != nil {
		return 0, fmt.Errorf("failed to credit points: %w", err)
	}
	if err := s.recordTx(tx, userID, bookingID, TxEarn, earned, "points earned from booking"); err != nil {
		return 0, err
	}
	return earned, nil
}

func (s *service) RefundTx(tx *gorm.DB, userID uuid.UUID, bookingID uuid.UUID, points int) error {
	if points <= 0 {
		return nil
	}
	if err := s.repo.CreditTx(tx, userID, points); err != nil {
		return fmt.Errorf("failed to refund points: %w", err)
	}
	return s.recordTx(tx, userID, bookingID, TxRefund, points, "points returned after cancellation")
}

func (s *service) PointValue() pricing.Money {
	return pricing.Money(s.cfg.PointValue)
}

func (s *service) recordTx(tx *gorm.DB, userID, bookingID uuid.UUID, typ TransactionType, points int, note string) error {
	var account Account
	if err := tx.First(&account, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to load account for ledger entry: %w", err)
	}
	entry := &Transaction{
		AccountID: account.ID,
		BookingID: &bookingID,
		Type:      typ,
		Points:    points,
		Note:      note,
	}
	if err := s.repo.RecordTransactionTx(tx, entry); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}
	return nil
}
