package vouchers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinebook/internal/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrVoucherNotFound = errors.New("voucher not found")
	ErrVoucherExists   = errors.New("voucher code already exists")
	ErrVoucherConsumed = errors.New("voucher usage limit reached")
)

type Service interface {
	CreateVoucher(ctx context.Context, req CreateVoucherRequest) (*Voucher, error)
	GetVoucher(ctx context.Context, id uuid.UUID) (*Voucher, error)
	GetByCode(ctx context.Context, code string) (*Voucher, error)
	ListVouchers(ctx context.Context) ([]Voucher, error)
	UpdateVoucher(ctx context.Context, id uuid.UUID, req UpdateVoucherRequest) (*Voucher, error)
	DeleteVoucher(ctx context.Context, id uuid.UUID) error

	// Validate previews a voucher against an order subtotal without
	// consuming a use.
	Validate(ctx context.Context, code string, subtotal pricing.Money, now time.Time) (*ValidateVoucherResponse, error)

	// RedeemTx consumes one use inside the caller's transaction. The
	// guarded update means two concurrent redemptions of the last use
	// cannot both succeed.
	RedeemTx(tx *gorm.DB, code string) error
	ReleaseTx(tx *gorm.DB, code string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateVoucher(ctx context.Context, req CreateVoucherRequest) (*Voucher, error) {
	voucher := &Voucher{
		Code:        NormalizeCode(req.Code),
		Description: req.Description,
		Type:        pricing.DiscountType(req.Type),
		Value:       req.Value,
		MinOrder:    req.MinOrder,
		MaxDiscount: req.MaxDiscount,
		ValidFrom:   req.ValidFrom,
		ValidTo:     req.ValidTo,
		UsageLimit:  req.UsageLimit,
	}
	if err := s.repo.Create(ctx, voucher); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrVoucherExists
		}
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}
	return voucher, nil
}

func (s *service) GetVoucher(ctx context.Context, id uuid.UUID) (*Voucher, error) {
	voucher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return voucher, nil
}

func (s *service) GetByCode(ctx context.Context, code string) (*Voucher, error) {
	voucher, err := s.repo.GetByCode(ctx, NormalizeCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return voucher, nil
}

func (s *service) ListVouchers(ctx context.Context) ([]Voucher, error) {
	vouchers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}

func (s *service) UpdateVoucher(ctx context.Context, id uuid.UUID, req UpdateVoucherRequest) (*Voucher, error) {
	voucher, err := s.GetVoucher(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		voucher.Description = *req.Description
	}
	if req.MinOrder != nil {
		voucher.MinOrder = *req.MinOrder
	}
	if req.MaxDiscount != nil {
		voucher.MaxDiscount = req.MaxDiscount
	}
	if req.ValidTo != nil {
		voucher.ValidTo = *req.ValidTo
	}
	if req.UsageLimit != nil {
		voucher.UsageLimit = *req.UsageLimit
	}

	if err := s.repo.Update(ctx, voucher); err != nil {
		return nil, fmt.Errorf("failed to update voucher: %w", err)
	}
	return voucher, nil
}

func (s *service) DeleteVoucher(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetVoucher(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete voucher: %w", err)
	}
	return nil
}

func (s *service) Validate(ctx context.Context, code string, subtotal pricing.Money, now time.Time) (*ValidateVoucherResponse, error) {
	voucher, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	discount := voucher.ToDiscount()
	resp := &ValidateVoucherResponse{Code: voucher.Code}
	if ok, reason := discount.Eligible(subtotal, now); !ok {
		resp.Reason = reason
		return resp, nil
	}
	resp.Eligible = true
	resp.Discount = int64(discount.Amount(subtotal))
	return resp, nil
}

func (s *service) RedeemTx(tx *gorm.DB, code string) error {
	ok, err := s.repo.RedeemTx(tx, NormalizeCode(code))
	if err != nil {
		return fmt.Errorf("failed to redeem voucher: %w", err)
	}
	if !ok {
		return ErrVoucherConsumed
	}
	return nil
}

func (s *service) ReleaseTx(tx *gorm.DB, code string) error {
	if err := s.repo.ReleaseTx(tx, NormalizeCode(code)); err != nil {
		return fmt.Errorf("failed to release voucher use: %w", err)
	}
	return nil
}
