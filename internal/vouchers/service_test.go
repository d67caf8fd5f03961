package vouchers

import (
	"context"
	"testing"
	"time"

	"cinebook/internal/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byCode map[string]*Voucher
}

func newFakeRepo(vouchers ...*Voucher) *fakeRepo {
	r := &fakeRepo{byCode: make(map[string]*Voucher)}
	for _, v := range vouchers {
		r.byCode[v.Code] = v
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, v *Voucher) error {
	if _, ok := r.byCode[v.Code]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.byCode[v.Code] = v
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Voucher, error) {
	for _, v := range r.byCode {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetByCode(_ context.Context, code string) (*Voucher, error) {
	if v, ok := r.byCode[code]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) List(context.Context) ([]Voucher, error) { return nil, nil }

func (r *fakeRepo) Update(_ context.Context, v *Voucher) error {
	r.byCode[v.Code] = v
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

func (r *fakeRepo) RedeemTx(_ *gorm.DB, code string) (bool, error) {
	v, ok := r.byCode[code]
	if !ok || v.UsedCount >= v.UsageLimit {
		return false, nil
	}
	v.UsedCount++
	return true, nil
}

func (r *fakeRepo) ReleaseTx(_ *gorm.DB, code string) error {
	if v, ok := r.byCode[code]; ok && v.UsedCount > 0 {
		v.UsedCount--
	}
	return nil
}

var checkoutTime = time.Date(2025, 6, 15, 19, 30, 0, 0, time.UTC)

func testVoucher() *Voucher {
	return &Voucher{
		ID:         uuid.New(),
		Code:       "WELCOME10",
		Type:       pricing.DiscountPercentage,
		Value:      10,
		MinOrder:   100000,
		ValidFrom:  checkoutTime.Add(-24 * time.Hour),
		ValidTo:    checkoutTime.Add(24 * time.Hour),
		UsageLimit: 2,
	}
}

func TestValidate_EligibleComputesDiscount(t *testing.T) {
	svc := NewService(newFakeRepo(testVoucher()))

	result, err := svc.Validate(context.Background(), "welcome10", 500000, checkoutTime)
	require.NoError(t, err)

	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reason)
	assert.Equal(t, int64(50000), result.Discount)
}

func TestValidate_BelowMinimumReportsReason(t *testing.T) {
	svc := NewService(newFakeRepo(testVoucher()))

	result, err := svc.Validate(context.Background(), "WELCOME10", 50000, checkoutTime)
	require.NoError(t, err)

	assert.False(t, result.Eligible)
	assert.Equal(t, pricing.ReasonBelowMinimum, result.Reason)
	assert.Zero(t, result.Discount)
}

func TestValidate_ExpiredReportsReason(t *testing.T) {
	v := testVoucher()
	v.ValidTo = checkoutTime.Add(-time.Hour)
	svc := NewService(newFakeRepo(v))

	result, err := svc.Validate(context.Background(), "WELCOME10", 500000, checkoutTime)
	require.NoError(t, err)

	assert.False(t, result.Eligible)
	assert.Equal(t, pricing.ReasonExpired, result.Reason)
}

func TestValidate_UnknownCode(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Validate(context.Background(), "NOPE", 500000, checkoutTime)
	assert.ErrorIs(t, err, ErrVoucherNotFound)
}

func TestValidate_DoesNotConsumeUse(t *testing.T) {
	v := testVoucher()
	svc := NewService(newFakeRepo(v))

	for i := 0; i < 5; i++ {
		_, err := svc.Validate(context.Background(), "WELCOME10", 500000, checkoutTime)
		require.NoError(t, err)
	}
	assert.Zero(t, v.UsedCount)
}

func TestRedeemTx_StopsAtUsageLimit(t *testing.T) {
	v := testVoucher()
	svc := NewService(newFakeRepo(v))

	require.NoError(t, svc.RedeemTx(nil, "WELCOME10"))
	require.NoError(t, svc.RedeemTx(nil, "WELCOME10"))

	err := svc.RedeemTx(nil, "WELCOME10")
	assert.ErrorIs(t, err, ErrVoucherConsumed)
	assert.Equal(t, 2, v.UsedCount)
}

func TestReleaseTx_ReturnsAUse(t *testing.T) {
	v := testVoucher()
	v.UsedCount = 2
	svc := NewService(newFakeRepo(v))

	require.NoError(t, svc.ReleaseTx(nil, "WELCOME10"))
	assert.Equal(t, 1, v.UsedCount)

	require.NoError(t, svc.RedeemTx(nil, "WELCOME10"))
	assert.Equal(t, 2, v.UsedCount)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "WELCOME10", NormalizeCode("  welcome10 "))
}
