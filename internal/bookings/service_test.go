package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cinebook/internal/catalog"
	"cinebook/internal/cinemas"
	"cinebook/internal/loyalty"
	"cinebook/internal/notifications"
	"cinebook/internal/pricing"
	"cinebook/internal/seats"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"
	"cinebook/internal/vouchers"
	"cinebook/pkg/logger"
)

var (
	testUserID     = uuid.New()
	testShowtimeID = uuid.New()
	testRoomID     = uuid.New()
	testSeatA      = uuid.New()
	testSeatB      = uuid.New()
	testComboID    = uuid.New()
	testSnackID    = uuid.New()
	testHoldID     = uuid.New().String()
)

// fixture wires the service against in-memory fakes. The default data
// is a showtime at 150000 base price in a room with a 20000 per-seat
// fee, a standard seat and a VIP seat with a 50000 surcharge.
type fixture struct {
	repo     *fakeRepo
	vouchers *fakeVouchers
	loyalty  *fakeLoyalty
	seats    *fakeSeats
	promos   *fakePromos
	service  Service
}

func newFixture() *fixture {
	f := &fixture{
		repo: &fakeRepo{bookings: make(map[uuid.UUID]*Booking)},
		vouchers: &fakeVouchers{
			byCode: map[string]*vouchers.Voucher{
				"SAVE10": {
					Code:       "SAVE10",
					Type:       pricing.DiscountPercentage,
					Value:      10,
					ValidFrom:  time.Now().Add(-time.Hour),
					ValidTo:    time.Now().Add(time.Hour),
					UsageLimit: 5,
				},
			},
		},
		loyalty: &fakeLoyalty{balance: 500, pointValue: 100},
		seats:   &fakeSeats{holdSeats: []uuid.UUID{testSeatA, testSeatB}},
		promos:  &fakePromos{},
	}
	f.service = NewService(
		f.repo,
		&fakeShowtimes{},
		&fakeRooms{},
		f.seats,
		&fakeCatalog{},
		f.vouchers,
		f.promos,
		f.loyalty,
		notifications.NewNoopService(),
		logger.New(),
	)
	return f
}

func previewRequest() PricePreviewRequest {
	return PricePreviewRequest{
		ShowtimeID: testShowtimeID.String(),
		SeatIDs:    []string{testSeatA.String(), testSeatB.String()},
	}
}

func TestPreviewPriceSeatsOnly(t *testing.T) {
	f := newFixture()

	breakdown, err := f.service.PreviewPrice(context.Background(), testUserID, previewRequest())
	require.NoError(t, err)

	// 150000 + (150000 + 50000) seats, plus 20000 room fee per seat
	assert.Equal(t, pricing.Money(350000), breakdown.TicketCost)
	assert.Equal(t, pricing.Money(40000), breakdown.RoomFeeTotal)
	assert.Equal(t, pricing.Money(390000), breakdown.Subtotal)
	assert.Equal(t, pricing.Money(390000), breakdown.FinalTotal)
	assert.Empty(t, breakdown.Applied)
}

func TestPreviewPriceStacksAllThreeSources(t *testing.T) {
	f := newFixture()
	f.promos.discounts = []pricing.DiscountSource{
		pricing.PromotionDiscount{
			Name:      "Midweek Deal",
			Type:      pricing.DiscountFixed,
			Value:     25000,
			StartTime: time.Now().Add(-time.Hour),
			EndTime:   time.Now().Add(time.Hour),
		},
	}

	req := previewRequest()
	req.Items = []ItemSelection{{ItemID: testComboID.String(), Quantity: 1}}
	req.VoucherCode = "SAVE10"
	req.Points = 100

	breakdown, err := f.service.PreviewPrice(context.Background(), testUserID, req)
	require.NoError(t, err)

	// subtotal 390000 + 80000 combo = 470000
	assert.Equal(t, pricing.Money(470000), breakdown.Subtotal)
	assert.Len(t, breakdown.Applied, 3)

	// each discount computed against the original subtotal
	applied := make(map[string]pricing.Money)
	for _, a := range breakdown.Applied {
		applied[a.Label] = a.Amount
	}
	assert.Equal(t, pricing.Money(10000), applied["points"])
	assert.Equal(t, pricing.Money(47000), applied["voucher"])
	assert.Equal(t, pricing.Money(25000), applied["promotion"])
	assert.Equal(t, pricing.Money(82000), breakdown.TotalDiscount)
	assert.Equal(t, pricing.Money(388000), breakdown.FinalTotal)
}

func TestPreviewPriceIsRepeatable(t *testing.T) {
	f := newFixture()
	req := previewRequest()
	req.VoucherCode = "SAVE10"

	first, err := f.service.PreviewPrice(context.Background(), testUserID, req)
	require.NoError(t, err)
	second, err := f.service.PreviewPrice(context.Background(), testUserID, req)
	require.NoError(t, err)

	assert.Equal(t, first.FinalTotal, second.FinalTotal)
	assert.Equal(t, first.TotalDiscount, second.TotalDiscount)
	assert.Zero(t, f.vouchers.redeemed, "preview must not consume voucher uses")
	assert.Zero(t, f.loyalty.deducted, "preview must not spend points")
}

func TestPreviewPriceUnknownVoucherIsRejectedNotFatal(t *testing.T) {
	f := newFixture()
	req := previewRequest()
	req.VoucherCode = "NOPE"

	breakdown, err := f.service.PreviewPrice(context.Background(), testUserID, req)
	require.NoError(t, err)

	assert.Equal(t, pricing.Money(390000), breakdown.FinalTotal)
	require.Len(t, breakdown.Rejected, 1)
	assert.Equal(t, "voucher", breakdown.Rejected[0].Label)
	assert.Equal(t, "not found", breakdown.Rejected[0].Reason)
}

func TestPreviewPriceInsufficientPointsIsRejectedNotFatal(t *testing.T) {
	f := newFixture()
	req := previewRequest()
	req.Points = 10000

	breakdown, err := f.service.PreviewPrice(context.Background(), testUserID, req)
	require.NoError(t, err)

	assert.Equal(t, pricing.Money(390000), breakdown.FinalTotal)
	require.Len(t, breakdown.Rejected, 1)
	assert.Equal(t, "points", breakdown.Rejected[0].Label)
}

func TestPreviewPriceUnavailableItemContributesZero(t *testing.T) {
	f := newFixture()
	req := previewRequest()
	req.Items = []ItemSelection{{ItemID: testSnackID.String(), Quantity: 3}}

	breakdown, err := f.service.PreviewPrice(context.Background(), testUserID, req)
	require.NoError(t, err)

	assert.Equal(t, pricing.Money(390000), breakdown.Subtotal)
	assert.Equal(t, pricing.Money(0), breakdown.SnackCost)
	assert.Contains(t, breakdown.StaleItems, testSnackID.String())
}

func TestPreviewPriceExpiredVoucherCarriesReason(t *testing.T) {
	f := newFixture()
	f.vouchers.byCode["OLD"] = &vouchers.Voucher{
		Code:       "OLD",
		Type:       pricing.DiscountFixed,
		Value:      5000,
		ValidFrom:  time.Now().Add(-48 * time.Hour),
		ValidTo:    time.Now().Add(-24 * time.Hour),
		UsageLimit: 5,
	}

	req := previewRequest()
	req.VoucherCode = "OLD"

	breakdown, err := f.service.PreviewPrice(context.Background(), testUserID, req)
	require.NoError(t, err)
	require.Len(t, breakdown.Rejected, 1)
	assert.Equal(t, pricing.ReasonExpired, breakdown.Rejected[0].Reason)
}

func TestConfirmBookingCommitsEverything(t *testing.T) {
	f := newFixture()

	req := ConfirmBookingRequest{
		ShowtimeID:  testShowtimeID.String(),
		HoldID:      testHoldID,
		Items:       []ItemSelection{{ItemID: testComboID.String(), Quantity: 2}},
		VoucherCode: "SAVE10",
		Points:      100,
	}

	result, err := f.service.ConfirmBooking(context.Background(), testUserID, req)
	require.NoError(t, err)

	booking := result.Booking
	assert.Equal(t, BookingStatusConfirmed, booking.Status)
	assert.Len(t, booking.Tickets, 2)
	require.Len(t, booking.Lines, 1)
	assert.Equal(t, 2, booking.Lines[0].Quantity)
	assert.Equal(t, pricing.Money(160000), booking.Lines[0].LineTotal)

	require.NotNil(t, booking.VoucherCode)
	assert.Equal(t, "SAVE10", *booking.VoucherCode)
	assert.Equal(t, 100, booking.PointsRedeemed)

	assert.Equal(t, 1, f.vouchers.redeemed)
	assert.Equal(t, 100, f.loyalty.deducted)
	assert.Positive(t, booking.PointsEarned)
	assert.True(t, f.seats.consumed, "hold must be released after commit")

	// subtotal 550000, voucher 55000, points 10000
	assert.Equal(t, pricing.Money(550000), booking.Subtotal)
	assert.Equal(t, pricing.Money(65000), booking.TotalDiscount)
	assert.Equal(t, pricing.Money(485000), booking.FinalTotal)
	assert.Equal(t, pricing.Money(55000), booking.VoucherDiscount)
	assert.Equal(t, pricing.Money(10000), booking.PointsDiscount)
	assert.True(t, strings.HasPrefix(booking.BookingRef, "CNB-"))
}

func TestConfirmBookingRejectedVoucherLeavesUsageAlone(t *testing.T) {
	f := newFixture()

	req := ConfirmBookingRequest{
		ShowtimeID:  testShowtimeID.String(),
		HoldID:      testHoldID,
		VoucherCode: "NOPE",
	}

	result, err := f.service.ConfirmBooking(context.Background(), testUserID, req)
	require.NoError(t, err)

	assert.Nil(t, result.Booking.VoucherCode)
	assert.Zero(t, f.vouchers.redeemed)
	assert.Equal(t, pricing.Money(390000), result.Booking.FinalTotal)
}

func TestConfirmBookingExpiredHoldFails(t *testing.T) {
	f := newFixture()
	f.seats.validateErr = seats.ErrHoldNotFound

	_, err := f.service.ConfirmBooking(context.Background(), testUserID, ConfirmBookingRequest{
		ShowtimeID: testShowtimeID.String(),
		HoldID:     testHoldID,
	})
	assert.ErrorIs(t, err, seats.ErrHoldNotFound)
	assert.Empty(t, f.repo.bookings)
}

func TestCancelBookingReturnsPointsAndVoucherUse(t *testing.T) {
	f := newFixture()

	confirmed, err := f.service.ConfirmBooking(context.Background(), testUserID, ConfirmBookingRequest{
		ShowtimeID:  testShowtimeID.String(),
		HoldID:      testHoldID,
		VoucherCode: "SAVE10",
		Points:      100,
	})
	require.NoError(t, err)

	cancelled, err := f.service.CancelBooking(context.Background(), testUserID, confirmed.Booking.ID, false)
	require.NoError(t, err)

	assert.Equal(t, BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, 100, f.loyalty.refunded)
	assert.Equal(t, 1, f.vouchers.released)

	_, err = f.service.CancelBooking(context.Background(), testUserID, confirmed.Booking.ID, false)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBookingOwnershipEnforced(t *testing.T) {
	f := newFixture()

	confirmed, err := f.service.ConfirmBooking(context.Background(), testUserID, ConfirmBookingRequest{
		ShowtimeID: testShowtimeID.String(),
		HoldID:     testHoldID,
	})
	require.NoError(t, err)

	_, err = f.service.CancelBooking(context.Background(), uuid.New(), confirmed.Booking.ID, false)
	assert.ErrorIs(t, err, ErrBookingNotOwned)

	// back-office callers can cancel on the customer's behalf
	cancelled, err := f.service.CancelBooking(context.Background(), uuid.New(), confirmed.Booking.ID, true)
	require.NoError(t, err)
	assert.Equal(t, BookingStatusCancelled, cancelled.Status)
}

// --- fakes ---

type fakeRepo struct {
	bookings map[uuid.UUID]*Booking
}

func (r *fakeRepo) CreateTx(tx *gorm.DB, booking *Booking) error {
	booking.ID = uuid.New()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *booking
	copied.Showtime = openShowtime()
	return &copied, nil
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var out []Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) List(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) CancelTx(tx *gorm.DB, id uuid.UUID) (bool, error) {
	booking, ok := r.bookings[id]
	if !ok || booking.Status != BookingStatusConfirmed {
		return false, nil
	}
	booking.Status = BookingStatusCancelled
	return true, nil
}

func (r *fakeRepo) SetPointsEarnedTx(tx *gorm.DB, id uuid.UUID, points int) error {
	if booking, ok := r.bookings[id]; ok {
		booking.PointsEarned = points
	}
	return nil
}

func (r *fakeRepo) GetUser(ctx context.Context, id uuid.UUID) (*users.User, error) {
	return &users.User{ID: id, FullName: "Test User", Email: "test@example.com"}, nil
}

func (r *fakeRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func openShowtime() *showtimes.Showtime {
	return &showtimes.Showtime{
		ID:        testShowtimeID,
		RoomID:    testRoomID,
		StartTime: time.Now().Add(4 * time.Hour),
		EndTime:   time.Now().Add(6 * time.Hour),
		BasePrice: 150000,
		Status:    showtimes.StatusOpen,
		Room:      &cinemas.Room{ID: testRoomID, RoomFee: 20000},
	}
}

type fakeShowtimes struct {
	showtimes.Service
}

func (f *fakeShowtimes) GetShowtime(ctx context.Context, id uuid.UUID) (*showtimes.Showtime, error) {
	if id != testShowtimeID {
		return nil, showtimes.ErrShowtimeNotFound
	}
	return openShowtime(), nil
}

type fakeRooms struct {
	cinemas.Service
}

func (f *fakeRooms) GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]cinemas.Seat, error) {
	all := map[uuid.UUID]cinemas.Seat{
		testSeatA: {ID: testSeatA, RoomID: testRoomID, Row: "A", Position: 1, Type: cinemas.SeatStandard},
		testSeatB: {ID: testSeatB, RoomID: testRoomID, Row: "H", Position: 4, Type: cinemas.SeatVIP, Surcharge: 50000},
	}
	var out []cinemas.Seat
	for _, id := range ids {
		if seat, ok := all[id]; ok {
			out = append(out, seat)
		}
	}
	return out, nil
}

type fakeSeats struct {
	seats.Service
	holdSeats   []uuid.UUID
	validateErr error
	consumed    bool
}

func (f *fakeSeats) ValidateHold(ctx context.Context, userID, showtimeID uuid.UUID, holdID string) ([]uuid.UUID, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return f.holdSeats, nil
}

func (f *fakeSeats) ConsumeHold(ctx context.Context, userID, showtimeID uuid.UUID, holdID string) ([]uuid.UUID, error) {
	f.consumed = true
	return f.holdSeats, nil
}

type fakeCatalog struct {
	catalog.Service
}

func (f *fakeCatalog) GetItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Item, error) {
	all := map[uuid.UUID]catalog.Item{
		testComboID: {ID: testComboID, Name: "Family Combo", Kind: catalog.KindCombo, Price: 80000, Status: catalog.StatusAvailable},
		testSnackID: {ID: testSnackID, Name: "Caramel Popcorn", Kind: catalog.KindSnack, Price: 45000, Status: catalog.StatusUnavailable},
	}
	var out []catalog.Item
	for _, id := range ids {
		if item, ok := all[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeVouchers struct {
	vouchers.Service
	byCode   map[string]*vouchers.Voucher
	redeemed int
	released int
}

func (f *fakeVouchers) GetByCode(ctx context.Context, code string) (*vouchers.Voucher, error) {
	voucher, ok := f.byCode[vouchers.NormalizeCode(code)]
	if !ok {
		return nil, vouchers.ErrVoucherNotFound
	}
	return voucher, nil
}

func (f *fakeVouchers) RedeemTx(tx *gorm.DB, code string) error {
	f.redeemed++
	return nil
}

func (f *fakeVouchers) ReleaseTx(tx *gorm.DB, code string) error {
	f.released++
	return nil
}

type fakePromos struct {
	discounts []pricing.DiscountSource
}

func (f *fakePromos) ActiveDiscounts(ctx context.Context, at time.Time) ([]pricing.DiscountSource, error) {
	return f.discounts, nil
}

type fakeLoyalty struct {
	loyalty.Service
	balance    int
	pointValue pricing.Money
	deducted   int
	refunded   int
}

func (f *fakeLoyalty) RedemptionFor(ctx context.Context, userID uuid.UUID, points int) (pricing.LoyaltyRedemption, error) {
	if points > f.balance {
		return pricing.LoyaltyRedemption{}, loyalty.ErrInsufficientPoints
	}
	return pricing.LoyaltyRedemption{Points: points, PointValue: f.pointValue}, nil
}

func (f *fakeLoyalty) DeductTx(tx *gorm.DB, userID, bookingID uuid.UUID, points int) error {
	f.deducted += points
	return nil
}

func (f *fakeLoyalty) EarnTx(tx *gorm.DB, userID, bookingID uuid.UUID, total pricing.Money) (int, error) {
	return int(total / 10000), nil
}

func (f *fakeLoyalty) RefundTx(tx *gorm.DB, userID, bookingID uuid.UUID, points int) error {
	f.refunded += points
	return nil
}
