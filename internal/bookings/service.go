package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/catalog"
	"cinebook/internal/cinemas"
	"cinebook/internal/loyalty"
	"cinebook/internal/notifications"
	"cinebook/internal/pricing"
	"cinebook/internal/seats"
	"cinebook/internal/showtimes"
	"cinebook/internal/vouchers"
	"cinebook/pkg/logger"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingNotOwned  = errors.New("booking belongs to another user")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrShowtimeStarted  = errors.New("showtime has already started")
	ErrSeatTaken        = errors.New("one or more seats were just booked by someone else")
	ErrNoSeatsSelected  = errors.New("no seats selected")
)

type Service interface {
	PreviewPrice(ctx context.Context, userID uuid.UUID, req PricePreviewRequest) (*pricing.Breakdown, error)
	ConfirmBooking(ctx context.Context, userID uuid.UUID, req ConfirmBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID, backOffice bool) (*Booking, error)
	ListMyBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID, backOffice bool) (*Booking, error)
}

type service struct {
	repo            Repository
	showtimeService showtimes.Service
	roomService     cinemas.Service
	seatService     seats.Service
	catalogService  catalog.Service
	voucherService  vouchers.Service
	promoService    promotionSource
	loyaltyService  loyalty.Service
	notifier        notifications.Service
	engine          *pricing.Engine
	log             *logger.Logger
}

// promotionSource is the slice of the promotion service the checkout needs.
type promotionSource interface {
	ActiveDiscounts(ctx context.Context, at time.Time) ([]pricing.DiscountSource, error)
}

func NewService(
	repo Repository,
	showtimeService showtimes.Service,
	roomService cinemas.Service,
	seatService seats.Service,
	catalogService catalog.Service,
	voucherService vouchers.Service,
	promoService promotionSource,
	loyaltyService loyalty.Service,
	notifier notifications.Service,
	log *logger.Logger,
) Service {
	return &service{
		repo:            repo,
		showtimeService: showtimeService,
		roomService:     roomService,
		seatService:     seatService,
		catalogService:  catalogService,
		voucherService:  voucherService,
		promoService:    promoService,
		loyaltyService:  loyaltyService,
		notifier:        notifier,
		engine:          pricing.NewEngine(),
		log:             log,
	}
}

// PreviewPrice computes the checkout breakdown without consuming
// anything: no voucher use, no points deduction, no seat state change.
// Calling it twice with the same inputs yields the same result.
func (s *service) PreviewPrice(ctx context.Context, userID uuid.UUID, req PricePreviewRequest) (*pricing.Breakdown, error) {
	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, showtimes.ErrShowtimeNotFound
	}

	showtime, err := s.showtimeService.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	seatIDs, err := s.resolveSeats(ctx, userID, showtimeID, req.HoldID, req.SeatIDs)
	if err != nil {
		return nil, err
	}

	sel, _, _, err := s.buildSelection(ctx, showtime, seatIDs, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sources, extraRejected, err := s.gatherSources(ctx, userID, req.VoucherCode, req.Points, now)
	if err != nil {
		return nil, err
	}

	breakdown := s.engine.Compute(sel, sources, now)
	breakdown.Rejected = append(breakdown.Rejected, extraRejected...)

	s.log.LogPricePreview(ctx, userID.String(),
		int64(breakdown.Subtotal), int64(breakdown.TotalDiscount), int64(breakdown.FinalTotal),
		len(breakdown.Rejected))

	return &breakdown, nil
}

// ConfirmBooking turns an active seat hold into a confirmed booking.
// The price is recomputed from fresh data; voucher redemption, point
// deduction, and ticket creation commit in one database transaction,
// and the Redis hold is released only after the commit succeeds.
func (s *service) ConfirmBooking(ctx context.Context, userID uuid.UUID, req ConfirmBookingRequest) (*BookingResponse, error) {
	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, showtimes.ErrShowtimeNotFound
	}

	showtime, err := s.showtimeService.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if !showtime.Status.Bookable() {
		return nil, showtimes.ErrShowtimeNotBookable
	}

	seatIDs, err := s.seatService.ValidateHold(ctx, userID, showtimeID, req.HoldID)
	if err != nil {
		return nil, err
	}

	sel, heldSeats, items, err := s.buildSelection(ctx, showtime, seatIDs, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sources, extraRejected, err := s.gatherSources(ctx, userID, req.VoucherCode, req.Points, now)
	if err != nil {
		return nil, err
	}

	breakdown := s.engine.Compute(sel, sources, now)
	breakdown.Rejected = append(breakdown.Rejected, extraRejected...)

	booking := s.buildBooking(userID, showtime, heldSeats, items, req, breakdown)

	voucherApplied := hasApplied(breakdown, "voucher")
	pointsApplied := hasApplied(breakdown, "points")

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, booking); err != nil {
			if isDuplicateSeat(err) {
				return ErrSeatTaken
			}
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if voucherApplied {
			if err := s.voucherService.RedeemTx(tx, req.VoucherCode); err != nil {
				return err
			}
		}

		if pointsApplied {
			if err := s.loyaltyService.DeductTx(tx, userID, booking.ID, req.Points); err != nil {
				return err
			}
		}

		earned, err := s.loyaltyService.EarnTx(tx, userID, booking.ID, breakdown.FinalTotal)
		if err != nil {
			return err
		}
		booking.PointsEarned = earned
		return s.repo.SetPointsEarnedTx(tx, booking.ID, earned)
	})
	if err != nil {
		return nil, err
	}

	// The hold already served its purpose; a failed release just means
	// the keys expire on their own TTL.
	if _, err := s.seatService.ConsumeHold(ctx, userID, showtimeID, req.HoldID); err != nil {
		s.log.ErrorWithContext(ctx, "failed to release consumed hold", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
			"hold_id":    req.HoldID,
		})
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), showtimeID.String(), userID.String(), int64(breakdown.FinalTotal))
	if voucherApplied {
		s.log.LogVoucherRedeemed(ctx, req.VoucherCode, booking.ID.String())
	}

	s.notifyConfirmed(ctx, booking, showtime)

	return &BookingResponse{Booking: booking, Breakdown: &breakdown}, nil
}

func (s *service) GetBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID, backOffice bool) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !backOffice && booking.UserID != userID {
		return nil, ErrBookingNotOwned
	}
	return booking, nil
}

func (s *service) ListMyBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.List(ctx, query)
}

// CancelBooking cancels a confirmed booking before its showtime starts,
// returning redeemed points and the voucher use in the same transaction
// that flips the status. Back-office callers may cancel any booking.
func (s *service) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID, backOffice bool) (*Booking, error) {
	booking, err := s.GetBooking(ctx, userID, bookingID, backOffice)
	if err != nil {
		return nil, err
	}
	if booking.Status == BookingStatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if booking.Showtime != nil && !booking.Showtime.StartTime.After(time.Now()) {
		return nil, ErrShowtimeStarted
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.CancelTx(tx, bookingID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyCancelled
		}

		if booking.PointsRedeemed > 0 {
			if err := s.loyaltyService.RefundTx(tx, booking.UserID, bookingID, booking.PointsRedeemed); err != nil {
				return err
			}
		}
		if booking.VoucherCode != nil {
			if err := s.voucherService.ReleaseTx(tx, *booking.VoucherCode); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = BookingStatusCancelled
	s.log.LogBookingCancelled(ctx, bookingID.String(), userID.String())
	s.notifyCancelled(ctx, booking)

	return booking, nil
}

// resolveSeats picks the seat list for a preview: the hold's seats when
// a hold id is given, the explicit list otherwise.
func (s *service) resolveSeats(ctx context.Context, userID, showtimeID uuid.UUID, holdID string, seatIDs []string) ([]uuid.UUID, error) {
	if holdID != "" {
		return s.seatService.ValidateHold(ctx, userID, showtimeID, holdID)
	}

	if len(seatIDs) == 0 {
		return nil, ErrNoSeatsSelected
	}
	ids := make([]uuid.UUID, 0, len(seatIDs))
	for _, raw := range seatIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, seats.ErrSeatNotInRoom
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// buildSelection assembles the priceable selection from fresh showtime,
// seat, and catalog data. Unavailable catalog items stay on the
// selection with their requested quantity so the breakdown can report
// them as stale.
func (s *service) buildSelection(ctx context.Context, showtime *showtimes.Showtime, seatIDs []uuid.UUID, items []ItemSelection) (*pricing.Selection, []cinemas.Seat, []catalog.Item, error) {
	if len(seatIDs) == 0 {
		return nil, nil, nil, ErrNoSeatsSelected
	}

	roomFee := pricing.Money(0)
	if showtime.Room != nil {
		roomFee = showtime.Room.RoomFee
	}
	sel := pricing.NewSelection(roomFee)

	seatRows, err := s.roomService.GetSeatsByIDs(ctx, seatIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load seats: %w", err)
	}
	if len(seatRows) != len(seatIDs) {
		return nil, nil, nil, seats.ErrSeatNotInRoom
	}
	for _, seat := range seatRows {
		if seat.RoomID != showtime.RoomID {
			return nil, nil, nil, seats.ErrSeatNotInRoom
		}
		if err := sel.AddLineItem(pricing.LineItem{
			Kind:         pricing.ItemSeat,
			Ref:          seat.Label(),
			UnitPrice:    showtime.BasePrice + seat.Surcharge,
			Quantity:     1,
			Availability: pricing.Available,
		}); err != nil {
			return nil, nil, nil, err
		}
	}

	if len(items) == 0 {
		return sel, seatRows, nil, nil
	}

	itemIDs := make([]uuid.UUID, 0, len(items))
	quantities := make(map[uuid.UUID]int, len(items))
	for _, row := range items {
		id, err := uuid.Parse(row.ItemID)
		if err != nil {
			return nil, nil, nil, catalog.ErrItemNotFound
		}
		itemIDs = append(itemIDs, id)
		quantities[id] += row.Quantity
	}

	catalogRows, err := s.catalogService.GetItemsByIDs(ctx, itemIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load catalog items: %w", err)
	}
	if len(catalogRows) != len(quantities) {
		return nil, nil, nil, catalog.ErrItemNotFound
	}

	for _, item := range catalogRows {
		kind := pricing.ItemSnack
		if item.Kind == catalog.KindCombo {
			kind = pricing.ItemCombo
		}
		availability := pricing.Available
		if !item.Available() {
			availability = pricing.Unavailable
		}
		if err := sel.AddLineItem(pricing.LineItem{
			Kind:         kind,
			Ref:          item.ID.String(),
			UnitPrice:    item.Price,
			Quantity:     quantities[item.ID],
			Availability: availability,
		}); err != nil {
			return nil, nil, nil, err
		}
	}

	return sel, seatRows, catalogRows, nil
}

// gatherSources collects the chosen discount sources. A voucher code
// that does not exist and a points balance that cannot cover the
// requested redemption are reported as rejections, not errors, so the
// rest of the computation proceeds.
func (s *service) gatherSources(ctx context.Context, userID uuid.UUID, voucherCode string, points int, now time.Time) ([]pricing.DiscountSource, []pricing.RejectedDiscount, error) {
	var sources []pricing.DiscountSource
	var rejected []pricing.RejectedDiscount

	if points > 0 {
		redemption, err := s.loyaltyService.RedemptionFor(ctx, userID, points)
		switch {
		case err == nil:
			sources = append(sources, redemption)
		case errors.Is(err, loyalty.ErrInsufficientPoints), errors.Is(err, loyalty.ErrAccountNotFound):
			rejected = append(rejected, pricing.RejectedDiscount{Label: "points", Reason: "insufficient points balance"})
		default:
			return nil, nil, err
		}
	}

	if voucherCode != "" {
		voucher, err := s.voucherService.GetByCode(ctx, voucherCode)
		switch {
		case err == nil:
			sources = append(sources, voucher.ToDiscount())
		case errors.Is(err, vouchers.ErrVoucherNotFound):
			rejected = append(rejected, pricing.RejectedDiscount{Label: "voucher", Reason: "not found"})
		default:
			return nil, nil, err
		}
	}

	promos, err := s.promoService.ActiveDiscounts(ctx, now)
	if err != nil {
		return nil, nil, err
	}
	sources = append(sources, promos...)

	return sources, rejected, nil
}

func (s *service) buildBooking(userID uuid.UUID, showtime *showtimes.Showtime, seatRows []cinemas.Seat, items []catalog.Item, req ConfirmBookingRequest, breakdown pricing.Breakdown) *Booking {
	booking := &Booking{
		UserID:        userID,
		ShowtimeID:    showtime.ID,
		BookingRef:    generateBookingRef(),
		Status:        BookingStatusConfirmed,
		Subtotal:      breakdown.Subtotal,
		TotalDiscount: breakdown.TotalDiscount,
		FinalTotal:    breakdown.FinalTotal,
	}

	for _, a := range breakdown.Applied {
		switch a.Label {
		case "points":
			booking.PointsDiscount += a.Amount
		case "voucher":
			booking.VoucherDiscount += a.Amount
		case "promotion":
			booking.PromotionDiscount += a.Amount
		}
	}

	if hasApplied(breakdown, "voucher") && req.VoucherCode != "" {
		code := vouchers.NormalizeCode(req.VoucherCode)
		booking.VoucherCode = &code
	}
	if hasApplied(breakdown, "points") {
		booking.PointsRedeemed = req.Points
	}

	for _, seat := range seatRows {
		booking.Tickets = append(booking.Tickets, Ticket{
			ShowtimeID: showtime.ID,
			SeatID:     seat.ID,
			SeatLabel:  seat.Label(),
			Price:      showtime.BasePrice + seat.Surcharge,
		})
	}

	quantities := make(map[string]int, len(req.Items))
	for _, row := range req.Items {
		quantities[row.ItemID] += row.Quantity
	}
	for _, item := range items {
		qty := quantities[item.ID.String()]
		if qty <= 0 || !item.Available() {
			continue
		}
		booking.Lines = append(booking.Lines, OrderLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Kind:      string(item.Kind),
			UnitPrice: item.Price,
			Quantity:  qty,
			LineTotal: item.Price * pricing.Money(qty),
		})
	}

	return booking
}

func (s *service) notifyConfirmed(ctx context.Context, booking *Booking, showtime *showtimes.Showtime) {
	user, err := s.repo.GetUser(ctx, booking.UserID)
	if err != nil {
		s.log.ErrorWithContext(ctx, "failed to load user for notification", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
		})
		return
	}

	seatLabels := make([]string, 0, len(booking.Tickets))
	for _, t := range booking.Tickets {
		seatLabels = append(seatLabels, t.SeatLabel)
	}

	data := map[string]interface{}{
		"booking_ref": booking.BookingRef,
		"seats":       strings.Join(seatLabels, ", "),
		"final_total": int64(booking.FinalTotal),
	}
	if showtime.Movie != nil {
		data["movie"] = showtime.Movie.Title
	}
	data["showtime"] = showtime.StartTime.Format(time.RFC1123)

	if err := s.notifier.NotifyBookingConfirmed(ctx, user.ID, user.Email, user.FullName, booking.ID, booking.ShowtimeID, data); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish booking confirmation", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
		})
	}
}

func (s *service) notifyCancelled(ctx context.Context, booking *Booking) {
	user, err := s.repo.GetUser(ctx, booking.UserID)
	if err != nil {
		s.log.ErrorWithContext(ctx, "failed to load user for notification", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
		})
		return
	}

	data := map[string]interface{}{
		"booking_ref":     booking.BookingRef,
		"refund_total":    int64(booking.FinalTotal),
		"points_returned": booking.PointsRedeemed,
	}

	if err := s.notifier.NotifyBookingCancelled(ctx, user.ID, user.Email, user.FullName, booking.ID, booking.ShowtimeID, data); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish booking cancellation", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
		})
	}
}

func hasApplied(b pricing.Breakdown, label string) bool {
	for _, a := range b.Applied {
		if a.Label == label {
			return true
		}
	}
	return false
}

func isDuplicateSeat(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}

// generateBookingRef produces a short human-readable reference such as
// CNB-20260829-QKZTRM.
func generateBookingRef() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	random := make([]byte, 6)
	for i := range random {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			short := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:12]
			return "CNB-" + short
		}
		random[i] = letters[n.Int64()]
	}
	return fmt.Sprintf("CNB-%s-%s", time.Now().Format("20060102"), string(random))
}
