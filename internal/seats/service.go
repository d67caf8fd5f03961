package seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/cinemas"
	"cinebook/internal/showtimes"

	"github.com/google/uuid"
)

var (
	ErrSeatAlreadyHeld   = errors.New("seat already held")
	ErrSeatAlreadyBooked = errors.New("seat already booked")
	ErrSeatNotInRoom     = errors.New("seat does not belong to the showtime room")
	ErrHoldNotFound      = errors.New("seat hold not found or expired")
	ErrHoldMismatch      = errors.New("hold does not match the request")
)

type Service interface {
	// GetSeatMap returns every seat of the showtime's room with its
	// effective state: booked from the tickets table, held from Redis.
	GetSeatMap(ctx context.Context, showtimeID uuid.UUID) (*SeatMapResponse, error)

	// HoldSeats places a short-lived hold on the requested seats.
	HoldSeats(ctx context.Context, userID uuid.UUID, req HoldSeatsRequest) (*HoldResponse, error)

	// ReleaseHold drops a hold before it expires.
	ReleaseHold(ctx context.Context, userID uuid.UUID, holdID string) error

	// ConsumeHold validates that a hold belongs to the user and the
	// showtime, returns its seats, and releases it. Called by the
	// booking flow after the tickets are committed.
	ConsumeHold(ctx context.Context, userID uuid.UUID, showtimeID uuid.UUID, holdID string) ([]uuid.UUID, error)

	// ValidateHold checks a hold without consuming it.
	ValidateHold(ctx context.Context, userID uuid.UUID, showtimeID uuid.UUID, holdID string) ([]uuid.UUID, error)
}

type service struct {
	repo            Repository
	atomicOps       *AtomicRedisOperations
	showtimeService showtimes.Service
	roomService     cinemas.Service
	holdTTL         time.Duration
}

func NewService(repo Repository, atomicOps *AtomicRedisOperations, showtimeService showtimes.Service, roomService cinemas.Service, holdTTL time.Duration) Service {
	return &service{
		repo:            repo,
		atomicOps:       atomicOps,
		showtimeService: showtimeService,
		roomService:     roomService,
		holdTTL:         holdTTL,
	}
}

func (s *service) GetSeatMap(ctx context.Context, showtimeID uuid.UUID) (*SeatMapResponse, error) {
	showtime, err := s.showtimeService.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	layout, err := s.roomService.GetRoomLayout(ctx, showtime.RoomID)
	if err != nil {
		return nil, err
	}

	bookedIDs, err := s.repo.BookedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked seats: %w", err)
	}
	booked := make(map[uuid.UUID]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}

	allIDs := make([]uuid.UUID, 0, len(layout.Seats))
	for _, seat := range layout.Seats {
		if id, err := uuid.Parse(seat.ID); err == nil {
			allIDs = append(allIDs, id)
		}
	}
	held, err := s.atomicOps.HeldSeatIDs(ctx, showtimeID.String(), allIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]SeatMapEntry, 0, len(layout.Seats))
	available := 0
	for _, seat := range layout.Seats {
		id, err := uuid.Parse(seat.ID)
		if err != nil {
			continue
		}
		state := StateAvailable
		switch {
		case booked[id]:
			state = StateBooked
		case held[id]:
			state = StateHeld
		default:
			available++
		}
		entries = append(entries, SeatMapEntry{
			ID:        seat.ID,
			Label:     seat.Label,
			Row:       seat.Row,
			Position:  seat.Position,
			Type:      seat.Type,
			Surcharge: seat.Surcharge,
			Price:     int64(showtime.BasePrice) + seat.Surcharge,
			State:     state,
		})
	}

	return &SeatMapResponse{
		ShowtimeID:  showtimeID.String(),
		RoomID:      layout.RoomID,
		RoomFee:     layout.RoomFee,
		BasePrice:   int64(showtime.BasePrice),
		Rows:        layout.Rows,
		SeatsPerRow: layout.SeatsPerRow,
		Available:   available,
		Seats:       entries,
	}, nil
}

func (s *service) HoldSeats(ctx context.Context, userID uuid.UUID, req HoldSeatsRequest) (*HoldResponse, error) {
	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime id: %w", err)
	}

	showtime, err := s.showtimeService.GetShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if !showtime.Status.Bookable() {
		return nil, showtimes.ErrShowtimeNotBookable
	}

	seatIDs := make([]uuid.UUID, 0, len(req.SeatIDs))
	for _, raw := range req.SeatIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid seat id %q: %w", raw, err)
		}
		seatIDs = append(seatIDs, id)
	}

	// Every seat must belong to the showtime's room
	seats, err := s.roomService.GetSeatsByIDs(ctx, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load seats: %w", err)
	}
	if len(seats) != len(seatIDs) {
		return nil, ErrSeatNotInRoom
	}
	for _, seat := range seats {
		if seat.RoomID != showtime.RoomID {
			return nil, ErrSeatNotInRoom
		}
	}

	// Reject seats already sold before touching Redis
	bookedIDs, err := s.repo.BookedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked seats: %w", err)
	}
	booked := make(map[uuid.UUID]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}
	for _, id := range seatIDs {
		if booked[id] {
			return nil, fmt.Errorf("%w: %s", ErrSeatAlreadyBooked, id)
		}
	}

	holdID := uuid.New().String()
	if err := s.atomicOps.AtomicHoldSeats(ctx, seatIDs, userID.String(), holdID, showtimeID.String(), s.holdTTL); err != nil {
		return nil, err
	}

	return &HoldResponse{
		HoldID:     holdID,
		ShowtimeID: showtimeID.String(),
		SeatIDs:    req.SeatIDs,
		ExpiresAt:  time.Now().Add(s.holdTTL),
		TTL:        int(s.holdTTL.Seconds()),
	}, nil
}

func (s *service) ReleaseHold(ctx context.Context, userID uuid.UUID, holdID string) error {
	hold, err := s.atomicOps.GetHold(ctx, holdID)
	if err != nil {
		return err
	}
	if hold.UserID != userID.String() {
		return ErrHoldMismatch
	}
	_, err = s.atomicOps.AtomicReleaseHold(ctx, holdID)
	return err
}

func (s *service) ValidateHold(ctx context.Context, userID uuid.UUID, showtimeID uuid.UUID, holdID string) ([]uuid.UUID, error) {
	hold, err := s.atomicOps.GetHold(ctx, holdID)
	if err != nil {
		return nil, err
	}
	if hold.UserID != userID.String() || hold.ShowtimeID != showtimeID.String() {
		return nil, ErrHoldMismatch
	}
	if len(hold.SeatIDs) == 0 {
		return nil, ErrHoldNotFound
	}
	return hold.SeatIDs, nil
}

func (s *service) ConsumeHold(ctx context.Context, userID uuid.UUID, showtimeID uuid.UUID, holdID string) ([]uuid.UUID, error) {
	seatIDs, err := s.ValidateHold(ctx, userID, showtimeID, holdID)
	if err != nil {
		return nil, err
	}
	if _, err := s.atomicOps.AtomicReleaseHold(ctx, holdID); err != nil {
		return nil, err
	}
	return seatIDs, nil
}
