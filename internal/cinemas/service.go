package cinemas

import (
	"context"
	"errors"
	"fmt"

	"cinebook/internal/pricing"
	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCinemaNotFound = errors.New("cinema not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrInvalidLayout  = errors.New("invalid room layout")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateCinema(ctx context.Context, req CreateCinemaRequest) (*Cinema, error)
	GetCinema(ctx context.Context, id uuid.UUID) (*Cinema, error)
	ListCinemas(ctx context.Context, city string) ([]Cinema, error)
	UpdateCinema(ctx context.Context, id uuid.UUID, req UpdateCinemaRequest) (*Cinema, error)
	DeleteCinema(ctx context.Context, id uuid.UUID) error

	CreateRoom(ctx context.Context, cinemaID uuid.UUID, req CreateRoomRequest) (*RoomLayoutResponse, error)
	GetRoomLayout(ctx context.Context, roomID uuid.UUID) (*RoomLayoutResponse, error)
	GetRoom(ctx context.Context, roomID uuid.UUID) (*Room, error)
	UpdateRoom(ctx context.Context, roomID uuid.UUID, req UpdateRoomRequest) (*Room, error)
	DeleteRoom(ctx context.Context, roomID uuid.UUID) error

	GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]Seat, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateCinema(ctx context.Context, req CreateCinemaRequest) (*Cinema, error) {
	cinema := &Cinema{
		Name:     req.Name,
		City:     req.City,
		Address:  req.Address,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, cinema); err != nil {
		return nil, fmt.Errorf("failed to create cinema: %w", err)
	}
	return cinema, nil
}

func (s *service) GetCinema(ctx context.Context, id uuid.UUID) (*Cinema, error) {
	cinema, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCinemaNotFound
		}
		return nil, err
	}
	return cinema, nil
}

func (s *service) ListCinemas(ctx context.Context, city string) ([]Cinema, error) {
	cinemas, err := s.repo.ListActive(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("failed to list cinemas: %w", err)
	}
	return cinemas, nil
}

func (s *service) UpdateCinema(ctx context.Context, id uuid.UUID, req UpdateCinemaRequest) (*Cinema, error) {
	cinema, err := s.GetCinema(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cinema.Name = *req.Name
	}
	if req.City != nil {
		cinema.City = *req.City
	}
	if req.Address != nil {
		cinema.Address = *req.Address
	}
	if req.IsActive != nil {
		cinema.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, cinema); err != nil {
		return nil, fmt.Errorf("failed to update cinema: %w", err)
	}
	return cinema, nil
}

func (s *service) DeleteCinema(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCinema(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete cinema: %w", err)
	}
	return nil
}

func (s *service) CreateRoom(ctx context.Context, cinemaID uuid.UUID, req CreateRoomRequest) (*RoomLayoutResponse, error) {
	if _, err := s.GetCinema(ctx, cinemaID); err != nil {
		return nil, err
	}
	if req.VIPRows >= req.Rows {
		return nil, fmt.Errorf("%w: vip_rows must be less than rows", ErrInvalidLayout)
	}

	room := &Room{
		CinemaID:    cinemaID,
		Name:        req.Name,
		RoomFee:     req.RoomFee,
		Rows:        req.Rows,
		SeatsPerRow: req.SeatsPerRow,
	}
	seats := generateSeats(req)

	if err := s.repo.CreateRoomWithSeats(ctx, room, seats); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	s.invalidateSeatMapCache(ctx)
	return s.GetRoomLayout(ctx, room.ID)
}

// generateSeats builds the full seat grid for a room. Rows are labelled
// A, B, ... from the screen backwards; the last VIPRows rows get the VIP
// type and surcharge.
func generateSeats(req CreateRoomRequest) []Seat {
	seats := make([]Seat, 0, req.Rows*req.SeatsPerRow)
	for row := 0; row < req.Rows; row++ {
		seatType := SeatStandard
		var surcharge pricing.Money
		if row >= req.Rows-req.VIPRows {
			seatType = SeatVIP
			surcharge = req.VIPSurcharge
		}
		for pos := 1; pos <= req.SeatsPerRow; pos++ {
			seats = append(seats, Seat{
				Row:       rowLabel(row),
				Position:  pos,
				Type:      seatType,
				Surcharge: surcharge,
			})
		}
	}
	return seats
}

func (s *service) GetRoomLayout(ctx context.Context, roomID uuid.UUID) (*RoomLayoutResponse, error) {
	fetch := func() (interface{}, error) {
		room, err := s.repo.GetRoomWithSeats(ctx, roomID)
		if err != nil {
			return nil, err
		}
		return buildLayoutResponse(room), nil
	}

	if s.cacheService != nil {
		var cached RoomLayoutResponse
		key := constants.BuildRoomLayoutKey(roomID.String())
		err := s.cacheService.GetOrSet(ctx, key, constants.TTL_ROOM_LAYOUT, fetch, &cached)
		if err == nil {
			return &cached, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
	}

	result, err := fetch()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return result.(*RoomLayoutResponse), nil
}

func (s *service) GetRoom(ctx context.Context, roomID uuid.UUID) (*Room, error) {
	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *service) UpdateRoom(ctx context.Context, roomID uuid.UUID, req UpdateRoomRequest) (*Room, error) {
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.RoomFee != nil {
		room.RoomFee = *req.RoomFee
	}
	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	s.invalidateSeatMapCache(ctx)
	return room, nil
}

func (s *service) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return err
	}
	if err := s.repo.DeleteRoom(ctx, roomID); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	s.invalidateSeatMapCache(ctx)
	return nil
}

func (s *service) GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]Seat, error) {
	return s.repo.GetSeatsByIDs(ctx, ids)
}

func (s *service) invalidateSeatMapCache(ctx context.Context) {
	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ROOMS_ALL)
	}
}

func buildLayoutResponse(room *Room) *RoomLayoutResponse {
	seatInfos := make([]SeatInfo, 0, len(room.Seats))
	for _, seat := range room.Seats {
		seatInfos = append(seatInfos, SeatInfo{
			ID:        seat.ID.String(),
			Label:     seat.Label(),
			Row:       seat.Row,
			Position:  seat.Position,
			Type:      string(seat.Type),
			Surcharge: int64(seat.Surcharge),
		})
	}
	return &RoomLayoutResponse{
		RoomID:      room.ID.String(),
		CinemaID:    room.CinemaID.String(),
		Name:        room.Name,
		RoomFee:     int64(room.RoomFee),
		Rows:        room.Rows,
		SeatsPerRow: room.SeatsPerRow,
		TotalSeats:  len(room.Seats),
		Seats:       seatInfos,
	}
}

// rowLabel converts a zero-based row index to its letter label: A..Z,
// then AA, AB, and so on.
func rowLabel(index int) string {
	label := ""
	index++
	for index > 0 {
		index--
		label = string(rune('A'+index%26)) + label
		index /= 26
	}
	return label
}
