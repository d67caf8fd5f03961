package showtimes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/cinemas"
	"cinebook/internal/movies"
	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrShowtimeNotFound    = errors.New("showtime not found")
	ErrRoomOverlap         = errors.New("room already has a showtime in that window")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrShowtimeNotBookable = errors.New("showtime is not open for booking")
)

// Cleaning buffer between consecutive showtimes in the same room.
const turnaroundBuffer = 15 * time.Minute

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*ShowtimeResponse, error)
	GetShowtime(ctx context.Context, id uuid.UUID) (*Showtime, error)
	ListShowtimes(ctx context.Context, query ShowtimeListQuery) ([]ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, id uuid.UUID, req UpdateShowtimeRequest) (*ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         Repository
	movieService movies.Service
	roomService  cinemas.Service
	cacheService cache.Service
}

func NewService(repo Repository, movieService movies.Service, roomService cinemas.Service) Service {
	return &service{repo: repo, movieService: movieService, roomService: roomService}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*ShowtimeResponse, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room id: %w", err)
	}

	movie, err := s.movieService.GetMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if _, err := s.roomService.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}

	end := req.StartTime.Add(time.Duration(movie.DurationMin)*time.Minute + turnaroundBuffer)

	overlap, err := s.repo.HasOverlap(ctx, roomID, req.StartTime, end, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check room schedule: %w", err)
	}
	if overlap {
		return nil, ErrRoomOverlap
	}

	showtime := &Showtime{
		MovieID:   movieID,
		RoomID:    roomID,
		StartTime: req.StartTime,
		EndTime:   end,
		BasePrice: req.BasePrice,
		Status:    StatusScheduled,
	}
	if err := s.repo.Create(ctx, showtime); err != nil {
		return nil, fmt.Errorf("failed to create showtime: %w", err)
	}

	s.invalidateCache(ctx)
	created, err := s.repo.GetByID(ctx, showtime.ID)
	if err != nil {
		return nil, err
	}
	resp := created.ToResponse()
	return &resp, nil
}

func (s *service) GetShowtime(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	showtime, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return showtime, nil
}

func (s *service) ListShowtimes(ctx context.Context, query ShowtimeListQuery) ([]ShowtimeResponse, error) {
	fetch := func() (interface{}, error) {
		found, err := s.repo.List(ctx, query)
		if err != nil {
			return nil, err
		}
		responses := make([]ShowtimeResponse, 0, len(found))
		for _, st := range found {
			responses = append(responses, st.ToResponse())
		}
		return responses, nil
	}

	// Only the by-movie-and-date listing is hot enough to cache
	if s.cacheService != nil && query.MovieID != "" && query.Date != "" && query.RoomID == "" {
		var cached []ShowtimeResponse
		key := constants.BuildShowtimesByMovieKey(query.MovieID, query.Date)
		if err := s.cacheService.GetOrSet(ctx, key, constants.TTL_SHOWTIME_LIST, fetch, &cached); err == nil {
			return cached, nil
		}
	}

	result, err := fetch()
	if err != nil {
		return nil, fmt.Errorf("failed to list showtimes: %w", err)
	}
	return result.([]ShowtimeResponse), nil
}

func (s *service) UpdateShowtime(ctx context.Context, id uuid.UUID, req UpdateShowtimeRequest) (*ShowtimeResponse, error) {
	showtime, err := s.GetShowtime(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		duration := showtime.EndTime.Sub(showtime.StartTime)
		newEnd := req.StartTime.Add(duration)
		overlap, err := s.repo.HasOverlap(ctx, showtime.RoomID, *req.StartTime, newEnd, showtime.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check room schedule: %w", err)
		}
		if overlap {
			return nil, ErrRoomOverlap
		}
		showtime.StartTime = *req.StartTime
		showtime.EndTime = newEnd
	}
	if req.BasePrice != nil {
		showtime.BasePrice = *req.BasePrice
	}
	if req.Status != nil {
		target := Status(*req.Status)
		if !showtime.Status.CanTransitionTo(target) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, showtime.Status, target)
		}
		showtime.Status = target
	}

	if err := s.repo.Update(ctx, showtime); err != nil {
		return nil, fmt.Errorf("failed to update showtime: %w", err)
	}

	s.invalidateCache(ctx)
	resp := showtime.ToResponse()
	return &resp, nil
}

func (s *service) DeleteShowtime(ctx context.Context, id uuid.UUID) error {
	showtime, err := s.GetShowtime(ctx, id)
	if err != nil {
		return err
	}
	// Soft-cancel showtimes that were already visible to customers
	if showtime.Status == StatusScheduled {
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete showtime: %w", err)
		}
	} else {
		if !showtime.Status.CanTransitionTo(StatusCancelled) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, showtime.Status, StatusCancelled)
		}
		showtime.Status = StatusCancelled
		if err := s.repo.Update(ctx, showtime); err != nil {
			return fmt.Errorf("failed to cancel showtime: %w", err)
		}
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SHOWTIMES_ALL)
	}
}
