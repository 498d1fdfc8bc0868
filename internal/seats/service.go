package seats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"boxoffice/internal/events"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"
)

// Seat maps are cached briefly. A stale map can show a just-taken seat as
// free; the unique ticket index rejects the booking either way, so the map
// is advisory only.
const seatMapCacheTTL = 30 * time.Second

// EventStore is the slice of the event service this package needs.
type EventStore interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

type Service interface {
	GetSeatMap(ctx context.Context, eventID uuid.UUID) (*SeatMapResponse, error)
}

type service struct {
	repo   Repository
	events EventStore
	cache  cache.Service
	log    *logger.Logger
}

// NewService creates the seat map service. The cache is optional; with a
// nil cache every lookup goes to the database.
func NewService(repo Repository, eventStore EventStore, cacheService cache.Service) Service {
	return &service{
		repo:   repo,
		events: eventStore,
		cache:  cacheService,
		log:    logger.GetDefault(),
	}
}

func (s *service) GetSeatMap(ctx context.Context, eventID uuid.UUID) (*SeatMapResponse, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cache == nil {
		return s.buildSeatMap(ctx, event)
	}

	var seatMap SeatMapResponse
	key := fmt.Sprintf("boxoffice:seats:%s", eventID)
	err = s.cache.GetOrSet(ctx, key, seatMapCacheTTL, func() (interface{}, error) {
		return s.buildSeatMap(ctx, event)
	}, &seatMap)
	if err != nil {
		s.log.Warn("seat map cache unavailable, falling back to database",
			slog.Any("error", err))
		return s.buildSeatMap(ctx, event)
	}
	return &seatMap, nil
}

func (s *service) buildSeatMap(ctx context.Context, event *events.Event) (*SeatMapResponse, error) {
	booked, err := s.repo.GetBookedSeats(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	reserved, err := s.repo.GetReservedSeats(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	return &SeatMapResponse{
		EventID:     event.ID,
		Venue:       event.Venue,
		Unavailable: append(booked, reserved...),
	}, nil
}
