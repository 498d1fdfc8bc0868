package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"boxoffice/internal/shared/errs"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"
)

const (
	browseCacheKey = "boxoffice:events:browse"
	browseCacheTTL = 5 * time.Minute
)

type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	BrowseEvents(ctx context.Context) ([]Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	ReserveSeat(ctx context.Context, eventID, adminID uuid.UUID, req ReserveSeatRequest) ([]ReservedSeat, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

// NewService creates the event service. The cache is optional; with a nil
// cache every browse goes to the database.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		log:   logger.GetDefault(),
	}
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	status := StatusPublished
	if req.Status != "" {
		status = EventStatus(req.Status)
		if !status.IsValid() {
			return nil, errs.BadRequest("invalid event status (draft/published/cancelled)")
		}
	}

	venue := req.Venue
	if venue == "" {
		venue = "Victoria Hall"
	}

	event := &Event{
		Title:         req.Title,
		Description:   req.Description,
		DateLabel:     req.DateLabel,
		TimeLabel:     req.TimeLabel,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
		Venue:         venue,
		ImageURL:      req.ImageURL,
		Status:        status,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateBrowseCache(ctx)
	return event, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

// BrowseEvents lists non-cancelled events, cache-aside with a short TTL.
func (s *service) BrowseEvents(ctx context.Context) ([]Event, error) {
	if s.cache == nil {
		return s.repo.ListBrowsable(ctx)
	}

	var events []Event
	err := s.cache.GetOrSet(ctx, browseCacheKey, browseCacheTTL, func() (interface{}, error) {
		return s.repo.ListBrowsable(ctx)
	}, &events)
	if err != nil {
		// Cache trouble must not take browsing down.
		s.log.Warn("event browse cache unavailable, falling back to database",
			slog.Any("error", err))
		return s.repo.ListBrowsable(ctx)
	}
	return events, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateBrowseCache(ctx)
	return nil
}

// ReserveSeat blocks a seat for the event by administrative action and
// returns the event's full reserved-seat list.
func (s *service) ReserveSeat(ctx context.Context, eventID, adminID uuid.UUID, req ReserveSeatRequest) ([]ReservedSeat, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ref := NormalizeSeatRef(req.Section, req.Row, req.Seat)
	if ref.Section == "" || ref.Row == "" || ref.Seat <= 0 {
		return nil, errs.BadRequest("section, row, and seat are required")
	}

	for _, existing := range event.ReservedSeats {
		if existing.Ref() == ref {
			return nil, errs.Conflict("seat is already reserved")
		}
	}

	reason := req.Reason
	if reason == "" {
		reason = "Admin reserved"
	}

	seat := &ReservedSeat{
		EventID:    eventID,
		Section:    ref.Section,
		Row:        ref.Row,
		Seat:       ref.Seat,
		Reason:     reason,
		ReservedBy: adminID,
	}

	if err := s.repo.AddReservedSeat(ctx, seat); err != nil {
		return nil, err
	}

	s.log.LogSeatReserved(ctx, eventID.String(), adminID.String(),
		fmt.Sprintf("%s %s%d", ref.Section, ref.Row, ref.Seat))

	return s.repo.GetReservedSeats(ctx, eventID)
}

func (s *service) invalidateBrowseCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, browseCacheKey); err != nil {
		s.log.Warn("failed to invalidate event browse cache", slog.Any("error", err))
	}
}
