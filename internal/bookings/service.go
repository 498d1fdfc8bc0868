package bookings

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"boxoffice/internal/events"
	"boxoffice/internal/pricing"
	"boxoffice/internal/shared/errs"
	"boxoffice/internal/users"
)

// EventStore is the slice of the events service the aggregator needs.
// Defined locally to avoid a circular dependency on the events package's
// service wiring.
type EventStore interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

// UserStore supplies the loyalty snapshot. Loyalty is always read
// server-side; nothing in the request can claim membership.
type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*users.User, error)
}

type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*Booking, error)
	ListPaidBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error)
}

type service struct {
	repo      Repository
	events    EventStore
	users     UserStore
	engine    *pricing.Engine
	currency  string
	validator *validator.Validate
}

func NewService(repo Repository, eventStore EventStore, userStore UserStore, engine *pricing.Engine, currency string) Service {
	if currency == "" {
		currency = "GBP"
	}
	return &service{
		repo:      repo,
		events:    eventStore,
		users:     userStore,
		engine:    engine,
		currency:  currency,
		validator: validator.New(),
	}
}

// CreateBooking prices the requested party and persists it as a pending
// booking. All tickets share one booking context (party size, loyalty), so
// the group discount candidate is identical for every ticket in the party.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errs.BadRequest("invalid booking request: " + err.Error())
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errs.BadRequest("invalid event id")
	}

	if dups := duplicateSeats(req.Tickets); len(dups) > 0 {
		return nil, errs.BadRequest("duplicate seats in booking request").WithDetails(dups)
	}

	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsCancelled() {
		return nil, errs.BadRequest("event is not available for booking")
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pctx := pricing.Context{
		PartySize:  len(req.Tickets),
		HasLoyalty: user.Loyalty.IsMember,
	}

	priced := make([]pricing.PricedTicket, 0, len(req.Tickets))
	for _, in := range req.Tickets {
		pt, err := s.engine.PriceTicket(pricing.TicketRequest{
			Section:  in.Section,
			Row:      in.Row,
			Seat:     in.Seat,
			Category: in.Category,
			BaseCost: in.BaseCost,
		}, pctx)
		if err != nil {
			return nil, err
		}
		priced = append(priced, pt)
	}

	var subtotal, total float64
	tickets := make([]Ticket, 0, len(priced))
	for _, pt := range priced {
		subtotal += pt.FullPrice
		total += pt.FinalPrice
		tickets = append(tickets, NewTicket(eventID, pt))
	}
	subtotal = pricing.Round2(subtotal)
	total = pricing.Round2(total)

	best, _ := pricing.BestTicket(priced)

	booking := &Booking{
		UserID:    userID,
		EventID:   eventID,
		Tickets:   tickets,
		PartySize: len(tickets),
		Discount: Discount{
			Type: string(best.AppliedDiscountType),
			Rate: best.AppliedDiscountRate,
		},
		Pricing: Pricing{
			Subtotal:       subtotal,
			DiscountAmount: pricing.Round2(subtotal - total),
			Total:          total,
			Currency:       s.currency,
		},
		Status: StatusPending,
	}

	if err := s.repo.CreateBookingChecked(ctx, booking); err != nil {
		return nil, err
	}

	return &BookingResponse{Booking: booking, Loyalty: user.Loyalty}, nil
}

// duplicateSeats returns tickets whose seat reference appears more than
// once within a single request.
func duplicateSeats(tickets []TicketInput) []ConflictingTicket {
	seen := make(map[events.SeatRef]struct{}, len(tickets))
	var dups []ConflictingTicket
	for _, t := range tickets {
		ref := events.NormalizeSeatRef(t.Section, t.Row, t.Seat)
		if _, hit := seen[ref]; hit {
			dups = append(dups, ConflictingTicket{
				Section:  t.Section,
				Row:      t.Row,
				Seat:     t.Seat,
				Category: t.Category,
			})
			continue
		}
		seen[ref] = struct{}{}
	}
	return dups
}

func (s *service) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, errs.Forbidden("you do not have access to this booking")
	}
	return booking, nil
}

func (s *service) ListPaidBookings(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	return s.repo.ListPaidByUser(ctx, userID)
}
