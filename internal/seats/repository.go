package seats

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"boxoffice/internal/bookings"
	"boxoffice/internal/events"
	"boxoffice/internal/shared/errs"
)

type Repository interface {
	GetBookedSeats(ctx context.Context, eventID uuid.UUID) ([]OccupiedSeat, error)
	GetReservedSeats(ctx context.Context, eventID uuid.UUID) ([]OccupiedSeat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetBookedSeats lists seats held by tickets for the event. Pending bookings
// count as booked because their tickets already hold the seat rows.
func (r *repository) GetBookedSeats(ctx context.Context, eventID uuid.UUID) ([]OccupiedSeat, error) {
	var tickets []bookings.Ticket
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order(`section, "row", seat`).
		Find(&tickets).Error
	if err != nil {
		return nil, errs.Internal("failed to load booked seats", err)
	}

	occupied := make([]OccupiedSeat, 0, len(tickets))
	for _, t := range tickets {
		occupied = append(occupied, OccupiedSeat{
			Section: t.Section,
			Row:     t.Row,
			Seat:    t.Seat,
			State:   StateBooked,
		})
	}
	return occupied, nil
}

func (r *repository) GetReservedSeats(ctx context.Context, eventID uuid.UUID) ([]OccupiedSeat, error) {
	var reserved []events.ReservedSeat
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order(`section, "row", seat`).
		Find(&reserved).Error
	if err != nil {
		return nil, errs.Internal("failed to load reserved seats", err)
	}

	occupied := make([]OccupiedSeat, 0, len(reserved))
	for _, s := range reserved {
		occupied = append(occupied, OccupiedSeat{
			Section: s.Section,
			Row:     s.Row,
			Seat:    s.Seat,
			State:   StateReserved,
		})
	}
	return occupied, nil
}
