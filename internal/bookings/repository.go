package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"boxoffice/internal/events"
	"boxoffice/internal/shared/errs"
)

type Repository interface {
	// CreateBookingChecked persists a booking atomically with the
	// reserved-seat collision check.
	CreateBookingChecked(ctx context.Context, booking *Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListPaidByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)

	// MarkPaid transitions pending -> paid with a compare-and-swap.
	// Returns false when the booking was not pending (already paid or
	// cancelled), with no mutation.
	MarkPaid(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBookingChecked runs the seat checks and the insert in one
// transaction. The event row is locked for the duration so a concurrent
// admin reservation cannot slip between check and insert, and the partial
// unique index on ticket (event_id, section, row, seat) turns a concurrent
// double-booking into a conflict instead of corrupting the seat map.
func (r *repository) CreateBookingChecked(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event struct {
			ID     uuid.UUID `gorm:"column:id"`
			Status string    `gorm:"column:status"`
		}

		err := tx.Table("events").
			Select("id, status").
			Where("id = ?", booking.EventID).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("event not found")
			}
			return errs.Internal("failed to lock event", err)
		}

		if event.Status == string(events.StatusCancelled) {
			return errs.BadRequest("event is not available for booking")
		}

		var reserved []events.ReservedSeat
		if err := tx.Where("event_id = ?", booking.EventID).Find(&reserved).Error; err != nil {
			return errs.Internal("failed to load reserved seats", err)
		}

		if conflicts := findReservedConflicts(booking.Tickets, reserved); len(conflicts) > 0 {
			return errs.Conflict("one or more selected seats are reserved by admin").
				WithDetails(conflicts)
		}

		if err := tx.Create(booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Conflict("one or more selected seats are already booked")
			}
			return errs.Internal("failed to create booking", err)
		}

		return nil
	})
}

// findReservedConflicts returns the requested tickets whose normalized
// (section, row, seat) tuple matches an admin-reserved seat.
func findReservedConflicts(tickets []Ticket, reserved []events.ReservedSeat) []ConflictingTicket {
	if len(reserved) == 0 {
		return nil
	}

	blocked := make(map[events.SeatRef]struct{}, len(reserved))
	for _, rs := range reserved {
		blocked[rs.Ref()] = struct{}{}
	}

	var conflicts []ConflictingTicket
	for _, t := range tickets {
		ref := events.NormalizeSeatRef(t.Section, t.Row, t.Seat)
		if _, hit := blocked[ref]; hit {
			conflicts = append(conflicts, ConflictingTicket{
				Section:  t.Section,
				Row:      t.Row,
				Seat:     t.Seat,
				Category: t.Category,
			})
		}
	}
	return conflicts
}

// GetByID loads a booking with its tickets and event. The event rides along
// for the confirmation email, which names the event in its subject.
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Tickets").
		Preload("Event").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("booking not found")
		}
		return nil, errs.Internal("failed to load booking", err)
	}
	return &booking, nil
}

// ListPaidByUser returns the user's paid bookings, newest first, with their
// event for display.
func (r *repository) ListPaidByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Tickets").
		Preload("Event").
		Where("user_id = ?", userID).
		Where("status = ?", StatusPaid).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, errs.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

func (r *repository) MarkPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]interface{}{
			"status":     StatusPaid,
			"paid_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, errs.Internal("failed to update booking status", result.Error)
	}
	return result.RowsAffected > 0, nil
}
