package events

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"boxoffice/internal/shared/errs"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	ListBrowsable(ctx context.Context) ([]Event, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetReservedSeats(ctx context.Context, eventID uuid.UUID) ([]ReservedSeat, error)
	AddReservedSeat(ctx context.Context, seat *ReservedSeat) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return errs.Internal("failed to create event", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Preload("ReservedSeats").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("event not found")
		}
		return nil, errs.Internal("failed to load event", err)
	}
	return &event, nil
}

// ListBrowsable returns every non-cancelled event ordered by start time.
func (r *repository) ListBrowsable(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("status <> ?", StatusCancelled).
		Order("start_date_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, errs.Internal("failed to list events", err)
	}
	return events, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Event{})
	if result.Error != nil {
		return errs.Internal("failed to delete event", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("event not found")
	}
	return nil
}

func (r *repository) GetReservedSeats(ctx context.Context, eventID uuid.UUID) ([]ReservedSeat, error) {
	var seats []ReservedSeat
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Find(&seats).Error
	if err != nil {
		return nil, errs.Internal("failed to load reserved seats", err)
	}
	return seats, nil
}

// AddReservedSeat inserts an admin seat reservation. The composite unique
// index on (event_id, section, row, seat) turns a concurrent duplicate
// reservation into a conflict instead of a silent double insert.
func (r *repository) AddReservedSeat(ctx context.Context, seat *ReservedSeat) error {
	err := r.db.WithContext(ctx).Create(seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Conflict("seat is already reserved")
		}
		return errs.Internal("failed to reserve seat", err)
	}
	return nil
}
