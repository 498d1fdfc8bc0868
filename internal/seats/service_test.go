package seats

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/events"
	"boxoffice/internal/shared/errs"
)

type fakeSeatRepo struct {
	booked   []OccupiedSeat
	reserved []OccupiedSeat
}

func (f *fakeSeatRepo) GetBookedSeats(_ context.Context, _ uuid.UUID) ([]OccupiedSeat, error) {
	return f.booked, nil
}

func (f *fakeSeatRepo) GetReservedSeats(_ context.Context, _ uuid.UUID) ([]OccupiedSeat, error) {
	return f.reserved, nil
}

type fakeEventStore struct {
	events map[uuid.UUID]*events.Event
}

func (f *fakeEventStore) GetEvent(_ context.Context, id uuid.UUID) (*events.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, errs.NotFound("event not found")
	}
	return event, nil
}

func TestService_GetSeatMap(t *testing.T) {
	ctx := context.Background()
	eventID := uuid.New()

	store := &fakeEventStore{events: map[uuid.UUID]*events.Event{
		eventID: {ID: eventID, Title: "An Evening of Jazz", Venue: "Victoria Hall"},
	}}

	t.Run("merges booked and reserved seats", func(t *testing.T) {
		repo := &fakeSeatRepo{
			booked:   []OccupiedSeat{{Section: "STALLS", Row: "D", Seat: 7, State: StateBooked}},
			reserved: []OccupiedSeat{{Section: "STALLS", Row: "M", Seat: 15, State: StateReserved}},
		}
		svc := NewService(repo, store, nil)

		seatMap, err := svc.GetSeatMap(ctx, eventID)
		require.NoError(t, err)

		assert.Equal(t, eventID, seatMap.EventID)
		assert.Equal(t, "Victoria Hall", seatMap.Venue)
		require.Len(t, seatMap.Unavailable, 2)
		assert.Equal(t, StateBooked, seatMap.Unavailable[0].State)
		assert.Equal(t, StateReserved, seatMap.Unavailable[1].State)
	})

	t.Run("unknown event is not found", func(t *testing.T) {
		svc := NewService(&fakeSeatRepo{}, store, nil)

		_, err := svc.GetSeatMap(ctx, uuid.New())

		require.Error(t, err)
		assert.Equal(t, 404, errs.HTTPStatus(err))
	})
}
