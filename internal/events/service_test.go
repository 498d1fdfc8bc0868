package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/shared/errs"
)

type fakeEventRepo struct {
	events map[uuid.UUID]*Event
}

func newFakeEventRepo(seed ...*Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[uuid.UUID]*Event)}
	for _, event := range seed {
		if event.ID == uuid.Nil {
			event.ID = uuid.New()
		}
		repo.events[event.ID] = event
	}
	return repo
}

func (f *fakeEventRepo) Create(_ context.Context, event *Event) error {
	event.ID = uuid.New()
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id uuid.UUID) (*Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, errs.NotFound("event not found")
	}
	return event, nil
}

func (f *fakeEventRepo) ListBrowsable(_ context.Context) ([]Event, error) {
	var browsable []Event
	for _, event := range f.events {
		if event.Status != StatusCancelled {
			browsable = append(browsable, *event)
		}
	}
	return browsable, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.events[id]; !ok {
		return errs.NotFound("event not found")
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) GetReservedSeats(_ context.Context, eventID uuid.UUID) ([]ReservedSeat, error) {
	event, ok := f.events[eventID]
	if !ok {
		return nil, errs.NotFound("event not found")
	}
	return event.ReservedSeats, nil
}

func (f *fakeEventRepo) AddReservedSeat(_ context.Context, seat *ReservedSeat) error {
	event, ok := f.events[seat.EventID]
	if !ok {
		return errs.NotFound("event not found")
	}
	event.ReservedSeats = append(event.ReservedSeats, *seat)
	return nil
}

func TestService_ReserveSeat(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()

	t.Run("reserves a seat and returns the full list", func(t *testing.T) {
		repo := newFakeEventRepo(&Event{Title: "Winter Pantomime", Status: StatusPublished})
		svc := NewService(repo, nil)

		var eventID uuid.UUID
		for id := range repo.events {
			eventID = id
		}

		reserved, err := svc.ReserveSeat(ctx, eventID, adminID, ReserveSeatRequest{
			Section: "stalls",
			Row:     "m",
			Seat:    15,
			Reason:  "Sound desk",
		})
		require.NoError(t, err)

		require.Len(t, reserved, 1)
		assert.Equal(t, "STALLS", reserved[0].Section)
		assert.Equal(t, "M", reserved[0].Row)
		assert.Equal(t, 15, reserved[0].Seat)
		assert.Equal(t, "Sound desk", reserved[0].Reason)
		assert.Equal(t, adminID, reserved[0].ReservedBy)
	})

	t.Run("empty reason gets the default", func(t *testing.T) {
		repo := newFakeEventRepo(&Event{Title: "Winter Pantomime", Status: StatusPublished})
		svc := NewService(repo, nil)

		var eventID uuid.UUID
		for id := range repo.events {
			eventID = id
		}

		reserved, err := svc.ReserveSeat(ctx, eventID, adminID, ReserveSeatRequest{
			Section: "LBAL",
			Row:     "A",
			Seat:    1,
		})
		require.NoError(t, err)

		assert.Equal(t, "Admin reserved", reserved[0].Reason)
	})

	t.Run("reserving the same seat twice conflicts", func(t *testing.T) {
		repo := newFakeEventRepo(&Event{Title: "Winter Pantomime", Status: StatusPublished})
		svc := NewService(repo, nil)

		var eventID uuid.UUID
		for id := range repo.events {
			eventID = id
		}

		req := ReserveSeatRequest{Section: "STALLS", Row: "M", Seat: 15}
		_, err := svc.ReserveSeat(ctx, eventID, adminID, req)
		require.NoError(t, err)

		// Same seat through a differently cased reference.
		_, err = svc.ReserveSeat(ctx, eventID, adminID, ReserveSeatRequest{Section: "stalls", Row: "m", Seat: 15})
		require.Error(t, err)
		assert.Equal(t, 409, errs.HTTPStatus(err))
	})

	t.Run("unknown event is not found", func(t *testing.T) {
		svc := NewService(newFakeEventRepo(), nil)

		_, err := svc.ReserveSeat(ctx, uuid.New(), adminID, ReserveSeatRequest{Section: "STALLS", Row: "A", Seat: 1})

		require.Error(t, err)
		assert.Equal(t, 404, errs.HTTPStatus(err))
	})
}

func TestService_BrowseEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelled events are hidden", func(t *testing.T) {
		repo := newFakeEventRepo(
			&Event{Title: "Live", Status: StatusPublished},
			&Event{Title: "Pulled", Status: StatusCancelled},
		)
		svc := NewService(repo, nil)

		browsable, err := svc.BrowseEvents(ctx)
		require.NoError(t, err)

		require.Len(t, browsable, 1)
		assert.Equal(t, "Live", browsable[0].Title)
	})
}
