package seats

import "github.com/google/uuid"

// SeatMapResponse lists every seat a customer cannot pick for an event.
type SeatMapResponse struct {
	EventID     uuid.UUID      `json:"event_id"`
	Venue       string         `json:"venue"`
	Unavailable []OccupiedSeat `json:"unavailable"`
}
