package bookings

import "boxoffice/internal/users"

// BookingResponse is the creation response: the persisted booking plus the
// caller's current loyalty snapshot.
type BookingResponse struct {
	Booking *Booking      `json:"booking"`
	Loyalty users.Loyalty `json:"loyalty"`
}

// ConflictingTicket identifies a requested seat that collided with an
// admin reservation or an existing booking, returned inside Conflict errors
// so the caller can adjust seat selection.
type ConflictingTicket struct {
	Section  string `json:"section"`
	Row      string `json:"row"`
	Seat     int    `json:"seat"`
	Category string `json:"category"`
}
