package seats

// SeatState says why a seat cannot be booked.
type SeatState string

const (
	StateBooked   SeatState = "BOOKED"   // a ticket holds the seat
	StateReserved SeatState = "RESERVED" // blocked by an admin
)

// OccupiedSeat is one unavailable seat in an event's seat map.
type OccupiedSeat struct {
	Section string    `json:"section"`
	Row     string    `json:"row"`
	Seat    int       `json:"seat"`
	State   SeatState `json:"state"`
}
