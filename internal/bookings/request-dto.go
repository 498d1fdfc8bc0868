package bookings

type TicketInput struct {
	Section  string  `json:"section" validate:"required,max=20"`
	Row      string  `json:"row" validate:"required,max=10"`
	Seat     int     `json:"seat" validate:"required,min=1"`
	Category string  `json:"category" validate:"required"`
	BaseCost float64 `json:"base_cost" validate:"omitempty,gt=0"`
}

type CreateBookingRequest struct {
	EventID string        `json:"event_id" validate:"required,uuid"`
	Tickets []TicketInput `json:"tickets" validate:"required,min=1,dive"`
}
