package bookings

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// CanBePaid reports whether the payment workflow may transition this status.
func (s Status) CanBePaid() bool {
	return s == StatusPending
}

// IsActive reports whether the booking still occupies its seats.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusPaid
}
