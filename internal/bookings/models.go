package bookings

import (
	"time"

	"github.com/google/uuid"

	"boxoffice/internal/events"
	"boxoffice/internal/pricing"
)

// Ticket is one priced seat line item of a booking. EventID is denormalized
// onto the ticket row so the unique index on
// (event_id, section, row, seat) can block double-booking across bookings.
type Ticket struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	EventID   uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`

	Section  string `gorm:"not null;size:20" json:"section"`
	Row      string `gorm:"not null;size:10" json:"row"`
	Seat     int    `gorm:"not null" json:"seat"`
	Category string `gorm:"type:varchar(10);not null" json:"category"`

	BaseCost            float64 `gorm:"not null" json:"base_cost"`
	FullPrice           float64 `gorm:"not null" json:"full_price"`
	AppliedDiscountRate float64 `gorm:"default:0" json:"applied_discount_rate"`
	AppliedDiscountType string  `gorm:"type:varchar(10);default:'none'" json:"applied_discount_type"`
	FinalPrice          float64 `gorm:"not null" json:"final_price"`

	CreatedAt time.Time `json:"created_at"`
}

// Pricing is the booking-level money summary. Subtotal is the sum of full
// prices, Total the sum of final prices, DiscountAmount their difference.
type Pricing struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
	Currency       string  `json:"currency" gorm:"type:varchar(3);default:'GBP'"`
}

// Discount is the booking-level summary label: the best single ticket's
// discount, not an aggregate.
type Discount struct {
	Type string  `json:"type" gorm:"type:varchar(10);default:'none'"`
	Rate float64 `json:"rate" gorm:"default:0"`
}

type Booking struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	EventID uuid.UUID `gorm:"type:uuid;index;not null" json:"event_id"`

	Tickets   []Ticket `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;" json:"tickets"`
	PartySize int      `gorm:"not null" json:"party_size"`

	Discount Discount `gorm:"embedded;embeddedPrefix:discount_" json:"discount"`
	Pricing  Pricing  `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`

	Status Status `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`

	Event *events.Event `gorm:"foreignKey:EventID;constraint:OnDelete:RESTRICT;" json:"event,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (Ticket) TableName() string {
	return "tickets"
}

func (b *Booking) IsPaid() bool {
	return b.Status == StatusPaid
}

func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// MarkPaid flips the in-memory booking to paid. Persistence goes through
// the repository's compare-and-swap so a concurrent duplicate payment
// cannot transition twice.
func (b *Booking) MarkPaid() {
	now := time.Now()
	b.Status = StatusPaid
	b.PaidAt = &now
	b.UpdatedAt = now
}

// NewTicket converts an engine-priced ticket into a persistable line item.
func NewTicket(eventID uuid.UUID, pt pricing.PricedTicket) Ticket {
	return Ticket{
		EventID:             eventID,
		Section:             pt.Section,
		Row:                 pt.Row,
		Seat:                pt.Seat,
		Category:            pt.Category.String(),
		BaseCost:            pt.BaseCost,
		FullPrice:           pt.FullPrice,
		AppliedDiscountRate: pt.AppliedDiscountRate,
		AppliedDiscountType: string(pt.AppliedDiscountType),
		FinalPrice:          pt.FinalPrice,
	}
}
