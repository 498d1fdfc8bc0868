package events

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`

	// Display labels shown on listings, e.g. "5 Dec" / "19:00"
	DateLabel string `json:"date_label" gorm:"size:50"`
	TimeLabel string `json:"time_label" gorm:"size:50"`

	StartDateTime time.Time  `json:"start_date_time" gorm:"not null;index"`
	EndDateTime   *time.Time `json:"end_date_time,omitempty"`

	Venue    string      `json:"venue" gorm:"size:255;default:'Victoria Hall'"`
	ImageURL string      `json:"image_url" gorm:"size:500"`
	Status   EventStatus `json:"status" gorm:"type:varchar(20);default:'published';index"`

	ReservedSeats []ReservedSeat `json:"reserved_seats,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ReservedSeat is a seat blocked from purchase by an administrative action,
// distinct from a seat sold via a booking. Section and row are stored
// normalized (trimmed, uppercase).
type ReservedSeat struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID    uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_reserved_seat,priority:1"`
	Section    string    `json:"section" gorm:"not null;size:20;uniqueIndex:idx_reserved_seat,priority:2"`
	Row        string    `json:"row" gorm:"not null;size:10;uniqueIndex:idx_reserved_seat,priority:3"`
	Seat       int       `json:"seat" gorm:"not null;uniqueIndex:idx_reserved_seat,priority:4"`
	Reason     string    `json:"reason" gorm:"size:255;default:'Admin reserved'"`
	ReservedBy uuid.UUID `json:"reserved_by" gorm:"type:uuid"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Event) TableName() string {
	return "events"
}

func (ReservedSeat) TableName() string {
	return "reserved_seats"
}

// SeatRef is a normalized (section, row, seat) tuple used for collision checks.
type SeatRef struct {
	Section string `json:"section"`
	Row     string `json:"row"`
	Seat    int    `json:"seat"`
}

// NormalizeSeatRef uppercases and trims section and row so comparisons are
// case-insensitive.
func NormalizeSeatRef(section, row string, seat int) SeatRef {
	return SeatRef{
		Section: strings.ToUpper(strings.TrimSpace(section)),
		Row:     strings.ToUpper(strings.TrimSpace(row)),
		Seat:    seat,
	}
}

func (rs *ReservedSeat) Ref() SeatRef {
	return NormalizeSeatRef(rs.Section, rs.Row, rs.Seat)
}

func (e *Event) IsCancelled() bool {
	return e.Status == StatusCancelled
}

type CreateEventRequest struct {
	Title         string     `json:"title" binding:"required,min=3,max=255"`
	Description   string     `json:"description" binding:"required,max=2000"`
	DateLabel     string     `json:"date_label" binding:"required,max=50"`
	TimeLabel     string     `json:"time_label" binding:"required,max=50"`
	StartDateTime time.Time  `json:"start_date_time" binding:"required"`
	EndDateTime   *time.Time `json:"end_date_time"`
	Venue         string     `json:"venue" binding:"omitempty,max=255"`
	ImageURL      string     `json:"image_url" binding:"omitempty,url"`
	Status        string     `json:"status" binding:"omitempty,oneof=draft published cancelled"`
}

type ReserveSeatRequest struct {
	Section string `json:"section" binding:"required,max=20"`
	Row     string `json:"row" binding:"required,max=10"`
	Seat    int    `json:"seat" binding:"required,min=1"`
	Reason  string `json:"reason" binding:"omitempty,max=255"`
}
