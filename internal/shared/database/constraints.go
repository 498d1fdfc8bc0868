package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the database constraints that back the seat
// concurrency control. AutoMigrate covers per-model indexes; these span
// behavior the models cannot express.
func MigrateConstraints(db *gorm.DB) error {
	// One ticket per seat per event. Cancelling a booking frees its seats
	// by deleting the ticket rows, so every surviving row holds its seat.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_ticket_seat_per_event
		ON tickets (event_id, section, row, seat);
	`).Error
	if err != nil {
		return err
	}

	// Paid-bookings listing filters by user and status, newest first.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_status
		ON bookings (user_id, status, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	// Reserved-seat collision checks load the full seat map per event.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reserved_seats_event
		ON reserved_seats (event_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
