package database

import (
	"gorm.io/gorm"

	"boxoffice/internal/auth"
	"boxoffice/internal/bookings"
	"boxoffice/internal/events"
	"boxoffice/internal/users"
)

func Migrate(db *gorm.DB) error {
	// Needed for the uuid_generate_v4() column defaults.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&events.ReservedSeat{},
		&bookings.Booking{},
		&bookings.Ticket{},
		&auth.PasswordReset{},
	)
}
