package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"boxoffice/internal/events"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/database"
	"boxoffice/internal/users"
)

type Seeder struct {
	db      *database.DB
	adminID uuid.UUID
}

func main() {
	fmt.Println("🌱 Starting Box Office Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"password_resets",
		"tickets",
		"bookings",
		"reserved_seats",
		"events",
		"users",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
		fmt.Printf("  🗑️  Truncated %s\n", table)
	}

	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.seedEvents(); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}
	return nil
}

// seedUsers creates the admin account and a few customers. Admin accounts
// only ever come from seeding.
func (s *Seeder) seedUsers() error {
	hash := func(pw string) string {
		hashed, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return string(hashed)
	}

	seedUsers := []users.User{
		{
			FirstName: "Ada",
			LastName:  "Hall",
			Email:     "admin@victoriahall.co.uk",
			Password:  hash("AdminPass123!"),
			DOB:       time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC),
			Phone:     "+441214960000",
			Role:      users.RoleAdmin,
		},
		{
			FirstName: "George",
			LastName:  "Miller",
			Email:     "george@example.com",
			Password:  hash("Password123"),
			DOB:       time.Date(1990, 7, 2, 0, 0, 0, 0, time.UTC),
			Role:      users.RoleUser,
		},
		{
			FirstName: "Priya",
			LastName:  "Shah",
			Email:     "priya@example.com",
			Password:  hash("Password123"),
			DOB:       time.Date(1968, 11, 23, 0, 0, 0, 0, time.UTC),
			Role:      users.RoleUser,
			Loyalty:   users.Loyalty{IsMember: true, BookingCount: 4},
		},
	}

	for i := range seedUsers {
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  👤 Created %s (%s)\n", seedUsers[i].Email, seedUsers[i].Role)
	}

	s.adminID = seedUsers[0].ID
	return nil
}

func (s *Seeder) seedEvents() error {
	now := time.Now()
	endAt := func(t time.Time, d time.Duration) *time.Time {
		end := t.Add(d)
		return &end
	}

	seedEvents := []events.Event{
		{
			Title:         "A Midsummer Night's Dream",
			Description:   "The RSC's touring production of Shakespeare's comedy.",
			DateLabel:     "Fri 12 Dec",
			TimeLabel:     "7:30 PM",
			StartDateTime: now.AddDate(0, 1, 0),
			EndDateTime:   endAt(now.AddDate(0, 1, 0), 3*time.Hour),
			Venue:         "Victoria Hall",
			Status:        events.StatusPublished,
		},
		{
			Title:         "An Evening of Jazz",
			Description:   "Big band standards with the city jazz orchestra.",
			DateLabel:     "Sat 20 Dec",
			TimeLabel:     "8:00 PM",
			StartDateTime: now.AddDate(0, 1, 8),
			EndDateTime:   endAt(now.AddDate(0, 1, 8), 2*time.Hour),
			Venue:         "Victoria Hall",
			Status:        events.StatusPublished,
		},
		{
			Title:         "Winter Pantomime",
			Description:   "Family pantomime, matinee performance.",
			DateLabel:     "Sun 28 Dec",
			TimeLabel:     "2:00 PM",
			StartDateTime: now.AddDate(0, 2, 0),
			EndDateTime:   endAt(now.AddDate(0, 2, 0), 2*time.Hour),
			Venue:         "Victoria Hall",
			Status:        events.StatusDraft,
		},
	}

	for i := range seedEvents {
		if err := s.db.PostgreSQL.Create(&seedEvents[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  🎭 Created event %q (%s)\n", seedEvents[i].Title, seedEvents[i].Status)
	}

	// Block the sound desk seats for the first event.
	reserved := []events.ReservedSeat{
		{EventID: seedEvents[0].ID, Section: "STALLS", Row: "M", Seat: 15, Reason: "Sound desk", ReservedBy: s.adminID},
		{EventID: seedEvents[0].ID, Section: "STALLS", Row: "M", Seat: 16, Reason: "Sound desk", ReservedBy: s.adminID},
	}
	for i := range reserved {
		if err := s.db.PostgreSQL.Create(&reserved[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  🚫 Reserved seat %s %s%d\n", reserved[i].Section, reserved[i].Row, reserved[i].Seat)
	}

	return nil
}
