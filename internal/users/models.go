package users

import (
	"time"

	"github.com/google/uuid"

	"boxoffice/internal/shared/middleware"
)

type Role string

// The claim strings live in the middleware package so role checks need no
// import of this package.
const (
	RoleUser  Role = middleware.RoleUser
	RoleAdmin Role = middleware.RoleAdmin
)

// Loyalty is the user's loyalty programme state. It is mutated only by the
// payment workflow: bookingCount counts qualifying payments and isMember
// becomes true permanently once the count reaches the membership threshold.
type Loyalty struct {
	IsMember     bool `json:"is_member" gorm:"default:false"`
	BookingCount int  `json:"booking_count" gorm:"default:0"`
}

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	DOB       time.Time `json:"dob"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'USER'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Loyalty   Loyalty   `json:"loyalty" gorm:"embedded;embeddedPrefix:loyalty_"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleAdmin):
		return true
	default:
		return false
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName returns the display name used in notifications.
func (u *User) FullName() string {
	name := u.FirstName + " " + u.LastName
	if name == " " {
		return "Customer"
	}
	return name
}

// UserResponse is the admin-facing user listing shape.
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Loyalty   Loyalty   `json:"loyalty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Loyalty:   u.Loyalty,
		CreatedAt: u.CreatedAt,
	}
}
