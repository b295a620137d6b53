package domain

import "time"

// User roles. A user's role is fixed at signup and never changes.
const (
	RoleStudent   = "STUDENT"
	RoleOrganizer = "ORGANIZER"
	RoleAdmin     = "ADMIN"
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`        // Primary key
	Name      string    `gorm:"not null" json:"name"`        // Display name
	Email     string    `gorm:"unique;not null" json:"email"` // Unique email
	Password  string    `gorm:"not null" json:"-"`           // Bcrypt hash, never serialized
	Role      string    `gorm:"not null" json:"role"`        // STUDENT, ORGANIZER or ADMIN
	Phone     string    `json:"phone,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
