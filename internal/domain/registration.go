package domain

import "time"

// Registration statuses. Only REGISTERED is produced by the current
// registration flow; WAITLISTED and CANCELLED are valid stored values.
const (
	RegistrationStatusRegistered = "REGISTERED"
	RegistrationStatusWaitlisted = "WAITLISTED"
	RegistrationStatusCancelled  = "CANCELLED"
)

// Registration Model. The composite unique index keeps a user to at
// most one registration per event, enforced at the store level.
type Registration struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                              // Primary key
	EventID      uint      `gorm:"not null;uniqueIndex:idx_event_user" json:"eventId"` // Foreign key to Event
	UserID       uint      `gorm:"not null;uniqueIndex:idx_event_user" json:"userId"`  // Foreign key to User
	Status       string    `gorm:"not null;default:REGISTERED" json:"status"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
}

// RegisteredUser is the public slice of a user shown on an event's
// attendee list.
type RegisteredUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
