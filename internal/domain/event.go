package domain

import "time"

// Event statuses. Events start PENDING and are moved to APPROVED or
// REJECTED by an admin. CANCELLED is a valid stored value but no
// operation currently produces it.
const (
	EventStatusPending   = "PENDING"
	EventStatusApproved  = "APPROVED"
	EventStatusRejected  = "REJECTED"
	EventStatusCancelled = "CANCELLED"
)

// Event Model
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                 // Primary key
	Title       string    `gorm:"not null" json:"title"`                // Event title
	Description string    `gorm:"not null;type:text" json:"description"`
	StartTime   time.Time `gorm:"not null" json:"startTime"`
	EndTime     time.Time `gorm:"not null" json:"endTime"`
	Capacity    int       `gorm:"not null" json:"capacity"`             // Fixed at creation
	VenueID     string    `json:"venueId,omitempty"`
	VenueName   string    `json:"venueName,omitempty"`
	Category    string    `gorm:"not null" json:"category"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Status      string    `gorm:"not null;default:PENDING" json:"status"`
	OrganizerID uint      `gorm:"not null" json:"organizerId"`          // Foreign key to User
	Organizer   User      `gorm:"foreignKey:OrganizerID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventSummary is an event joined with its organizer and the live
// registration aggregate, as returned by the listing endpoints.
type EventSummary struct {
	Event           `gorm:"embedded"`
	OrganizerName   string `json:"organizerName"`
	OrganizerEmail  string `json:"organizerEmail"`
	RegisteredCount int64  `json:"registeredCount"`
}

// EventDetails is an event summary plus its attendee list, returned by
// the single-event endpoint.
type EventDetails struct {
	EventSummary
	RegisteredUsers []RegisteredUser `json:"registeredUsers"`
}

// CreateEventInput carries the fields an organizer supplies when
// creating an event. Status and organizer are set by the service.
type CreateEventInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Capacity    int
	VenueID     string
	Category    string
	CoverImage  string
}
