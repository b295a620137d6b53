package domain

import "time"

// InterestProfile holds one interest category score for a user,
// built up by the keyword analyzer. One row per (user, category).
type InterestProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_category" json:"userId"`
	Category  string    `gorm:"not null;uniqueIndex:idx_user_category" json:"category"`
	Score     int       `gorm:"not null" json:"score"` // 0..100
	UpdatedAt time.Time `json:"updated_at"`
}

// RecommendedEvent is an approved event scored against a user's
// interest profile.
type RecommendedEvent struct {
	EventSummary
	MatchScore int `json:"matchScore"` // 0..100
}
