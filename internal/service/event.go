package service

import (
	"context"
	"errors"
	"fmt"

	"cems/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventService owns the event lifecycle: creation into PENDING and the
// admin approve/reject transitions. Role checks happen in the HTTP
// layer's policy table; the service trusts its caller.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// summarySelect joins organizer info and the live registration count
// onto each event row. The count is always computed from registration
// rows, never stored.
func (s *EventService) summaryQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&domain.Event{}).
		Select(`events.*, users.name AS organizer_name, users.email AS organizer_email,
			(SELECT COUNT(*) FROM registrations r
			 WHERE r.event_id = events.id AND r.status = ?) AS registered_count`,
			domain.RegistrationStatusRegistered).
		Joins("LEFT JOIN users ON users.id = events.organizer_id")
}

func (s *EventService) Create(ctx context.Context, organizerID uint, input domain.CreateEventInput) (*domain.EventSummary, error) {
	if input.Title == "" || input.Description == "" || input.Category == "" {
		return nil, fmt.Errorf("%w: all required fields must be provided", domain.ErrValidation)
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: all required fields must be provided", domain.ErrValidation)
	}
	if input.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", domain.ErrValidation)
	}

	venueName := ""
	if input.VenueID != "" {
		venueName = "Venue " + input.VenueID
	}
	event := domain.Event{
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Capacity:    input.Capacity,
		VenueID:     input.VenueID,
		VenueName:   venueName,
		Category:    input.Category,
		CoverImage:  input.CoverImage,
		Status:      domain.EventStatusPending, // Every event starts pending approval
		OrganizerID: organizerID,
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"event_id":     event.ID,
		"organizer_id": organizerID,
		"title":        event.Title,
	}).Info("Event created")

	return s.Get(ctx, event.ID)
}

// Approve sets an event's status to APPROVED. There is intentionally
// no guard on the current status, matching the observed behavior:
// re-approving an approved event is a no-op update.
func (s *EventService) Approve(ctx context.Context, eventID uint) error {
	return s.setStatus(ctx, eventID, domain.EventStatusApproved)
}

// Reject sets an event's status to REJECTED.
func (s *EventService) Reject(ctx context.Context, eventID uint) error {
	return s.setStatus(ctx, eventID, domain.EventStatusRejected)
}

func (s *EventService) setStatus(ctx context.Context, eventID uint, status string) error {
	// Load first: RowsAffected can be zero on a no-op update, which
	// must not read as a missing event.
	var event domain.Event
	if err := s.db.WithContext(ctx).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("load event: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&event).Update("status", status).Error; err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"event_id": eventID,
		"status":   status,
	}).Info("Event status updated")
	return nil
}

// List returns events with organizer info and live registered counts,
// newest first, optionally filtered by status and category.
func (s *EventService) List(ctx context.Context, status, category string) ([]domain.EventSummary, error) {
	q := s.summaryQuery(ctx)
	if status != "" {
		q = q.Where("events.status = ?", status)
	}
	if category != "" {
		q = q.Where("events.category = ?", category)
	}
	var events []domain.EventSummary
	if err := q.Order("events.created_at DESC").Scan(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Get returns one event with its live registered count.
func (s *EventService) Get(ctx context.Context, eventID uint) (*domain.EventSummary, error) {
	var summary domain.EventSummary
	err := s.summaryQuery(ctx).Where("events.id = ?", eventID).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &summary, nil
}

// Details returns an event together with its registered users. Failing
// to load the attendee list degrades to an empty list rather than
// failing the whole request.
func (s *EventService) Details(ctx context.Context, eventID uint) (*domain.EventDetails, error) {
	summary, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	users := []domain.RegisteredUser{}
	err = s.db.WithContext(ctx).Table("registrations").
		Select("users.id, users.name, users.email").
		Joins("JOIN users ON users.id = registrations.user_id").
		Where("registrations.event_id = ? AND registrations.status = ?",
			eventID, domain.RegistrationStatusRegistered).
		Scan(&users).Error
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"event_id": eventID,
			"error":    err.Error(),
		}).Warn("Failed to fetch registered users")
		users = []domain.RegisteredUser{}
	}

	return &domain.EventDetails{EventSummary: *summary, RegisteredUsers: users}, nil
}
