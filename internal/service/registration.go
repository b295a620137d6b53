package service

import (
	"context"
	"errors"
	"fmt"

	"cems/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegistrationService enforces the two registration invariants: a user
// holds at most one active registration per event, and the count of
// REGISTERED rows never exceeds the event's capacity.
type RegistrationService struct {
	db *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{db: db}
}

// Register signs a user up for an approved event. The whole
// load-check-insert sequence runs in one transaction holding a row
// lock on the event, so concurrent attempts near the capacity boundary
// serialize instead of jointly overbooking. SQLite has no FOR UPDATE
// and serializes writers on its own, so the lock clause is only
// applied on MySQL.
func (s *RegistrationService) Register(ctx context.Context, eventID, userID uint) (*domain.Registration, error) {
	reg := domain.Registration{
		EventID: eventID,
		UserID:  userID,
		Status:  domain.RegistrationStatusRegistered,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eventQuery := tx
		if tx.Dialector.Name() == "mysql" {
			eventQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var event domain.Event
		if err := eventQuery.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return fmt.Errorf("load event: %w", err)
		}

		if event.Status != domain.EventStatusApproved {
			return domain.ErrEventNotApproved
		}

		var existing int64
		if err := tx.Model(&domain.Registration{}).
			Where("event_id = ? AND user_id = ? AND status <> ?",
				eventID, userID, domain.RegistrationStatusCancelled).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("check registration: %w", err)
		}
		if existing > 0 {
			return domain.ErrAlreadyRegistered
		}

		var registered int64
		if err := tx.Model(&domain.Registration{}).
			Where("event_id = ? AND status = ?",
				eventID, domain.RegistrationStatusRegistered).
			Count(&registered).Error; err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		if registered >= int64(event.Capacity) {
			return domain.ErrEventFull
		}

		if err := tx.Create(&reg).Error; err != nil {
			// The unique index backstops the duplicate check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyRegistered
			}
			return fmt.Errorf("insert registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"registration_id": reg.ID,
		"event_id":        eventID,
		"user_id":         userID,
	}).Info("Registration created")

	return &reg, nil
}

// Count returns the live number of REGISTERED rows for an event.
func (s *RegistrationService) Count(ctx context.Context, eventID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Registration{}).
		Where("event_id = ? AND status = ?", eventID, domain.RegistrationStatusRegistered).
		Count(&n).Error
	return n, err
}

// IsRegistered reports whether a user holds an active registration for
// an event.
func (s *RegistrationService) IsRegistered(ctx context.Context, eventID, userID uint) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Registration{}).
		Where("event_id = ? AND user_id = ? AND status <> ?",
			eventID, userID, domain.RegistrationStatusCancelled).
		Count(&n).Error
	return n > 0, err
}
