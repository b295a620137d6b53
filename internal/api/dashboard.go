package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"cems/internal/domain"     // Importing domain models
	"cems/internal/middleware" // Auth context helpers
	"cems/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// DashboardStatsHandler returns role-dependent aggregates: students
// see their registrations and upcoming approved events, organizers and
// admins see their own events and total attendees. Results are cached
// per user with a short TTL and invalidated alongside the event cache.
func DashboardStatsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.Claims(c)
		ctx := c.Request.Context()

		cacheKey := "dashboard:stats:user:" + strconv.Itoa(int(claims.UserID))
		var cached map[string]int64
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}

		stats := map[string]int64{}
		var totalEvents int64
		if err := db.Model(&domain.Event{}).Count(&totalEvents).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching stats"})
			return
		}
		stats["totalEvents"] = totalEvents

		var err error
		switch claims.Role {
		case domain.RoleStudent:
			err = studentStats(db, claims.UserID, stats)
		default: // Organizer and admin share the same view
			err = organizerStats(db, claims.UserID, stats)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching stats"})
			return
		}

		_ = utils.SetCache(ctx, rdb, cacheKey, stats, 60*time.Second)
		c.JSON(http.StatusOK, stats)
	}
}

func studentStats(db *gorm.DB, userID uint, stats map[string]int64) error {
	var myRegistrations int64
	if err := db.Model(&domain.Registration{}).
		Where("user_id = ? AND status = ?", userID, domain.RegistrationStatusRegistered).
		Count(&myRegistrations).Error; err != nil {
		return err
	}
	stats["myRegistrations"] = myRegistrations

	var upcoming int64
	if err := db.Model(&domain.Event{}).
		Where("start_time > ? AND status = ?", time.Now(), domain.EventStatusApproved).
		Count(&upcoming).Error; err != nil {
		return err
	}
	stats["upcomingEvents"] = upcoming
	return nil
}

func organizerStats(db *gorm.DB, userID uint, stats map[string]int64) error {
	var myEvents int64
	if err := db.Model(&domain.Event{}).
		Where("organizer_id = ?", userID).
		Count(&myEvents).Error; err != nil {
		return err
	}
	stats["myEvents"] = myEvents

	var attendees int64
	if err := db.Model(&domain.Registration{}).
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("events.organizer_id = ? AND registrations.status = ?",
			userID, domain.RegistrationStatusRegistered).
		Count(&attendees).Error; err != nil {
		return err
	}
	stats["totalAttendees"] = attendees
	return nil
}
