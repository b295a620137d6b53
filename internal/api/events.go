package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"cems/internal/domain"     // Importing domain models
	"cems/internal/middleware" // Auth context helpers
	"cems/internal/service"    // Lifecycle and registration managers
	"cems/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

const eventCacheTTL = 60 * time.Second

// CreateEventRequest carries the organizer-supplied event fields
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
	Capacity    int       `json:"capacity" binding:"required,gt=0"`
	VenueID     string    `json:"venueId"`
	Category    string    `json:"category" binding:"required"`
	CoverImage  string    `json:"coverImage"`
}

// eventWithRegistration adds the caller's own-registration flag to a
// listed event, in the shape the original listing returned.
type eventWithRegistration struct {
	domain.EventSummary
	RegisteredUsers []gin.H `json:"registeredUsers"`
}

// invalidateEventCache drops the cached event listings after any
// write that changes what a listing would show.
func invalidateEventCache(ctx context.Context, rdb *redis.Client) {
	_ = utils.DeleteCache(ctx, rdb, "events:list:*")
	_ = utils.DeleteCache(ctx, rdb, "dashboard:stats:*")
}

// ListEventsHandler returns events filtered by status and category.
// Anonymous listings are cached; authenticated ones also carry the
// caller's registration flag per event and bypass the cache.
func ListEventsHandler(events *service.EventService, regs *service.RegistrationService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")
		category := c.Query("category")
		claims, authed := middleware.Claims(c)

		cacheKey := "events:list:status=" + status + ":category=" + category
		if !authed {
			var cached []domain.EventSummary
			if found, err := utils.GetCache(c.Request.Context(), rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		list, err := events.List(c.Request.Context(), status, category)
		if err != nil {
			respondError(c, err)
			return
		}

		if !authed {
			_ = utils.SetCache(c.Request.Context(), rdb, cacheKey, list, eventCacheTTL)
			c.JSON(http.StatusOK, list)
			return
		}

		// Flag the caller's own registrations. A failed lookup just
		// leaves the flag empty.
		resp := make([]eventWithRegistration, len(list))
		for i, ev := range list {
			resp[i] = eventWithRegistration{EventSummary: ev, RegisteredUsers: []gin.H{}}
			if ok, err := regs.IsRegistered(c.Request.Context(), ev.ID, claims.UserID); err == nil && ok {
				resp[i].RegisteredUsers = []gin.H{{"id": claims.UserID}}
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetEventHandler returns one event with its registered users
func GetEventHandler(events *service.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id"})
			return
		}
		details, err := events.Details(c.Request.Context(), uint(eventID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, details)
	}
}

// CreateEventHandler creates a PENDING event owned by the caller
func CreateEventHandler(events *service.EventService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.Claims(c)
		var req CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All required fields must be provided"})
			return
		}
		summary, err := events.Create(c.Request.Context(), claims.UserID, domain.CreateEventInput{
			Title:       req.Title,
			Description: req.Description,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Capacity:    req.Capacity,
			VenueID:     req.VenueID,
			Category:    req.Category,
			CoverImage:  req.CoverImage,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateEventCache(c.Request.Context(), rdb)
		c.JSON(http.StatusCreated, summary)
	}
}

// RegisterEventHandler signs the caller up for an event
func RegisterEventHandler(regs *service.RegistrationService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.Claims(c)
		eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id"})
			return
		}
		reg, err := regs.Register(c.Request.Context(), uint(eventID), claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateEventCache(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{
			"message":        "Successfully registered for event",
			"registrationId": reg.ID,
		})
	}
}

// ApproveEventHandler moves an event to APPROVED (admin only, enforced
// by the route policy table)
func ApproveEventHandler(events *service.EventService, rdb *redis.Client) gin.HandlerFunc {
	return setStatusHandler(events, rdb, (*service.EventService).Approve, "Event approved successfully")
}

// RejectEventHandler moves an event to REJECTED
func RejectEventHandler(events *service.EventService, rdb *redis.Client) gin.HandlerFunc {
	return setStatusHandler(events, rdb, (*service.EventService).Reject, "Event rejected successfully")
}

func setStatusHandler(events *service.EventService, rdb *redis.Client, op func(*service.EventService, context.Context, uint) error, okMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id"})
			return
		}
		if err := op(events, c.Request.Context(), uint(eventID)); err != nil {
			respondError(c, err)
			return
		}
		invalidateEventCache(c.Request.Context(), rdb)
		c.JSON(http.StatusOK, gin.H{"message": okMessage})
	}
}
