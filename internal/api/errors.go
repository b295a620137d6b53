package api

import (
	"errors"
	"net/http"
	"strings"

	"cems/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps a domain error to its HTTP status and message in
// one place instead of per handler. Unknown errors become a 500 and
// are logged; nothing is retried.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationMessage(err)})
	case errors.Is(err, domain.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, domain.ErrEventNotApproved):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Event is not available for registration"})
	case errors.Is(err, domain.ErrAlreadyRegistered):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Already registered for this event"})
	case errors.Is(err, domain.ErrEventFull):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Event is at full capacity"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
	default:
		logrus.WithField("error", err.Error()).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// validationMessage strips the sentinel prefix so the caller sees the
// concrete detail, e.g. "capacity must be positive".
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	if msg == "" {
		msg = "Invalid request"
	}
	return msg
}
