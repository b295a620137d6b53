package api

import (
	"errors"
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"

	"cems/internal/domain"     // Importing domain models
	"cems/internal/middleware" // Auth context helpers
	"cems/internal/utils"      // JWT utilities

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// UpdateUserRequest carries the editable profile fields. Role is fixed
// at signup and deliberately absent.
type UpdateUserRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// ListUsersHandler returns all users, newest first (admin only,
// enforced by the route policy table)
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// UpdateUserHandler updates a profile. Non-admins may only edit their
// own, and a self-update reissues the token so the claims stay in sync
// with the stored profile.
func UpdateUserHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.Claims(c)
		userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}
		isSelf := claims.UserID == uint(userID)
		if !isSelf && claims.Role != domain.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}

		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}

		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, domain.ErrUserNotFound)
				return
			}
			respondError(c, err)
			return
		}

		updates := map[string]any{
			"name":   req.Name,
			"email":  strings.ToLower(req.Email),
			"phone":  req.Phone,
			"avatar": req.Avatar,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				respondError(c, domain.ErrEmailTaken)
				return
			}
			respondError(c, err)
			return
		}
		// Reload so the response and any reissued token carry the
		// stored values, not the in-memory ones.
		if err := db.First(&user, userID).Error; err != nil {
			respondError(c, err)
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id":    user.ID,
			"updated_by": claims.UserID,
		}).Info("Profile updated")

		if isSelf {
			token, err := utils.GenerateJWT(&user, jwtSecret)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"message": "Profile updated successfully",
				"user":    user,
				"token":   token,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "User updated successfully",
			"user":    user,
		})
	}
}
