package api

import (
	"net/http"

	"cems/internal/middleware"
	"cems/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyzeRequest is the free-text input to the interest detector
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnalyzeInterestsHandler runs the keyword detector over the supplied
// text and folds the result into the caller's stored profile
func AnalyzeInterestsHandler(interests *service.InterestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.Claims(c)
		var req AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Text is required"})
			return
		}
		detected, analysis, err := interests.Analyze(c.Request.Context(), claims.UserID, req.Text)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"interests": detected,
			"analysis":  analysis,
		})
	}
}

// RecommendedEventsHandler returns approved events scored against the
// caller's interest profile. No profile on file yields an empty list.
func RecommendedEventsHandler(interests *service.InterestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.Claims(c)
		recommended, err := interests.Recommend(c.Request.Context(), claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, recommended)
	}
}
