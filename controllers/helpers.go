package controllers

import (
	"net/http"
	"time"

	"github.com/brewtable/brewtable-api/config"
	"github.com/brewtable/brewtable-api/middleware"
	"github.com/brewtable/brewtable-api/models"
	"github.com/gin-gonic/gin"
)

// requireStaff resolves the authenticated user and checks the staff role.
// On failure it writes the error response and returns ok=false; handlers
// just return in that case.
func requireStaff(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "Staff profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	if !user.IsStaff() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Staff access required",
			},
		})
		return nil, false
	}

	return &user, true
}

// parseDateParam reads an optional ?date=YYYY-MM-DD query parameter,
// defaulting to today (UTC). The second return value reports whether the
// value parsed; the handler has already responded on failure.
func parseDateParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), true
	}

	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DATE",
				"message": "date must be in YYYY-MM-DD format",
			},
		})
		return time.Time{}, false
	}
	return day, true
}
