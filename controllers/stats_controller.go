package controllers

import (
	"net/http"

	"github.com/brewtable/brewtable-api/config"
	"github.com/brewtable/brewtable-api/services"
	"github.com/gin-gonic/gin"
)

// GetDailyStats handles GET /api/v1/stats/daily?date= - counts per status
// and revenue for one day, for the staff dashboard
func GetDailyStats(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	day, ok := parseDateParam(c)
	if !ok {
		return
	}

	svc := services.NewStatsService(config.GetDB())
	stats, err := svc.StatsForDay(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to compute daily statistics",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
