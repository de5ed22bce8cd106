package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/brewtable/brewtable-api/config"
	"github.com/brewtable/brewtable-api/models"
	"github.com/brewtable/brewtable-api/services"
	"github.com/gin-gonic/gin"
)

// TableRequest represents the request body for creating or updating a table
type TableRequest struct {
	Number int    `json:"number" binding:"required,gt=0"`
	Label  string `json:"label"`
	Seats  int    `json:"seats" binding:"omitempty,gt=0"`
	Active *bool  `json:"active"`
}

// ListTables handles GET /api/v1/tables - all tables for the staff dashboard
func ListTables(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	var tables []models.CafeTable
	if err := config.GetDB().Order("number").Find(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tables,
	})
}

// CreateTable handles POST /api/v1/tables - registers a table (staff only)
func CreateTable(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	table := models.CafeTable{
		Number: req.Number,
		Label:  req.Label,
		Seats:  2,
		Active: true,
	}
	if req.Seats > 0 {
		table.Seats = req.Seats
	}
	if req.Active != nil {
		table.Active = *req.Active
	}

	if err := config.GetDB().Create(&table).Error; err != nil {
		// Works with both PostgreSQL and SQLite error strings
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TABLE_EXISTS",
					"message": "A table with this number already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create table",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    table,
	})
}

// UpdateTable handles PUT /api/v1/tables/:number - edits a table, including
// flipping its active flag (staff only). Deactivating a table immediately
// stops new orders against it; in-flight orders are unaffected.
func UpdateTable(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	table, ok := findTable(c)
	if !ok {
		return
	}

	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	table.Number = req.Number
	table.Label = req.Label
	if req.Seats > 0 {
		table.Seats = req.Seats
	}
	if req.Active != nil {
		table.Active = *req.Active
	}

	if err := config.GetDB().Save(table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update table",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    table,
	})
}

// GetTableQR handles GET /api/v1/tables/:number/qr - renders the printable
// QR code PNG for a table (staff only)
func GetTableQR(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	table, ok := findTable(c)
	if !ok {
		return
	}

	size := 512
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 64 || parsed > 2048 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_SIZE",
					"message": "size must be between 64 and 2048 pixels",
				},
			})
			return
		}
		size = parsed
	}

	qr := services.NewQRService(config.GetConfig())
	png, err := qr.TablePNG(table.Number, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "QR_RENDER_ERROR",
				"message": "Failed to render QR code",
			},
		})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}

// findTable loads the table addressed by the :number path parameter,
// responding on failure.
func findTable(c *gin.Context) (*models.CafeTable, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TABLE_NUMBER",
				"message": "Table number must be a number",
			},
		})
		return nil, false
	}

	var table models.CafeTable
	if err := config.GetDB().Where("number = ?", number).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TABLE_NOT_FOUND",
				"message": "Table not found",
			},
		})
		return nil, false
	}

	return &table, true
}
