package controllers

import (
	"net/http"
	"strconv"

	"github.com/brewtable/brewtable-api/config"
	"github.com/brewtable/brewtable-api/models"
	"github.com/brewtable/brewtable-api/services"
	"github.com/gin-gonic/gin"
)

// MenuItemRequest represents the request body for creating or updating a
// menu item
type MenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Category    string  `json:"category" binding:"required"`
	Available   *bool   `json:"available"`
}

// ListMenu handles GET /api/v1/menu - the customer-facing menu. Only
// available items are returned unless a staff caller passes ?all=true.
func ListMenu(c *gin.Context) {
	db := config.GetDB()

	query := db.Order("category, name")
	if c.Query("all") != "true" {
		query = query.Where("available = ?", true)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load menu",
			},
		})
		return
	}

	attachPhotoURLs(items)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// CreateMenuItem handles POST /api/v1/menu - adds a menu item (staff only)
func CreateMenuItem(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	var req MenuItemRequest
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

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := config.GetDB().Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create menu item",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateMenuItem handles PUT /api/v1/menu/:id - edits a menu item (staff
// only). Existing orders keep their snapshots; price edits only affect
// future orders.
func UpdateMenuItem(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	item, ok := findMenuItem(c)
	if !ok {
		return
	}

	var req MenuItemRequest
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

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := config.GetDB().Save(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update menu item",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// DeleteMenuItem handles DELETE /api/v1/menu/:id - soft-deletes a menu item
// (staff only)
func DeleteMenuItem(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	item, ok := findMenuItem(c)
	if !ok {
		return
	}

	if err := config.GetDB().Delete(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete menu item",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// UploadMenuItemPhoto handles POST /api/v1/menu/:id/image - stores a photo
// for a menu item (staff only)
func UploadMenuItemPhoto(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	item, ok := findMenuItem(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "An image file is required",
			},
		})
		return
	}

	photos := services.GetPhotoService()
	key, err := photos.UploadPhoto(item.ID, fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	// Replace any previous photo
	if item.ImageS3Key != nil {
		if err := photos.DeletePhoto(*item.ImageS3Key); err != nil {
			// Old photo is orphaned but the upload succeeded; log and move on
			c.Error(err) //nolint:errcheck
		}
	}

	item.ImageS3Key = &key
	if err := config.GetDB().Save(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save menu item photo",
			},
		})
		return
	}

	if url, err := photos.PhotoURL(key); err == nil {
		item.ImageURL = &url
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// findMenuItem loads the menu item addressed by the :id path parameter,
// responding on failure.
func findMenuItem(c *gin.Context) (*models.MenuItem, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Menu item id must be a number",
			},
		})
		return nil, false
	}

	var item models.MenuItem
	if err := config.GetDB().First(&item, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ITEM_NOT_FOUND",
				"message": "Menu item not found",
			},
		})
		return nil, false
	}

	return &item, true
}

// attachPhotoURLs fills the computed ImageURL field on items that have a
// stored photo.
func attachPhotoURLs(items []models.MenuItem) {
	photos := services.GetPhotoService()
	if photos == nil {
		return
	}
	for i := range items {
		if items[i].ImageS3Key == nil {
			continue
		}
		if url, err := photos.PhotoURL(*items[i].ImageS3Key); err == nil && url != "" {
			items[i].ImageURL = &url
		}
	}
}
