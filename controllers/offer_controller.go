package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/brewtable/brewtable-api/config"
	"github.com/brewtable/brewtable-api/models"
	"github.com/gin-gonic/gin"
)

// OfferRequest represents the request body for creating or updating an
// offer. UsedCount is deliberately absent: usage is only changed by the
// offer service's atomic reservation.
type OfferRequest struct {
	Name          string   `json:"name" binding:"required"`
	Code          *string  `json:"code"`
	DiscountType  string   `json:"discount_type" binding:"required,oneof=percentage flat bogo"`
	DiscountValue float64  `json:"discount_value" binding:"required,gt=0"`
	MinimumOrder  float64  `json:"minimum_order" binding:"gte=0"`
	MaxDiscount   *float64 `json:"max_discount"`
	ValidFrom     string   `json:"valid_from" binding:"required"` // RFC 3339
	ValidTo       string   `json:"valid_to" binding:"required"`   // RFC 3339
	Active        *bool    `json:"active"`
	UsageLimit    *int     `json:"usage_limit"`
}

// ListOffers handles GET /api/v1/offers - all offers with usage (staff only)
func ListOffers(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	var offers []models.Offer
	if err := config.GetDB().Order("valid_to DESC").Find(&offers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load offers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    offers,
	})
}

// CreateOffer handles POST /api/v1/offers - creates an offer (staff only)
func CreateOffer(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	req, window, ok := bindOfferRequest(c)
	if !ok {
		return
	}

	offer := models.Offer{
		Name:          req.Name,
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinimumOrder:  req.MinimumOrder,
		MaxDiscount:   req.MaxDiscount,
		ValidFrom:     window[0],
		ValidTo:       window[1],
		Active:        true,
		UsageLimit:    req.UsageLimit,
	}
	if req.Active != nil {
		offer.Active = *req.Active
	}

	if err := config.GetDB().Create(&offer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create offer",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    offer,
	})
}

// UpdateOffer handles PUT /api/v1/offers/:id - edits an offer (staff only).
// Past orders keep the discount they were created with.
func UpdateOffer(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Offer id must be a number",
			},
		})
		return
	}

	var offer models.Offer
	if err := config.GetDB().First(&offer, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "OFFER_NOT_FOUND",
				"message": "Offer not found",
			},
		})
		return
	}

	req, window, ok := bindOfferRequest(c)
	if !ok {
		return
	}

	offer.Name = req.Name
	offer.Code = req.Code
	offer.DiscountType = req.DiscountType
	offer.DiscountValue = req.DiscountValue
	offer.MinimumOrder = req.MinimumOrder
	offer.MaxDiscount = req.MaxDiscount
	offer.ValidFrom = window[0]
	offer.ValidTo = window[1]
	offer.UsageLimit = req.UsageLimit
	if req.Active != nil {
		offer.Active = *req.Active
	}

	// Save would also write used_count from the loaded struct; restrict the
	// update to the editable columns so a concurrent reservation is never
	// overwritten.
	err = config.GetDB().Model(&offer).
		Select("name", "code", "discount_type", "discount_value", "minimum_order",
			"max_discount", "valid_from", "valid_to", "usage_limit", "active").
		Updates(&offer).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update offer",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    offer,
	})
}

// bindOfferRequest parses and validates the shared offer payload, including
// the validity window.
func bindOfferRequest(c *gin.Context) (*OfferRequest, [2]time.Time, bool) {
	var req OfferRequest
	var window [2]time.Time

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return nil, window, false
	}

	from, err1 := time.Parse(time.RFC3339, req.ValidFrom)
	to, err2 := time.Parse(time.RFC3339, req.ValidTo)
	if err1 != nil || err2 != nil || !to.After(from) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_WINDOW",
				"message": "valid_from and valid_to must be RFC 3339 timestamps with valid_to after valid_from",
			},
		})
		return nil, window, false
	}

	window[0] = from
	window[1] = to
	return &req, window, true
}
