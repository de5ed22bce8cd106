package controllers

import (
	"errors"
	"net/http"

	"github.com/brewtable/brewtable-api/config"
	"github.com/brewtable/brewtable-api/models"
	"github.com/brewtable/brewtable-api/services"
	"github.com/gin-gonic/gin"
)

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	TableNumber   int                      `json:"table_number" binding:"required,gt=0"`
	CustomerName  string                   `json:"customer_name" binding:"required"`
	CustomerPhone string                   `json:"customer_phone" binding:"required"`
	OfferID       *uint                    `json:"offer_id"`
	OfferCode     string                   `json:"offer_code"`
	Notes         string                   `json:"notes"`
	Lines         []services.RequestedLine `json:"lines" binding:"required,min=1,dive"`
}

// UpdateNotesRequest represents the request body for editing order notes
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// CreateOrder handles POST /api/v1/orders - places a new order from a table
// (public, reached via the table QR code)
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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

	svc := services.NewOrderService(config.GetDB())
	order, err := svc.Create(services.CreateOrderInput{
		TableNumber:   req.TableNumber,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		OfferID:       req.OfferID,
		OfferCode:     req.OfferCode,
		Notes:         req.Notes,
		Lines:         req.Lines,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrder handles GET /api/v1/orders/:publicId - order status for the
// customer who placed it
func GetOrder(c *gin.Context) {
	svc := services.NewOrderService(config.GetDB())
	order, err := svc.GetByPublicID(c.Param("publicId"))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders?date=&status= - the staff dashboard
// listing for one day
func ListOrders(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	day, ok := parseDateParam(c)
	if !ok {
		return
	}

	status := models.OrderStatus(c.Query("status"))

	svc := services.NewOrderService(config.GetDB())
	orders, err := svc.OrdersForDay(day, status)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// StartPreparingOrder handles POST /api/v1/orders/:publicId/prepare
func StartPreparingOrder(c *gin.Context) {
	transitionOrder(c, func(svc *services.OrderService, id uint) (*models.Order, error) {
		return svc.StartPreparing(id)
	})
}

// CompleteOrder handles POST /api/v1/orders/:publicId/complete
func CompleteOrder(c *gin.Context) {
	transitionOrder(c, func(svc *services.OrderService, id uint) (*models.Order, error) {
		return svc.MarkCompleted(id)
	})
}

// MarkOrderPaid handles POST /api/v1/orders/:publicId/pay
func MarkOrderPaid(c *gin.Context) {
	transitionOrder(c, func(svc *services.OrderService, id uint) (*models.Order, error) {
		return svc.MarkPaid(id)
	})
}

// CancelOrder handles POST /api/v1/orders/:publicId/cancel
func CancelOrder(c *gin.Context) {
	transitionOrder(c, func(svc *services.OrderService, id uint) (*models.Order, error) {
		return svc.Cancel(id)
	})
}

// transitionOrder resolves the order and runs one state-machine operation,
// translating service errors into the response envelope.
func transitionOrder(c *gin.Context, op func(*services.OrderService, uint) (*models.Order, error)) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	svc := services.NewOrderService(config.GetDB())
	order, err := svc.GetByPublicID(c.Param("publicId"))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	updated, err := op(svc, order.ID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// UpdateOrderNotes handles PATCH /api/v1/orders/:publicId/notes
func UpdateOrderNotes(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}

	var req UpdateNotesRequest
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

	svc := services.NewOrderService(config.GetDB())
	order, err := svc.GetByPublicID(c.Param("publicId"))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	updated, err := svc.UpdateNotes(order.ID, req.Notes)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// respondOrderError maps order service errors to HTTP responses. Customers
// and staff get a specific reason for everything except storage failures,
// which surface as a generic retryable error.
func respondOrderError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var itemErr *services.ItemUnavailableError
	var transitionErr *services.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": validationErr.Error(),
			},
		})
	case errors.Is(err, services.ErrTableInactive):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TABLE_INACTIVE",
				"message": "This table is not active; please ask the staff for help",
			},
		})
	case errors.As(err, &itemErr):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ITEM_UNAVAILABLE",
				"message": itemErr.Error(),
			},
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": transitionErr.Error(),
				"current": transitionErr.Current,
			},
		})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "A temporary storage error occurred, please retry",
			},
		})
	}
}
