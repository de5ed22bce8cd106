package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/brewtable/brewtable-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService constructs orders from validated carts and owns the status
// state machine. Orders are only ever mutated through the transition
// operations here (plus the one allowed notes edit); there are no arbitrary
// field updates after creation.
type OrderService struct {
	db        *gorm.DB
	sequences *SequenceService
	offers    *OfferService
	catalog   *CatalogService
}

// NewOrderService creates an order service and its collaborators on the
// given database
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:        db,
		sequences: NewSequenceService(db),
		offers:    NewOfferService(db),
		catalog:   NewCatalogService(db),
	}
}

// Offers exposes the offer ledger, for handlers that resolve codes.
func (s *OrderService) Offers() *OfferService {
	return s.offers
}

// CreateOrderInput is a validated cart plus customer details. At most one
// of OfferID / OfferCode is expected; the code form is what customers type
// in, the id form is what the dashboard sends.
type CreateOrderInput struct {
	TableNumber   int
	CustomerName  string
	CustomerPhone string
	OfferID       *uint
	OfferCode     string
	Notes         string
	Lines         []RequestedLine
}

// Create turns a cart into a durably numbered pending order.
//
// The steps run in precondition order: nothing is written until validation,
// the table check and menu pricing have all passed. The offer reservation
// and the order write form a small saga — if anything fails after a use was
// reserved, the reservation is released so a capped offer is not starved by
// failed attempts.
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	var table models.CafeTable
	err := s.db.Where("number = ? AND active = ?", input.TableNumber, true).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTableInactive
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check table %d: %w", input.TableNumber, err)
	}

	lines, err := s.catalog.PriceLines(input.Lines)
	if err != nil {
		return nil, err
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += line.LineTotal()
	}

	now := time.Now().UTC()

	offerID := input.OfferID
	if offerID == nil && input.OfferCode != "" {
		offer, err := s.offers.FindByCode(input.OfferCode)
		if err != nil {
			return nil, err
		}
		if offer != nil {
			offerID = &offer.ID
		}
	}

	application := OfferApplication{}
	if offerID != nil {
		application, err = s.offers.TryApply(*offerID, subtotal, now)
		if err != nil {
			return nil, err
		}
	}

	order, err := s.persistOrder(input, lines, subtotal, application, now)
	if err != nil {
		// Compensate: the reserved offer use must not leak when the order
		// never materialized.
		if application.Applied {
			if releaseErr := s.offers.Release(*application.OfferID); releaseErr != nil {
				return nil, fmt.Errorf("%w (offer release also failed: %v)", err, releaseErr)
			}
		}
		return nil, err
	}

	return order, nil
}

// persistOrder allocates the order number and writes the order with its
// lines in one transaction.
func (s *OrderService) persistOrder(input CreateOrderInput, lines []models.OrderLine, subtotal float64, application OfferApplication, now time.Time) (*models.Order, error) {
	sequence, orderNumber, err := s.sequences.NextNumber(now)
	if err != nil {
		return nil, err
	}

	total := subtotal - application.DiscountAmount
	if total < 0 {
		total = 0
	}

	order := models.Order{
		PublicID:       uuid.NewString(),
		OrderNumber:    orderNumber,
		Sequence:       sequence,
		Token:          rand.Intn(9000) + 1000,
		TableNumber:    input.TableNumber,
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		OrderedAt:      now,
		Lines:          lines,
		SubtotalAmount: subtotal,
		DiscountAmount: application.DiscountAmount,
		TotalAmount:    total,
		OfferID:        application.OfferID,
		OfferCode:      application.OfferCode,
		Notes:          input.Notes,
		Status:         models.StatusPending,
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &order, nil
}

// StartPreparing moves a pending order into preparation.
func (s *OrderService) StartPreparing(id uint) (*models.Order, error) {
	return s.transition(id, models.StatusPreparing, "preparing_at")
}

// MarkCompleted marks a pending or preparing order as ready.
func (s *OrderService) MarkCompleted(id uint) (*models.Order, error) {
	return s.transition(id, models.StatusCompleted, "completed_at")
}

// MarkPaid records payment for a completed order and archives it.
func (s *OrderService) MarkPaid(id uint) (*models.Order, error) {
	return s.transition(id, models.StatusHistory, "paid_at")
}

// Cancel cancels an order that has not been completed yet. The row is kept
// for audit; cancellation is a terminal status, not a deletion.
func (s *OrderService) Cancel(id uint) (*models.Order, error) {
	return s.transition(id, models.StatusCancelled, "cancelled_at")
}

// transition performs one guarded state change. The WHERE clause carries
// the allowed source statuses, so two concurrent requests for the same
// order are serialized by the row update: exactly one matches, the other
// reloads the order and reports InvalidTransition with the real current
// status. The transition timestamp is set exactly once, here.
func (s *OrderService) transition(id uint, target models.OrderStatus, stampColumn string) (*models.Order, error) {
	sources := models.SourceStatuses(target)

	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", id, sources).
		Updates(map[string]interface{}{
			"status":    target,
			stampColumn: time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		var current models.Order
		if err := s.db.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOrderNotFound
			}
			return nil, fmt.Errorf("failed to load order %d: %w", id, err)
		}
		return nil, &InvalidTransitionError{Current: current.Status, Requested: target}
	}

	return s.GetByID(id)
}

// UpdateNotes replaces the free-text notes on an order. Notes are the one
// field staff may edit after creation.
func (s *OrderService) UpdateNotes(id uint, notes string) (*models.Order, error) {
	res := s.db.Model(&models.Order{}).Where("id = ?", id).Update("notes", notes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update notes on order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return s.GetByID(id)
}

// GetByID loads one order with its lines.
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Lines").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return &order, nil
}

// GetByPublicID loads one order by the UUID shared with the customer.
func (s *OrderService) GetByPublicID(publicID string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Lines").Where("public_id = ?", publicID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", publicID, err)
	}
	return &order, nil
}

// OrdersForDay lists the orders placed on the given day, newest sequence
// first, optionally filtered by status.
func (s *OrderService) OrdersForDay(day time.Time, status models.OrderStatus) ([]models.Order, error) {
	start, end := DayBounds(day)

	query := s.db.Preload("Lines").
		Where("ordered_at >= ? AND ordered_at < ?", start, end).
		Order("sequence DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// DayBounds returns the UTC [start, end) range covering the given day.
func DayBounds(day time.Time) (time.Time, time.Time) {
	d := day.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func validateCreateInput(input CreateOrderInput) error {
	if input.CustomerName == "" {
		return &ValidationError{Field: "customer_name", Message: "is required"}
	}
	if !isValidPhone(input.CustomerPhone) {
		return &ValidationError{Field: "customer_phone", Message: "must be exactly 10 digits"}
	}
	if len(input.Lines) == 0 {
		return &ValidationError{Field: "lines", Message: "cart must not be empty"}
	}
	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return &ValidationError{Field: "lines", Message: fmt.Sprintf("quantity for item %d must be at least 1", line.MenuItemID)}
		}
	}
	return nil
}

// isValidPhone accepts exactly 10 digits, nothing else.
func isValidPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
