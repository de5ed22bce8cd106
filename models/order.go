package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the closed set of lifecycle states an order moves through.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"   // created, waiting for the kitchen
	StatusPreparing OrderStatus = "preparing" // kitchen has started on it
	StatusCompleted OrderStatus = "completed" // ready / served, awaiting payment
	StatusHistory   OrderStatus = "history"   // paid and archived
	StatusCancelled OrderStatus = "cancelled" // terminal, reachable from pending/preparing
)

// allowedTransitions is the authoritative transition table. Every status
// change in the system goes through CanTransitionTo; handlers and services
// never re-implement these rules ad hoc.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCompleted, StatusCancelled},
	StatusPreparing: {StatusCompleted, StatusCancelled},
	StatusCompleted: {StatusHistory},
	StatusHistory:   {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether the state machine permits moving from s
// to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// SourceStatuses returns every status from which target is reachable.
// Used to build the conditional UPDATE that serializes concurrent
// transition requests for the same order.
func SourceStatuses(target OrderStatus) []OrderStatus {
	var sources []OrderStatus
	for from, targets := range allowedTransitions {
		for _, next := range targets {
			if next == target {
				sources = append(sources, from)
			}
		}
	}
	return sources
}

// Order represents a customer's placed order at a table, tracked from
// creation until it is paid and archived. Line items, prices and any
// applied discount are snapshots taken at creation time; later menu or
// offer edits never change an existing order.
type Order struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	PublicID       string         `gorm:"uniqueIndex;not null" json:"public_id"`    // UUID shared with the customer
	OrderNumber    string         `gorm:"uniqueIndex;not null" json:"order_number"` // ORD-YYYYMMDD-NNNN
	Sequence       int            `gorm:"not null" json:"sequence"`                 // daily sequence, resets each day
	Token          int            `gorm:"not null" json:"token"`                    // short number called out by kitchen staff
	TableNumber    int            `gorm:"not null;index" json:"table_number"`
	CustomerName   string         `gorm:"not null" json:"customer_name"`
	CustomerPhone  string         `gorm:"not null" json:"customer_phone"` // digits only
	OrderedAt      time.Time      `gorm:"not null;index" json:"ordered_at"`
	Lines          []OrderLine    `gorm:"foreignKey:OrderID" json:"lines"`
	SubtotalAmount float64        `gorm:"not null" json:"subtotal_amount"`
	DiscountAmount float64        `gorm:"not null;default:0" json:"discount_amount"`
	TotalAmount    float64        `gorm:"not null" json:"total_amount"` // max(0, subtotal - discount)
	OfferID        *uint          `gorm:"index" json:"offer_id,omitempty"`
	OfferCode      *string        `json:"offer_code,omitempty"`
	Notes          string         `json:"notes"`
	Status         OrderStatus    `gorm:"not null;default:'pending';index" json:"status"`
	PreparingAt    *time.Time     `json:"preparing_at,omitempty"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	PaidAt         *time.Time     `json:"paid_at,omitempty"`
	CancelledAt    *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine is an immutable snapshot of one menu item on an order. Name and
// unit price are copied from the menu at creation time, not referenced live.
type OrderLine struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderID      uint    `gorm:"not null;index" json:"order_id"`
	MenuItemID   uint    `gorm:"not null" json:"menu_item_id"`
	Name         string  `gorm:"not null" json:"name"`
	UnitPrice    float64 `gorm:"not null" json:"unit_price"`
	Quantity     int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Instructions string  `json:"instructions"` // e.g. "oat milk", "no onions"
}

// TableName specifies the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// LineTotal returns the price contribution of this line.
func (l OrderLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}
