package services

import (
	"errors"
	"fmt"

	"github.com/brewtable/brewtable-api/models"
)

var (
	// ErrTableInactive is returned when an order targets a table that does
	// not exist or has been deactivated. No sequence number is allocated in
	// that case.
	ErrTableInactive = errors.New("table is not active")

	// ErrOrderNotFound is returned when an order id resolves to nothing.
	ErrOrderNotFound = errors.New("order not found")
)

// ValidationError reports a bad customer-supplied field. It is always
// raised before any storage write, so a validation failure has no side
// effects to undo.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ItemUnavailableError reports a requested menu item that no longer exists
// or is marked unavailable.
type ItemUnavailableError struct {
	MenuItemID uint
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("menu item %d is unavailable", e.MenuItemID)
}

// InvalidTransitionError reports a refused status change. Current is the
// order's real status at the time of the attempt so callers can inspect it
// and retry; the order itself is never mutated by a refused transition.
type InvalidTransitionError struct {
	Current   models.OrderStatus
	Requested models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %q to %q", e.Current, e.Requested)
}
