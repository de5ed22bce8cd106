package services

import (
	"fmt"

	"github.com/brewtable/brewtable-api/models"
	"gorm.io/gorm"
)

// RequestedLine is one cart entry as submitted by the customer.
type RequestedLine struct {
	MenuItemID   uint   `json:"menu_item_id" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	Instructions string `json:"instructions"`
}

// CatalogService resolves cart entries into priced order line snapshots.
// Prices and names are copied at this moment so historical orders are
// immune to later menu edits.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a catalog service on the given database
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// PriceLines resolves each requested line against the current menu. It
// fails with ItemUnavailableError if any item is missing or marked
// unavailable; the caller then refuses the whole order.
func (s *CatalogService) PriceLines(requested []RequestedLine) ([]models.OrderLine, error) {
	ids := make([]uint, 0, len(requested))
	for _, line := range requested {
		ids = append(ids, line.MenuItemID)
	}

	var items []models.MenuItem
	if err := s.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	byID := make(map[uint]models.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	lines := make([]models.OrderLine, 0, len(requested))
	for _, req := range requested {
		item, ok := byID[req.MenuItemID]
		if !ok || !item.Available {
			return nil, &ItemUnavailableError{MenuItemID: req.MenuItemID}
		}
		lines = append(lines, models.OrderLine{
			MenuItemID:   item.ID,
			Name:         item.Name,
			UnitPrice:    item.Price,
			Quantity:     req.Quantity,
			Instructions: req.Instructions,
		})
	}

	return lines, nil
}
