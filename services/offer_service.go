package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/brewtable/brewtable-api/models"
	"gorm.io/gorm"
)

// OfferService decides whether a promotional offer applies to a subtotal,
// computes the discount, and reserves one use of the offer. Reservation is
// a compare-and-increment in a single UPDATE so a capped offer can never be
// oversold by concurrent orders.
type OfferService struct {
	db *gorm.DB
}

// NewOfferService creates an offer service on the given database
func NewOfferService(db *gorm.DB) *OfferService {
	return &OfferService{db: db}
}

// OfferApplication is the outcome of TryApply. Applied=false means the
// order simply proceeds without a discount; it is never a fatal condition.
type OfferApplication struct {
	Applied        bool
	DiscountAmount float64
	OfferID        *uint
	OfferCode      *string
}

// FindByCode resolves a customer-entered offer code to its offer. A missing
// code returns (nil, nil): the order goes ahead undiscounted.
func (s *OfferService) FindByCode(code string) (*models.Offer, error) {
	var offer models.Offer
	err := s.db.Where("code = ?", code).First(&offer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up offer code: %w", err)
	}
	return &offer, nil
}

// TryApply checks the offer against the subtotal at the given moment and,
// if everything holds, reserves one use. An offer that is missing, inactive,
// outside its validity window, exhausted, or below its minimum order is
// reported as not applied, with no error.
func (s *OfferService) TryApply(offerID uint, subtotal float64, now time.Time) (OfferApplication, error) {
	none := OfferApplication{}

	if subtotal < 0 {
		return none, &ValidationError{Field: "subtotal", Message: "must not be negative"}
	}

	var offer models.Offer
	err := s.db.First(&offer, offerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return none, nil
	}
	if err != nil {
		return none, fmt.Errorf("failed to load offer %d: %w", offerID, err)
	}

	if !offer.IsUsable(now) || subtotal < offer.MinimumOrder {
		return none, nil
	}

	discount := ComputeDiscount(&offer, subtotal)

	// Reserve one use. The usage-limit check is part of the same UPDATE, so
	// the read above can be stale without risk: if another order takes the
	// last use first, zero rows match and we report not-applied.
	res := s.db.Model(&models.Offer{}).
		Where("id = ? AND active = ? AND (usage_limit IS NULL OR used_count < usage_limit)", offerID, true).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return none, fmt.Errorf("failed to reserve offer %d: %w", offerID, res.Error)
	}
	if res.RowsAffected == 0 {
		return none, nil
	}

	return OfferApplication{
		Applied:        true,
		DiscountAmount: discount,
		OfferID:        &offer.ID,
		OfferCode:      offer.Code,
	}, nil
}

// Release gives back one reserved use. Callers must invoke this when order
// persistence fails after a successful TryApply, otherwise an abandoned
// creation attempt would starve the offer's usage limit.
func (s *OfferService) Release(offerID uint) error {
	res := s.db.Model(&models.Offer{}).
		Where("id = ? AND used_count > 0", offerID).
		UpdateColumn("used_count", gorm.Expr("used_count - 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to release offer %d: %w", offerID, res.Error)
	}
	return nil
}

// ComputeDiscount returns the discount the offer grants on the subtotal,
// before reservation. The result never exceeds the subtotal.
func ComputeDiscount(offer *models.Offer, subtotal float64) float64 {
	var discount float64
	switch offer.DiscountType {
	case models.DiscountPercentage:
		discount = subtotal * offer.DiscountValue / 100
		if offer.MaxDiscount != nil && discount > *offer.MaxDiscount {
			discount = *offer.MaxDiscount
		}
	case models.DiscountFlat:
		discount = offer.DiscountValue
	case models.DiscountBogo:
		// Item pairing is a catalog concern; the offer carries the value of
		// the free item as a flat amount.
		discount = offer.DiscountValue
	default:
		return 0
	}

	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
