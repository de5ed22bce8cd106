package models

import (
	"time"

	"gorm.io/gorm"
)

// Discount kinds supported by offers.
const (
	DiscountPercentage = "percentage"
	DiscountFlat       = "flat"
	DiscountBogo       = "bogo"
)

// Offer is a promotional discount rule with a validity window and an
// optional usage cap. UsedCount is only ever changed by the offer service's
// atomic reservation and release; staff CRUD never writes it.
type Offer struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Code          *string        `gorm:"uniqueIndex" json:"code,omitempty"` // optional redemption code
	DiscountType  string         `gorm:"not null" json:"discount_type"`     // percentage, flat, bogo
	DiscountValue float64        `gorm:"not null" json:"discount_value"`
	MinimumOrder  float64        `gorm:"not null;default:0" json:"minimum_order"`
	MaxDiscount   *float64       `json:"max_discount,omitempty"` // cap for percentage discounts
	ValidFrom     time.Time      `gorm:"not null" json:"valid_from"`
	ValidTo       time.Time      `gorm:"not null" json:"valid_to"`
	Active        bool           `gorm:"not null;default:true" json:"active"`
	UsageLimit    *int           `json:"usage_limit,omitempty"` // nil means unlimited
	UsedCount     int            `gorm:"not null;default:0" json:"used_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Offer model
func (Offer) TableName() string {
	return "offers"
}

// IsUsable reports whether the offer can be applied at the given moment:
// active, inside its validity window and, if capped, with uses remaining.
func (o *Offer) IsUsable(now time.Time) bool {
	if !o.Active {
		return false
	}
	if now.Before(o.ValidFrom) || now.After(o.ValidTo) {
		return false
	}
	if o.UsageLimit != nil && o.UsedCount >= *o.UsageLimit {
		return false
	}
	return true
}
