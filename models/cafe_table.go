package models

import (
	"time"

	"gorm.io/gorm"
)

// CafeTable is one physical table in the café. Each active table has a QR
// code pointing customers at the ordering page for its number; orders can
// only be placed against active tables.
type CafeTable struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Number    int            `gorm:"uniqueIndex;not null" json:"number"`
	Label     string         `json:"label"` // e.g. "window booth", "patio 2"
	Seats     int            `gorm:"not null;default:2" json:"seats"`
	Active    bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the CafeTable model
func (CafeTable) TableName() string {
	return "cafe_tables"
}
