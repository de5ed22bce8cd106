package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem represents one item on the café menu
type MenuItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null;check:price >= 0" json:"price"`
	Category    string         `gorm:"not null;index" json:"category"` // e.g. "coffee", "pastry", "sandwich"
	Available   bool           `gorm:"not null;default:true" json:"available"`
	ImageS3Key  *string        `json:"image_s3_key,omitempty"`       // nullable, S3 key for the item photo
	ImageURL    *string        `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for the photo
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
