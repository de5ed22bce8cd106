package models

// SequenceCounter holds the last order number issued for one calendar day.
// The row is created lazily by the first order of the day and only ever
// moves forward via the sequence service's atomic upsert.
type SequenceCounter struct {
	Day       string `gorm:"primaryKey" json:"day"` // YYYYMMDD
	LastValue int    `gorm:"not null" json:"last_value"`
}

// TableName specifies the table name for the SequenceCounter model
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
