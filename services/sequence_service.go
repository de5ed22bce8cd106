package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SequenceService hands out unique, day-scoped order numbers. Counting
// existing orders and using count+1 is racy: two concurrent creates can
// observe the same count and collide. Instead each day has one counter row
// that is incremented and read back in a single storage round trip, so
// uniqueness holds under any number of concurrent callers. A crash between
// allocation and order persistence leaves a gap in the sequence, never a
// duplicate.
type SequenceService struct {
	db *gorm.DB
}

// NewSequenceService creates a sequence service on the given database
func NewSequenceService(db *gorm.DB) *SequenceService {
	return &SequenceService{db: db}
}

// NextNumber allocates the next order number for the given day and returns
// the raw sequence plus its formatted form, e.g. (7, "ORD-20250301-0007").
func (s *SequenceService) NextNumber(day time.Time) (int, string, error) {
	dayKey := day.UTC().Format("20060102")

	// Upsert-increment in one statement. Works on both PostgreSQL and
	// SQLite, which the tests run against.
	var last int
	err := s.db.Raw(`
		INSERT INTO sequence_counters (day, last_value)
		VALUES (?, 1)
		ON CONFLICT (day) DO UPDATE SET last_value = sequence_counters.last_value + 1
		RETURNING last_value
	`, dayKey).Scan(&last).Error
	if err != nil {
		return 0, "", fmt.Errorf("failed to allocate order number for %s: %w", dayKey, err)
	}

	return last, FormatOrderNumber(dayKey, last), nil
}

// FormatOrderNumber renders the stable external order number shape:
// "ORD-" + 8-digit date + "-" + 4-digit zero-padded daily sequence.
// Receipts and kitchen displays depend on this exact format.
func FormatOrderNumber(dayKey string, sequence int) string {
	return fmt.Sprintf("ORD-%s-%04d", dayKey, sequence)
}
