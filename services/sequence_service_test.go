package services

import (
	"sync"
	"testing"
	"time"

	"github.com/brewtable/brewtable-api/models"
	"github.com/stretchr/testify/assert"
)

func TestNextNumber_StartsAtOneAndIncrements(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewSequenceService(db)

	day := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	seq, number, err := svc.NextNumber(day)
	assert.NoError(t, err)
	assert.Equal(t, 1, seq)
	assert.Equal(t, "ORD-20250301-0001", number)

	seq, number, err = svc.NextNumber(day)
	assert.NoError(t, err)
	assert.Equal(t, 2, seq)
	assert.Equal(t, "ORD-20250301-0002", number)
}

func TestNextNumber_ResetsPerDay(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewSequenceService(db)

	day1 := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 0, 1, 0, 0, time.UTC)

	_, number1, err := svc.NextNumber(day1)
	assert.NoError(t, err)
	assert.Equal(t, "ORD-20250301-0001", number1)

	seq, number2, err := svc.NextNumber(day2)
	assert.NoError(t, err)
	assert.Equal(t, 1, seq)
	assert.Equal(t, "ORD-20250302-0001", number2)

	// Both day counters exist independently
	var count int64
	db.Model(&models.SequenceCounter{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestNextNumber_ConcurrentCallersGetDistinctNumbers(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewSequenceService(db)

	day := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	const callers = 25

	var wg sync.WaitGroup
	results := make(chan int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, _, err := svc.NextNumber(day)
			assert.NoError(t, err)
			results <- seq
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int]bool)
	for seq := range results {
		assert.False(t, seen[seq], "sequence %d was issued twice", seq)
		seen[seq] = true
	}
	assert.Len(t, seen, callers)

	// The counter row reflects every allocation
	var counter models.SequenceCounter
	assert.NoError(t, db.First(&counter, "day = ?", "20250301").Error)
	assert.Equal(t, callers, counter.LastValue)
}

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-20250301-0007", FormatOrderNumber("20250301", 7))
	assert.Equal(t, "ORD-20251231-1234", FormatOrderNumber("20251231", 1234))
	// Sequences past 9999 widen rather than wrap
	assert.Equal(t, "ORD-20250301-10000", FormatOrderNumber("20250301", 10000))
}
