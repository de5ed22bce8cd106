package services

import (
	"testing"
	"time"

	"github.com/brewtable/brewtable-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedStatsOrder(t *testing.T, db *gorm.DB, seq int, orderedAt time.Time, status models.OrderStatus, total float64) {
	t.Helper()
	orderNumber := FormatOrderNumber(orderedAt.Format("20060102"), seq)
	order := models.Order{
		PublicID:      orderNumber,
		OrderNumber:   orderNumber,
		Sequence:      seq,
		Token:         1000 + seq,
		TableNumber:   1,
		CustomerName:  "Stats",
		CustomerPhone: "5550000000",
		OrderedAt:     orderedAt,
		TotalAmount:   total,
		Status:        status,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
}

func TestStatsForDay(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewStatsService(db)

	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	// A paid order worth 230 and an in-flight order worth 100
	seedStatsOrder(t, db, 1, day, models.StatusHistory, 230)
	seedStatsOrder(t, db, 2, day.Add(time.Hour), models.StatusPreparing, 100)
	seedStatsOrder(t, db, 3, day.Add(2*time.Hour), models.StatusPending, 40)
	seedStatsOrder(t, db, 4, day.Add(3*time.Hour), models.StatusCompleted, 60)
	seedStatsOrder(t, db, 5, day.Add(4*time.Hour), models.StatusCancelled, 75)

	stats, err := svc.StatsForDay(day)
	assert.NoError(t, err)

	assert.Equal(t, "20250301", stats.Day)
	assert.Equal(t, 5, stats.TotalOrders, "cancelled orders still count as placed")
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 1, stats.PreparingOrders)
	assert.Equal(t, 1, stats.CompletedOrders)
	assert.Equal(t, 1, stats.PaidOrders)
	assert.Equal(t, 1, stats.CancelledOrders)

	// Only the archived order has been earned; cancelled money is neither
	// earned nor expected
	assert.Equal(t, 230.0, stats.TotalEarnings)
	assert.Equal(t, 200.0, stats.PendingAmount)
}

func TestStatsForDay_FiltersByDay(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewStatsService(db)

	day := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	seedStatsOrder(t, db, 1, day, models.StatusHistory, 500)
	// Just before midnight and just after the day ends
	seedStatsOrder(t, db, 2, day.Add(-13*time.Hour), models.StatusHistory, 100)
	seedStatsOrder(t, db, 3, day.Add(12*time.Hour), models.StatusHistory, 100)

	stats, err := svc.StatsForDay(day)
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 500.0, stats.TotalEarnings)
}

func TestStatsForDay_EmptyDay(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewStatsService(db)

	stats, err := svc.StatsForDay(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.TotalOrders)
	assert.Equal(t, 0.0, stats.TotalEarnings)
	assert.Equal(t, 0.0, stats.PendingAmount)
}

func TestStatsForDay_TracksLifecycleProgress(t *testing.T) {
	db := setupServiceTestDB(t)
	_, items := seedCafe(t, db)
	orders := NewOrderService(db)
	svc := NewStatsService(db)

	order, err := orders.Create(validInput(items))
	assert.NoError(t, err)

	stats, _ := svc.StatsForDay(time.Now().UTC())
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 250.0, stats.PendingAmount)
	assert.Equal(t, 0.0, stats.TotalEarnings)

	orders.MarkCompleted(order.ID)
	orders.MarkPaid(order.ID)

	stats, _ = svc.StatsForDay(time.Now().UTC())
	assert.Equal(t, 0, stats.PendingOrders)
	assert.Equal(t, 1, stats.PaidOrders)
	assert.Equal(t, 0.0, stats.PendingAmount)
	assert.Equal(t, 250.0, stats.TotalEarnings)
}
