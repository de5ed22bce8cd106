package services

import (
	"fmt"
	"time"

	"github.com/brewtable/brewtable-api/models"
	"gorm.io/gorm"
)

// StatsService derives daily dashboard numbers from the order store. It is
// a pure read model: it holds no state of its own and never mutates orders.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a stats service on the given database
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// DailyStats summarizes one calendar day of orders. TotalEarnings covers
// paid (archived) orders only; PendingAmount is the money still expected
// from orders that have not been paid or cancelled yet.
type DailyStats struct {
	Day             string  `json:"day"` // YYYYMMDD
	TotalOrders     int     `json:"total_orders"`
	PendingOrders   int     `json:"pending_orders"`
	PreparingOrders int     `json:"preparing_orders"`
	CompletedOrders int     `json:"completed_orders"`
	PaidOrders      int     `json:"paid_orders"`
	CancelledOrders int     `json:"cancelled_orders"`
	TotalEarnings   float64 `json:"total_earnings"`
	PendingAmount   float64 `json:"pending_amount"`
}

// StatsForDay computes counts per status and revenue for the given day.
func (s *StatsService) StatsForDay(day time.Time) (*DailyStats, error) {
	start, end := DayBounds(day)

	var rows []struct {
		Status models.OrderStatus
		Count  int
		Amount float64
	}
	err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS amount").
		Where("ordered_at >= ? AND ordered_at < ?", start, end).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}

	stats := &DailyStats{Day: start.Format("20060102")}
	for _, row := range rows {
		stats.TotalOrders += row.Count
		switch row.Status {
		case models.StatusPending:
			stats.PendingOrders = row.Count
			stats.PendingAmount += row.Amount
		case models.StatusPreparing:
			stats.PreparingOrders = row.Count
			stats.PendingAmount += row.Amount
		case models.StatusCompleted:
			stats.CompletedOrders = row.Count
			stats.PendingAmount += row.Amount
		case models.StatusHistory:
			stats.PaidOrders = row.Count
			stats.TotalEarnings += row.Amount
		case models.StatusCancelled:
			stats.CancelledOrders = row.Count
		}
	}

	return stats, nil
}
