package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDailyStatsEndpoint(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)
	items := seedOrderingFixtures(t, db)

	// One order paid through, one still pending
	_, paid := performRequest(t, router, http.MethodPost, "/api/v1/orders", orderPayload(items))
	paidID := dataField(paid, "public_id").(string)
	performRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/complete", paidID), nil)
	performRequest(t, router, http.MethodPost, fmt.Sprintf("/api/v1/orders/%s/pay", paidID), nil)

	performRequest(t, router, http.MethodPost, "/api/v1/orders", orderPayload(items))

	w, response := performRequest(t, router, http.MethodGet, "/api/v1/stats/daily", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, 2.0, dataField(response, "total_orders"))
	assert.Equal(t, 1.0, dataField(response, "paid_orders"))
	assert.Equal(t, 1.0, dataField(response, "pending_orders"))
	assert.Equal(t, 250.0, dataField(response, "total_earnings"))
	assert.Equal(t, 250.0, dataField(response, "pending_amount"))
}

func TestGetDailyStatsEndpoint_EmptyDay(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	w, response := performRequest(t, router, http.MethodGet, "/api/v1/stats/daily?date=2020-01-01", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, dataField(response, "total_orders"))
	assert.Equal(t, "20200101", dataField(response, "day"))
}

func TestGetDailyStatsEndpoint_BadDate(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	w, response := performRequest(t, router, http.MethodGet, "/api/v1/stats/daily?date=January", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE", errorCode(response))
}
