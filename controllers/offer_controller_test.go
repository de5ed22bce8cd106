package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/brewtable/brewtable-api/models"
	"github.com/stretchr/testify/assert"
)

func offerPayload() map[string]interface{} {
	now := time.Now().UTC()
	return map[string]interface{}{
		"name":           "Welcome discount",
		"code":           "WELCOME10",
		"discount_type":  "percentage",
		"discount_value": 10.0,
		"max_discount":   20.0,
		"valid_from":     now.Add(-time.Hour).Format(time.RFC3339),
		"valid_to":       now.Add(24 * time.Hour).Format(time.RFC3339),
	}
}

func TestCreateOfferEndpoint(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	w, response := performRequest(t, router, http.MethodPost, "/api/v1/offers", offerPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "WELCOME10", dataField(response, "code"))
	assert.Equal(t, true, dataField(response, "active"))
	assert.Equal(t, 0.0, dataField(response, "used_count"))
}

func TestCreateOfferEndpoint_Validation(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	// Window inverted
	payload := offerPayload()
	payload["valid_from"], payload["valid_to"] = payload["valid_to"], payload["valid_from"]
	w, response := performRequest(t, router, http.MethodPost, "/api/v1/offers", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_WINDOW", errorCode(response))

	// Unknown discount type
	payload = offerPayload()
	payload["discount_type"] = "mystery"
	w, response = performRequest(t, router, http.MethodPost, "/api/v1/offers", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
}

func TestUpdateOfferEndpoint_PreservesUsage(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	_, created := performRequest(t, router, http.MethodPost, "/api/v1/offers", offerPayload())
	offerID := uint(dataField(created, "id").(float64))

	// Simulate reservations taken while staff are editing
	db.Model(&models.Offer{}).Where("id = ?", offerID).Update("used_count", 3)

	payload := offerPayload()
	payload["discount_value"] = 15.0
	w, response := performRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/offers/%d", offerID), payload)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 15.0, dataField(response, "discount_value"))

	var stored models.Offer
	db.First(&stored, offerID)
	assert.Equal(t, 3, stored.UsedCount, "editing an offer must not reset its usage")
	assert.Equal(t, 15.0, stored.DiscountValue)
}

func TestUpdateOfferEndpoint_NotFound(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	w, response := performRequest(t, router, http.MethodPut, "/api/v1/offers/9999", offerPayload())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "OFFER_NOT_FOUND", errorCode(response))
}

func TestListOffersEndpoint(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	performRequest(t, router, http.MethodPost, "/api/v1/offers", offerPayload())

	w, response := performRequest(t, router, http.MethodGet, "/api/v1/offers", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	offers := response["data"].([]interface{})
	assert.Len(t, offers, 1)
}
