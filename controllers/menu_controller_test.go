package controllers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brewtable/brewtable-api/models"
	"github.com/stretchr/testify/assert"
)

func TestListMenuEndpoint(t *testing.T) {
	router, db := setupControllerTest(t)
	db.Create(&models.MenuItem{Name: "Espresso", Price: 100, Category: "coffee", Available: true})
	db.Create(&models.MenuItem{Name: "Seasonal Special", Price: 80, Category: "coffee", Available: false})

	// Customers only see what they can order
	w, response := performRequest(t, router, http.MethodGet, "/api/v1/menu", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items := response["data"].([]interface{})
	assert.Len(t, items, 1)

	// Staff dashboard sees everything
	w, response = performRequest(t, router, http.MethodGet, "/api/v1/menu?all=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items = response["data"].([]interface{})
	assert.Len(t, items, 2)
}

func TestCreateMenuItemEndpoint(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	w, response := performRequest(t, router, http.MethodPost, "/api/v1/menu", map[string]interface{}{
		"name":     "Flat White",
		"price":    120.0,
		"category": "coffee",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Flat White", dataField(response, "name"))
	assert.Equal(t, true, dataField(response, "available"))

	// Missing required fields
	w, response = performRequest(t, router, http.MethodPost, "/api/v1/menu", map[string]interface{}{
		"name": "No price",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
}

func TestUpdateMenuItemEndpoint(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	item := models.MenuItem{Name: "Espresso", Price: 100, Category: "coffee", Available: true}
	db.Create(&item)

	w, response := performRequest(t, router, http.MethodPut, fmt.Sprintf("/api/v1/menu/%d", item.ID), map[string]interface{}{
		"name":      "Espresso",
		"price":     110.0,
		"category":  "coffee",
		"available": false,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 110.0, dataField(response, "price"))
	assert.Equal(t, false, dataField(response, "available"))

	w, response = performRequest(t, router, http.MethodPut, "/api/v1/menu/9999", map[string]interface{}{
		"name":     "Ghost",
		"price":    1.0,
		"category": "coffee",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ITEM_NOT_FOUND", errorCode(response))
}

func TestDeleteMenuItemEndpoint(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	item := models.MenuItem{Name: "Espresso", Price: 100, Category: "coffee", Available: true}
	db.Create(&item)

	w, _ := performRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/menu/%d", item.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Soft delete: gone from queries, still in storage for old orders
	var visible int64
	db.Model(&models.MenuItem{}).Count(&visible)
	assert.Equal(t, int64(0), visible)

	var total int64
	db.Unscoped().Model(&models.MenuItem{}).Count(&total)
	assert.Equal(t, int64(1), total)
}

// multipartUpload builds a multipart body with one file field named "image"
func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	writer.Close()

	return body, writer.FormDataContentType()
}

func TestUploadMenuItemPhotoEndpoint(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	item := models.MenuItem{Name: "Espresso", Price: 100, Category: "coffee", Available: true}
	db.Create(&item)

	body, contentType := multipartUpload(t, "espresso.png", []byte("fake png bytes"))
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/menu/%d/image", item.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.MenuItem
	db.First(&stored, item.ID)
	assert.NotNil(t, stored.ImageS3Key)
}

func TestUploadMenuItemPhotoEndpoint_RejectsNonPNG(t *testing.T) {
	router, db := setupControllerTest(t)
	seedStaffUser(t, db)

	item := models.MenuItem{Name: "Espresso", Price: 100, Category: "coffee", Available: true}
	db.Create(&item)

	body, contentType := multipartUpload(t, "espresso.gif", []byte("gif bytes"))
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/menu/%d/image", item.ID), body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored models.MenuItem
	db.First(&stored, item.ID)
	assert.Nil(t, stored.ImageS3Key)
}
