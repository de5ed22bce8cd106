package services

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/brewtable/brewtable-api/utils"
)

// MockPhotoService is an in-memory PhotoService for testing
type MockPhotoService struct {
	photos map[string][]byte // storage key -> file content
	mu     sync.RWMutex
}

// NewMockPhotoService creates a new mock photo service
func NewMockPhotoService() *MockPhotoService {
	return &MockPhotoService{
		photos: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global photo service instance
func (m *MockPhotoService) SetAsMockForTesting() {
	SetPhotoService(m)
}

// UploadPhoto simulates storing a menu photo
func (m *MockPhotoService) UploadPhoto(menuItemID uint, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content := make([]byte, fileHeader.Size)
	if _, err := file.Read(content); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("menu/mock_%d_%s", menuItemID, fileHeader.Filename)

	m.mu.Lock()
	m.photos[key] = content
	m.mu.Unlock()

	return key, nil
}

// PhotoURL simulates generating a URL for a stored photo
func (m *MockPhotoService) PhotoURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.photos[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("photo not found in mock storage: %s", key)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// DeletePhoto simulates deleting a stored photo
func (m *MockPhotoService) DeletePhoto(key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.photos, key)
	m.mu.Unlock()

	return nil
}

// PhotoExists checks if a photo exists in mock storage (for assertions)
func (m *MockPhotoService) PhotoExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.photos[key]
	return exists
}

// Clear removes all photos from mock storage
func (m *MockPhotoService) Clear() {
	m.mu.Lock()
	m.photos = make(map[string][]byte)
	m.mu.Unlock()
}
