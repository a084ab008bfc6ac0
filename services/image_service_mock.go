package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

// MockImageService is a mock implementation of ImageService for testing
type MockImageService struct {
	uploadedImages map[string][]byte
	deleteCalls    [][]string
	uploadError    error
	deleteError    error
	mu             sync.RWMutex
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		uploadedImages: make(map[string][]byte),
	}
}

// SetUploadError makes UploadImage return err
func (m *MockImageService) SetUploadError(err error) {
	m.mu.Lock()
	m.uploadError = err
	m.mu.Unlock()
}

// SetDeleteError makes DeleteImages return err
func (m *MockImageService) SetDeleteError(err error) {
	m.mu.Lock()
	m.deleteError = err
	m.mu.Unlock()
}

// UploadImage validates like the real service and stores the bytes in memory
func (m *MockImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (*UploadedImage, error) {
	m.mu.RLock()
	uploadErr := m.uploadError
	m.mu.RUnlock()
	if uploadErr != nil {
		return nil, uploadErr
	}

	img, err := utils.ReadImageFile(fileHeader)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("cloth-designs/mock_%s", img.Filename)
	m.mu.Lock()
	m.uploadedImages[key] = img.Data
	m.mu.Unlock()

	return &UploadedImage{URL: "https://test-bucket.s3.us-east-1.amazonaws.com/" + key, PublicID: key}, nil
}

// DeleteImages records the batch and forgets the images
func (m *MockImageService) DeleteImages(ctx context.Context, publicIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteCalls = append(m.deleteCalls, append([]string(nil), publicIDs...))
	if m.deleteError != nil {
		return m.deleteError
	}
	for _, id := range publicIDs {
		delete(m.uploadedImages, id)
	}
	return nil
}

// SignUpload returns a fake presigned URL
func (m *MockImageService) SignUpload(ctx context.Context, contentType string) (*SignedUpload, error) {
	ext, ok := utils.ExtensionFor(contentType)
	if !ok {
		return nil, utils.NewValidationError("contentType is not an allowed image type")
	}
	key := "cloth-designs/mock_signed" + ext
	return &SignedUpload{
		UploadURL:   "https://test-bucket.s3.us-east-1.amazonaws.com/" + key + "?mock=true",
		Method:      "PUT",
		ContentType: contentType,
		PublicID:    key,
		URL:         "https://test-bucket.s3.us-east-1.amazonaws.com/" + key,
		ExpiresAt:   time.Now().Add(signedUploadTTL),
	}, nil
}

// ImageExists checks if an image exists in mock storage
func (m *MockImageService) ImageExists(publicID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedImages[publicID]
	return exists
}

// DeleteCalls returns every batch passed to DeleteImages
func (m *MockImageService) DeleteCalls() [][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([][]string(nil), m.deleteCalls...)
}

// ErrMockUpload is a canned failure for upload tests
var ErrMockUpload = errors.New("mock upload failure")
