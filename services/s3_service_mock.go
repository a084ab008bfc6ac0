package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// MockS3Service is an in-memory S3Interface for testing
type MockS3Service struct {
	uploadedFiles map[string][]byte // map of S3 key to file content
	deleteCalls   [][]string
	failDelete    bool
	mu            sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		uploadedFiles: make(map[string][]byte),
	}
}

// PutObject simulates uploading a file to S3
func (m *MockS3Service) PutObject(ctx context.Context, key, contentType string, body []byte) error {
	m.mu.Lock()
	m.uploadedFiles[key] = append([]byte(nil), body...)
	m.mu.Unlock()
	return nil
}

// DeleteObjects simulates a bulk delete and records the batch
func (m *MockS3Service) DeleteObjects(ctx context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteCalls = append(m.deleteCalls, append([]string(nil), keys...))
	if m.failDelete {
		return errors.New("mock S3 delete failure")
	}
	for _, key := range keys {
		delete(m.uploadedFiles, key)
	}
	return nil
}

// PresignPut returns a fake signed URL
func (m *MockS3Service) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?X-Amz-Expires=%d&mock=true", key, int(expires.Seconds())), nil
}

// PublicURL returns the mock bucket URL for key
func (m *MockS3Service) PublicURL(key string) string {
	return "https://test-bucket.s3.us-east-1.amazonaws.com/" + key
}

// SetFailDelete makes subsequent DeleteObjects calls fail
func (m *MockS3Service) SetFailDelete(fail bool) {
	m.mu.Lock()
	m.failDelete = fail
	m.mu.Unlock()
}

// GetUploadedFiles returns all uploaded files (for testing assertions)
func (m *MockS3Service) GetUploadedFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make(map[string][]byte, len(m.uploadedFiles))
	for k, v := range m.uploadedFiles {
		files[k] = v
	}
	return files
}

// DeleteCalls returns each batch passed to DeleteObjects
func (m *MockS3Service) DeleteCalls() [][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([][]string(nil), m.deleteCalls...)
}

// FileExists checks if a file exists in mock storage
func (m *MockS3Service) FileExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedFiles[key]
	return exists
}
