package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// MockMailService records outgoing emails instead of sending them
type MockMailService struct {
	sent          []Email
	failFor       map[string]bool
	failAll       bool
	notConfigured bool
	mu            sync.RWMutex
}

// NewMockMailService creates a new mock mail service
func NewMockMailService() *MockMailService {
	return &MockMailService{failFor: make(map[string]bool)}
}

// FailFor makes sends addressed to recipient report a terminal failure
func (m *MockMailService) FailFor(recipient string) {
	m.mu.Lock()
	m.failFor[recipient] = true
	m.mu.Unlock()
}

// FailAll makes every send report a terminal failure
func (m *MockMailService) FailAll() {
	m.mu.Lock()
	m.failAll = true
	m.mu.Unlock()
}

// SetNotConfigured makes Send behave like a relay without credentials
func (m *MockMailService) SetNotConfigured() {
	m.mu.Lock()
	m.notConfigured = true
	m.mu.Unlock()
}

// Send records email unless configured to fail
func (m *MockMailService) Send(ctx context.Context, email Email) (SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.notConfigured {
		return SendResult{}, ErrMailNotConfigured
	}
	if m.failAll {
		return SendResult{Attempts: 1, Err: errors.New("mock relay unavailable")}, nil
	}
	for _, to := range email.To {
		if m.failFor[to] {
			return SendResult{Attempts: 1, Err: fmt.Errorf("mock relay rejected %s", to)}, nil
		}
	}

	m.sent = append(m.sent, email)
	return SendResult{Success: true, MessageID: fmt.Sprintf("<mock-%d@test>", len(m.sent)), Attempts: 1}, nil
}

// Sent returns a copy of every delivered email
func (m *MockMailService) Sent() []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Email(nil), m.sent...)
}

// SentTo returns the delivered emails addressed to recipient
func (m *MockMailService) SentTo(recipient string) []Email {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Email
	for _, e := range m.sent {
		if slices.Contains(e.To, recipient) {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets recorded emails
func (m *MockMailService) Reset() {
	m.mu.Lock()
	m.sent = nil
	m.mu.Unlock()
}
