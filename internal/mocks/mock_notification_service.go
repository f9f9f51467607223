package mocks

import (
	"sync"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockNotificationService implements domain.NotificationService interface for testing.
// Sent messages are recorded so tests can assert on SMS content.
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error

	mu   sync.Mutex
	Sent []SentSMS
}

// SentSMS records one dispatched message
type SentSMS struct {
	To      string
	Message string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS dispatches an SMS
func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// Default behavior: record and succeed
	m.mu.Lock()
	m.Sent = append(m.Sent, SentSMS{To: to, Message: message})
	m.mu.Unlock()
	return nil
}

// LastSent returns the most recently recorded message, if any
func (m *MockNotificationService) LastSent() (SentSMS, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentSMS{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
