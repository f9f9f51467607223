package mocks

import (
	"context"
	"time"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc  func(ctx context.Context, phone string) (*domain.OTPChallenge, error)
	VerifyFunc func(ctx context.Context, phone, code string) (bool, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue generates and sends a new challenge
func (m *MockOTPService) Issue(ctx context.Context, phone string) (*domain.OTPChallenge, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, phone)
	}
	// Default behavior: fixed code
	return &domain.OTPChallenge{
		ID:        1,
		Phone:     phone,
		Code:      "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}, nil
}

// Verify checks a submitted code
func (m *MockOTPService) Verify(ctx context.Context, phone, code string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phone, code)
	}
	// Default behavior: accept the fixed code only
	return code == "123456", nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
