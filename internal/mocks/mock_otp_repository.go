package mocks

import (
	"context"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	CreateFunc           func(ctx context.Context, challenge *domain.OTPChallenge) error
	DeleteUnverifiedFunc func(ctx context.Context, phone string) error
	FindMatchFunc        func(ctx context.Context, phone, code string) (*domain.OTPChallenge, error)
	MarkVerifiedFunc     func(ctx context.Context, id uint) error
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

// Create stores a new OTP challenge
func (m *MockOTPRepository) Create(ctx context.Context, challenge *domain.OTPChallenge) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, challenge)
	}
	// Default behavior: success
	if challenge.ID == 0 {
		challenge.ID = 1
	}
	return nil
}

// DeleteUnverified removes pending challenges for a phone
func (m *MockOTPRepository) DeleteUnverified(ctx context.Context, phone string) error {
	if m.DeleteUnverifiedFunc != nil {
		return m.DeleteUnverifiedFunc(ctx, phone)
	}
	// Default behavior: success
	return nil
}

// FindMatch looks up an unverified challenge by phone and code
func (m *MockOTPRepository) FindMatch(ctx context.Context, phone, code string) (*domain.OTPChallenge, error) {
	if m.FindMatchFunc != nil {
		return m.FindMatchFunc(ctx, phone, code)
	}
	// Default behavior: no match
	return nil, domain.ErrOTPNotFound
}

// MarkVerified flags a challenge as consumed
func (m *MockOTPRepository) MarkVerified(ctx context.Context, id uint) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPRepository = (*MockOTPRepository)(nil)
