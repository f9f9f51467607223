package mocks

import (
	"context"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockIdentityVerifier implements domain.IdentityVerifier interface for testing
type MockIdentityVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (*domain.ExternalIdentity, error)
}

// NewMockIdentityVerifier creates a new MockIdentityVerifier with default behaviors
func NewMockIdentityVerifier() *MockIdentityVerifier {
	return &MockIdentityVerifier{}
}

// Verify validates a provider token and extracts the identity
func (m *MockIdentityVerifier) Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	// Default behavior: reject everything but a recognizable test token
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.ExternalIdentity{
		Subject:       "subject_" + token,
		Email:         "external@example.com",
		FirstName:     "External",
		LastName:      "User",
		EmailVerified: true,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.IdentityVerifier = (*MockIdentityVerifier)(nil)
