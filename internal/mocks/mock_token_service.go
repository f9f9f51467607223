package mocks

import (
	"fmt"
	"time"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateFunc func(userID uint, role, sessionID string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate signs a token for the user
func (m *MockTokenService) Generate(userID uint, role, sessionID string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, role, sessionID)
	}
	// Default behavior: return a mock token
	return fmt.Sprintf("token_user_%d_%s_%s", userID, role, sessionID), nil
}

// Validate parses a token and returns its claims
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: valid claims for any non-empty token
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	now := time.Now().Unix()
	return &domain.TokenClaims{
		UserID:    1,
		Role:      domain.RoleBuyer,
		SessionID: "mock_session_id",
		IssuedAt:  now,
		ExpiresAt: now + 604800,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
