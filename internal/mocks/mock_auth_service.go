package mocks

import (
	"context"
	"time"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc        func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error)
	LoginFunc           func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	SendOTPFunc         func(ctx context.Context, phone string) error
	VerifyOTPFunc       func(ctx context.Context, input domain.OTPLoginInput) (*domain.AuthResult, error)
	LoginWithGoogleFunc func(ctx context.Context, idToken, role string) (*domain.AuthResult, error)
	LoginWithAppleFunc  func(ctx context.Context, identityToken, role, firstName, lastName string) (*domain.AuthResult, error)
	LogoutFunc          func(ctx context.Context, sessionID string) error
	GetUserProfileFunc  func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func defaultAuthResult() *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			ID:        1,
			Email:     "user@example.com",
			Role:      domain.RoleBuyer,
			CreatedAt: time.Now(),
		},
		Token:     "mock_token",
		SessionID: "mock_session_id",
		ExpiresIn: 604800,
	}
}

// Register registers a new credential user
func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return defaultAuthResult(), nil
}

// Login authenticates by email and password
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return defaultAuthResult(), nil
}

// SendOTP issues a phone challenge
func (m *MockAuthService) SendOTP(ctx context.Context, phone string) error {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, phone)
	}
	return nil
}

// VerifyOTP completes a phone login
func (m *MockAuthService) VerifyOTP(ctx context.Context, input domain.OTPLoginInput) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, input)
	}
	return defaultAuthResult(), nil
}

// LoginWithGoogle authenticates with a Google ID token
func (m *MockAuthService) LoginWithGoogle(ctx context.Context, idToken, role string) (*domain.AuthResult, error) {
	if m.LoginWithGoogleFunc != nil {
		return m.LoginWithGoogleFunc(ctx, idToken, role)
	}
	return defaultAuthResult(), nil
}

// LoginWithApple authenticates with an Apple identity token
func (m *MockAuthService) LoginWithApple(ctx context.Context, identityToken, role, firstName, lastName string) (*domain.AuthResult, error) {
	if m.LoginWithAppleFunc != nil {
		return m.LoginWithAppleFunc(ctx, identityToken, role, firstName, lastName)
	}
	return defaultAuthResult(), nil
}

// Logout revokes a session
func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

// GetUserProfile loads the authenticated user's profile
func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
