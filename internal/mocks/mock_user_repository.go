package mocks

import (
	"context"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc           func(ctx context.Context, user *domain.User) error
	FindByIDFunc         func(ctx context.Context, id uint) (*domain.User, error)
	FindByEmailFunc      func(ctx context.Context, email string) (*domain.User, error)
	FindByPhoneFunc      func(ctx context.Context, phone string) (*domain.User, error)
	FindByGoogleIDFunc   func(ctx context.Context, googleID string) (*domain.User, error)
	FindByAppleIDFunc    func(ctx context.Context, appleID string) (*domain.User, error)
	LinkGoogleIDFunc     func(ctx context.Context, userID uint, googleID string) error
	LinkAppleIDFunc      func(ctx context.Context, userID uint, appleID string) error
	SetPhoneVerifiedFunc func(ctx context.Context, userID uint, verified bool) error
	ListAllFunc          func(ctx context.Context) ([]domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	if user.ID == 0 {
		user.ID = 1
	}
	return nil
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByPhone finds a user by phone number
func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByGoogleID finds a user by Google subject
func (m *MockUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	if m.FindByGoogleIDFunc != nil {
		return m.FindByGoogleIDFunc(ctx, googleID)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByAppleID finds a user by Apple subject
func (m *MockUserRepository) FindByAppleID(ctx context.Context, appleID string) (*domain.User, error) {
	if m.FindByAppleIDFunc != nil {
		return m.FindByAppleIDFunc(ctx, appleID)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// LinkGoogleID attaches a Google subject to an existing user
func (m *MockUserRepository) LinkGoogleID(ctx context.Context, userID uint, googleID string) error {
	if m.LinkGoogleIDFunc != nil {
		return m.LinkGoogleIDFunc(ctx, userID, googleID)
	}
	// Default behavior: success
	return nil
}

// LinkAppleID attaches an Apple subject to an existing user
func (m *MockUserRepository) LinkAppleID(ctx context.Context, userID uint, appleID string) error {
	if m.LinkAppleIDFunc != nil {
		return m.LinkAppleIDFunc(ctx, userID, appleID)
	}
	// Default behavior: success
	return nil
}

// SetPhoneVerified updates user's phone verification flag
func (m *MockUserRepository) SetPhoneVerified(ctx context.Context, userID uint, verified bool) error {
	if m.SetPhoneVerifiedFunc != nil {
		return m.SetPhoneVerifiedFunc(ctx, userID, verified)
	}
	// Default behavior: success
	return nil
}

// ListAll returns every user
func (m *MockUserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	// Default behavior: empty store
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
