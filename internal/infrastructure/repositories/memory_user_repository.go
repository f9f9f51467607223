package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// MemoryUserRepository is an in-memory implementation of
// domain.UserRepository. It exists for tests and demos only and enforces the
// same uniqueness rules as the database-backed store.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  []domain.User
	nextID uint
}

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{nextID: 1}
}

// Create implements domain.UserRepository.
func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		existing := &r.users[i]
		if taken(existing.Email, user.Email) ||
			taken(existing.Phone, user.Phone) ||
			taken(existing.GoogleID, user.GoogleID) ||
			taken(existing.AppleID, user.AppleID) {
			return domain.ErrUserAlreadyExists
		}
	}

	now := time.Now()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.nextID++
	r.users = append(r.users, *user)
	return nil
}

// FindByID implements domain.UserRepository.
func (r *MemoryUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

// FindByEmail implements domain.UserRepository.
func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email != "" && u.Email == email })
}

// FindByPhone implements domain.UserRepository.
func (r *MemoryUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Phone != "" && u.Phone == phone })
}

// FindByGoogleID implements domain.UserRepository.
func (r *MemoryUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.GoogleID != "" && u.GoogleID == googleID })
}

// FindByAppleID implements domain.UserRepository.
func (r *MemoryUserRepository) FindByAppleID(ctx context.Context, appleID string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.AppleID != "" && u.AppleID == appleID })
}

// LinkGoogleID implements domain.UserRepository.
func (r *MemoryUserRepository) LinkGoogleID(ctx context.Context, userID uint, googleID string) error {
	return r.update(userID, func(u *domain.User) { u.GoogleID = googleID })
}

// LinkAppleID implements domain.UserRepository.
func (r *MemoryUserRepository) LinkAppleID(ctx context.Context, userID uint, appleID string) error {
	return r.update(userID, func(u *domain.User) { u.AppleID = appleID })
}

// SetPhoneVerified implements domain.UserRepository.
func (r *MemoryUserRepository) SetPhoneVerified(ctx context.Context, userID uint, verified bool) error {
	return r.update(userID, func(u *domain.User) { u.PhoneVerified = verified })
}

// ListAll implements domain.UserRepository.
func (r *MemoryUserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *MemoryUserRepository) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if match(&r.users[i]) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *MemoryUserRepository) update(userID uint, mutate func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == userID {
			mutate(&r.users[i])
			r.users[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func taken(existing, candidate string) bool {
	return candidate != "" && existing == candidate
}
