package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser is the database model for User. The identity columns are pointers:
// each is optional, but unique when present, and a NULL must not collide
// with another NULL under the unique index.
type DBUser struct {
	ID            uint    `gorm:"primaryKey"`
	Email         *string `gorm:"uniqueIndex;size:255"`
	Phone         *string `gorm:"uniqueIndex;size:20"`
	PasswordHash  *string `gorm:"column:password_hash;size:255"`
	FirstName     string  `gorm:"size:100"`
	LastName      string  `gorm:"size:100"`
	Role          string  `gorm:"column:user_type;size:20;not null;index"`
	GoogleID      *string `gorm:"column:google_id;uniqueIndex;size:255"`
	AppleID       *string `gorm:"column:apple_id;uniqueIndex;size:255"`
	EmailVerified bool    `gorm:"column:is_email_verified"`
	PhoneVerified bool    `gorm:"column:is_phone_verified"`
	ProfileImage  string  `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM.
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. Uniqueness of email, phone and
// provider ids is enforced solely by the database constraints; a duplicate
// key is reported as domain.ErrUserAlreadyExists.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByID implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByPhone implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

// FindByGoogleID implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.findOne(ctx, "google_id = ?", googleID)
}

// FindByAppleID implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByAppleID(ctx context.Context, appleID string) (*domain.User, error) {
	return r.findOne(ctx, "apple_id = ?", appleID)
}

// LinkGoogleID implements domain.UserRepository.
func (r *UserRepositoryImpl) LinkGoogleID(ctx context.Context, userID uint, googleID string) error {
	return r.updateColumn(ctx, userID, "google_id", googleID)
}

// LinkAppleID implements domain.UserRepository.
func (r *UserRepositoryImpl) LinkAppleID(ctx context.Context, userID uint, appleID string) error {
	return r.updateColumn(ctx, userID, "apple_id", appleID)
}

// SetPhoneVerified implements domain.UserRepository.
func (r *UserRepositoryImpl) SetPhoneVerified(ctx context.Context, userID uint, verified bool) error {
	return r.updateColumn(ctx, userID, "is_phone_verified", verified)
}

// ListAll implements domain.UserRepository. Only the health check consumes
// this; the API has no user-listing feature.
func (r *UserRepositoryImpl) ListAll(ctx context.Context) ([]domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// updateColumn writes a single column; GORM stamps updated_at alongside it.
func (r *UserRepositoryImpl) updateColumn(ctx context.Context, userID uint, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update(column, value)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:            user.ID,
		Email:         optional(user.Email),
		Phone:         optional(user.Phone),
		PasswordHash:  optional(user.PasswordHash),
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Role:          user.Role,
		GoogleID:      optional(user.GoogleID),
		AppleID:       optional(user.AppleID),
		EmailVerified: user.EmailVerified,
		PhoneVerified: user.PhoneVerified,
		ProfileImage:  user.ProfileImage,
	}
}

func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:            dbUser.ID,
		Email:         deref(dbUser.Email),
		Phone:         deref(dbUser.Phone),
		PasswordHash:  deref(dbUser.PasswordHash),
		FirstName:     dbUser.FirstName,
		LastName:      dbUser.LastName,
		Role:          dbUser.Role,
		GoogleID:      deref(dbUser.GoogleID),
		AppleID:       deref(dbUser.AppleID),
		EmailVerified: dbUser.EmailVerified,
		PhoneVerified: dbUser.PhoneVerified,
		ProfileImage:  dbUser.ProfileImage,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
