package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM.
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// DBOTPCode is the database model for an OTP challenge. Expired rows are not
// swept; expiry is checked lazily at verify time.
type DBOTPCode struct {
	ID        uint   `gorm:"primaryKey"`
	Phone     string `gorm:"size:20;not null;index"`
	Code      string `gorm:"size:6;not null"`
	ExpiresAt time.Time
	Verified  bool
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (DBOTPCode) TableName() string {
	return "otp_codes"
}

// NewOTPRepository creates a new OTP repository.
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Create implements domain.OTPRepository.
func (r *OTPRepositoryImpl) Create(ctx context.Context, challenge *domain.OTPChallenge) error {
	row := &DBOTPCode{
		Phone:     challenge.Phone,
		Code:      challenge.Code,
		ExpiresAt: challenge.ExpiresAt,
		Verified:  challenge.Verified,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	challenge.ID = row.ID
	challenge.CreatedAt = row.CreatedAt
	return nil
}

// DeleteUnverified implements domain.OTPRepository. Issuing a new challenge
// invalidates any prior unconsumed one for the phone through this call.
func (r *OTPRepositoryImpl) DeleteUnverified(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).
		Where("phone = ? AND verified = ?", phone, false).
		Delete(&DBOTPCode{}).Error
}

// FindMatch implements domain.OTPRepository. Only unverified rows match, so
// a consumed code can never be found again.
func (r *OTPRepositoryImpl) FindMatch(ctx context.Context, phone, code string) (*domain.OTPChallenge, error) {
	var row DBOTPCode
	err := r.db.WithContext(ctx).
		Where("phone = ? AND code = ? AND verified = ?", phone, code, false).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}
	return &domain.OTPChallenge{
		ID:        row.ID,
		Phone:     row.Phone,
		Code:      row.Code,
		ExpiresAt: row.ExpiresAt,
		Verified:  row.Verified,
		CreatedAt: row.CreatedAt,
	}, nil
}

// MarkVerified implements domain.OTPRepository.
func (r *OTPRepositoryImpl) MarkVerified(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&DBOTPCode{}).Where("id = ?", id).Update("verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOTPNotFound
	}
	return nil
}
