package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// OTPServiceImpl implements domain.OTPService over a persisted challenge
// store. Issuing a code invalidates any prior unconsumed challenge for the
// phone, and the stored challenge is rolled back when the SMS dispatch
// fails, so the caller always learns the true outcome.
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	notificationSvc domain.NotificationService
	config          OTPConfig
	now             func() time.Time
}

type OTPConfig struct {
	Length int
	TTL    time.Duration
}

// NewOTPService creates a new OTP service.
func NewOTPService(otpRepo domain.OTPRepository, notificationSvc domain.NotificationService, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		config:          config,
		now:             time.Now,
	}
}

// Issue implements domain.OTPService.
func (s *OTPServiceImpl) Issue(ctx context.Context, phone string) (*domain.OTPChallenge, error) {
	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	if err := s.otpRepo.DeleteUnverified(ctx, phone); err != nil {
		return nil, fmt.Errorf("failed to invalidate prior OTP: %w", err)
	}

	challenge := &domain.OTPChallenge{
		Phone:     phone,
		Code:      code,
		ExpiresAt: s.now().Add(s.config.TTL),
	}
	if err := s.otpRepo.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}

	message := fmt.Sprintf("Your ILava verification code is: %s. Valid for %d minutes.",
		code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		// The code never reached the user; remove it so a retry issues a
		// fresh one and the caller sees the real failure.
		s.otpRepo.DeleteUnverified(ctx, phone)
		if errors.Is(err, domain.ErrSMSNotConfigured) {
			return nil, domain.ErrSMSNotConfigured
		}
		return nil, fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	return challenge, nil
}

// Verify implements domain.OTPService. All failure modes (no challenge,
// wrong code, already consumed, expired) report false; an error means the
// store itself failed.
func (s *OTPServiceImpl) Verify(ctx context.Context, phone, code string) (bool, error) {
	challenge, err := s.otpRepo.FindMatch(ctx, phone, code)
	if err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up OTP: %w", err)
	}

	if challenge.Expired(s.now()) {
		return false, nil
	}

	if err := s.otpRepo.MarkVerified(ctx, challenge.ID); err != nil {
		return false, fmt.Errorf("failed to consume OTP: %w", err)
	}
	return true, nil
}

// generateSecureCode draws each digit independently so leading zeros are as
// likely as any other digit; the result is a fixed-width string.
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}
