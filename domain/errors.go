package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrRoleRequired       = errors.New("user type is required for new registrations")
	ErrInvalidRole        = errors.New("user type must be farmer or buyer")
)

// OTP errors
var (
	ErrOTPInvalid  = errors.New("invalid or expired otp")
	ErrOTPNotFound = errors.New("otp not found")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Provider errors
var (
	ErrSMSNotConfigured    = errors.New("sms service not configured")
	ErrGoogleNotConfigured = errors.New("google oauth not configured")
)

// ValidationError reports malformed or missing request input. The message is
// safe to show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with the given client-facing
// message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// Marketplace errors
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInactive  = errors.New("product is not available")
	ErrNotProductOwner  = errors.New("product belongs to another farmer")
	ErrEmptyOrder       = errors.New("order has no items")
	ErrMixedSellers     = errors.New("order items must belong to a single farmer")
	ErrAlreadyFavorited = errors.New("product already favorited")
)
