package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	otpPattern   = regexp.MustCompile(`^\d{6}$`)
)

// AuthServiceImpl implements domain.AuthService: one flow per login method,
// all converging on the same user record and the same session + token pair.
type AuthServiceImpl struct {
	userRepo       domain.UserRepository
	sessionRepo    domain.SessionRepository
	passwordSvc    domain.PasswordService
	tokenSvc       domain.TokenService
	otpSvc         domain.OTPService
	googleVerifier domain.IdentityVerifier
	appleVerifier  domain.IdentityVerifier
	tokenTTL       time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	googleVerifier domain.IdentityVerifier,
	appleVerifier domain.IdentityVerifier,
	tokenTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		passwordSvc:    passwordSvc,
		tokenSvc:       tokenSvc,
		otpSvc:         otpSvc,
		googleVerifier: googleVerifier,
		appleVerifier:  appleVerifier,
		tokenTTL:       tokenTTL,
	}
}

// Register implements domain.AuthService. Email uniqueness is not pre-checked
// here: the user store's constraint layer is the single source of conflicts.
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	if input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, domain.NewValidationError("Email, password, and user type are required")
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}
	if input.Phone != "" && !phonePattern.MatchString(input.Phone) {
		return nil, domain.NewValidationError("Phone number must be exactly 10 digits")
	}

	hashedPassword, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.establishSession(ctx, user)
}

// Login implements domain.AuthService. Unknown email, missing password hash
// and a wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == "" || !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.establishSession(ctx, user)
}

// SendOTP implements domain.AuthService.
func (s *AuthServiceImpl) SendOTP(ctx context.Context, phone string) error {
	if !phonePattern.MatchString(phone) {
		return domain.NewValidationError("Phone number must be exactly 10 digits")
	}
	if _, err := s.otpSvc.Issue(ctx, phone); err != nil {
		return err
	}
	return nil
}

// VerifyOTP implements domain.AuthService. A new phone registers a
// phone-verified user (role required); a known phone just flips the flag.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, input domain.OTPLoginInput) (*domain.AuthResult, error) {
	if !phonePattern.MatchString(input.Phone) {
		return nil, domain.NewValidationError("Phone number must be exactly 10 digits")
	}
	if !otpPattern.MatchString(input.Code) {
		return nil, domain.NewValidationError("OTP must be exactly 6 digits")
	}

	valid, err := s.otpSvc.Verify(ctx, input.Phone, input.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to verify OTP: %w", err)
	}
	if !valid {
		return nil, domain.ErrOTPInvalid
	}

	user, err := s.userRepo.FindByPhone(ctx, input.Phone)
	switch {
	case err == nil:
		if !user.PhoneVerified {
			if err := s.userRepo.SetPhoneVerified(ctx, user.ID, true); err != nil {
				return nil, fmt.Errorf("failed to mark phone verified: %w", err)
			}
			user.PhoneVerified = true
		}
	case errors.Is(err, domain.ErrUserNotFound):
		if input.Role == "" {
			return nil, domain.ErrRoleRequired
		}
		if !domain.ValidRole(input.Role) {
			return nil, domain.ErrInvalidRole
		}
		user = &domain.User{
			Phone:         input.Phone,
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			Role:          input.Role,
			PhoneVerified: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return s.establishSession(ctx, user)
}

// LoginWithGoogle implements domain.AuthService.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, idToken, role string) (*domain.AuthResult, error) {
	if idToken == "" {
		return nil, domain.NewValidationError("Google ID token is required")
	}

	identity, err := s.googleVerifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := s.findOrCreateExternal(ctx, identity, role,
		s.userRepo.FindByGoogleID, s.userRepo.LinkGoogleID,
		func(u *domain.User) { u.GoogleID = identity.Subject })
	if err != nil {
		return nil, err
	}
	return s.establishSession(ctx, user)
}

// LoginWithApple implements domain.AuthService. Apple only sends the user's
// name on the first authorization, as part of the request body rather than
// the token, so it is threaded through here.
func (s *AuthServiceImpl) LoginWithApple(ctx context.Context, identityToken, role, firstName, lastName string) (*domain.AuthResult, error) {
	if identityToken == "" {
		return nil, domain.NewValidationError("Apple identity token is required")
	}

	identity, err := s.appleVerifier.Verify(ctx, identityToken)
	if err != nil {
		return nil, err
	}
	identity.FirstName = firstName
	identity.LastName = lastName

	user, err := s.findOrCreateExternal(ctx, identity, role,
		s.userRepo.FindByAppleID, s.userRepo.LinkAppleID,
		func(u *domain.User) { u.AppleID = identity.Subject })
	if err != nil {
		return nil, err
	}
	return s.establishSession(ctx, user)
}

// Logout implements domain.AuthService. Deleting the session revokes the
// bearer token for every protected route.
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// GetUserProfile implements domain.AuthService.
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// findOrCreateExternal resolves a verified provider identity to a user:
// match by provider subject first, then link by email, and only then create
// a fresh account (which needs a role).
func (s *AuthServiceImpl) findOrCreateExternal(
	ctx context.Context,
	identity *domain.ExternalIdentity,
	role string,
	findBySubject func(context.Context, string) (*domain.User, error),
	linkSubject func(context.Context, uint, string) error,
	setSubject func(*domain.User),
) (*domain.User, error) {
	user, err := findBySubject(ctx, identity.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if identity.Email != "" {
		user, err = s.userRepo.FindByEmail(ctx, identity.Email)
		if err == nil {
			if err := linkSubject(ctx, user.ID, identity.Subject); err != nil {
				return nil, fmt.Errorf("failed to link external identity: %w", err)
			}
			setSubject(user)
			return user, nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
	}

	if role == "" {
		return nil, domain.ErrRoleRequired
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	user = &domain.User{
		Email:         identity.Email,
		FirstName:     identity.FirstName,
		LastName:      identity.LastName,
		Role:          role,
		ProfileImage:  identity.Picture,
		EmailVerified: identity.Email != "",
	}
	setSubject(user)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// establishSession mints the session and token every successful
// authentication ends with.
func (s *AuthServiceImpl) establishSession(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        "sess_" + uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokenSvc.Generate(user.ID, user.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		SessionID: session.ID,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}
