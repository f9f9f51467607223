package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
)

// AuthHandlers translates the /api/auth routes into orchestrator calls.
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents an email/password registration request.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserType  string `json:"userType"`
	Phone     string `json:"phone"`
}

// LoginRequest represents an email/password login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SendOTPRequest represents an OTP issuance request.
type SendOTPRequest struct {
	Phone string `json:"phone"`
}

// VerifyOTPRequest represents an OTP verification request. UserType and the
// names are only consulted when the phone has no account yet.
type VerifyOTPRequest struct {
	Phone     string `json:"phone"`
	OTP       string `json:"otp"`
	UserType  string `json:"userType"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// GoogleRequest represents a Google sign-in request.
type GoogleRequest struct {
	IDToken  string `json:"idToken"`
	UserType string `json:"userType"`
}

// AppleRequest represents an Apple sign-in request. Apple delivers the
// user's name beside the token, not inside it, and only on first sign-in.
type AppleRequest struct {
	IdentityToken string `json:"identityToken"`
	UserType      string `json:"userType"`
	User          struct {
		Name struct {
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
		} `json:"name"`
	} `json:"user"`
}

// UserView is the public projection of a user. The password hash never
// leaves the server.
type UserView struct {
	ID            uint   `json:"id"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	UserType      string `json:"userType"`
	ProfileImage  string `json:"profileImage,omitempty"`
	EmailVerified bool   `json:"isEmailVerified"`
	PhoneVerified bool   `json:"isPhoneVerified"`
}

func publicUser(u *domain.User) UserView {
	return UserView{
		ID:            u.ID,
		Email:         u.Email,
		Phone:         u.Phone,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		UserType:      u.Role,
		ProfileImage:  u.ProfileImage,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.UserType,
		Phone:     req.Phone,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respondAuthResult(c, result)
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respondAuthResult(c, result)
}

// SendOTP handles POST /api/auth/send-otp. The code is never echoed back.
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.authSvc.SendOTP(c.Request.Context(), req.Phone); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent successfully"})
}

// VerifyOTP handles POST /api/auth/verify-otp.
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), domain.OTPLoginInput{
		Phone:     req.Phone,
		Code:      req.OTP,
		Role:      req.UserType,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	log.Printf("PHONE_VERIFIED: user_id=%d phone=%s timestamp=%s",
		result.User.ID, req.Phone, time.Now().UTC().Format(time.RFC3339))
	respondAuthResult(c, result)
}

// Google handles POST /api/auth/google.
func (h *AuthHandlers) Google(c *gin.Context) {
	var req GoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.authSvc.LoginWithGoogle(c.Request.Context(), req.IDToken, req.UserType)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respondAuthResult(c, result)
}

// Apple handles POST /api/auth/apple.
func (h *AuthHandlers) Apple(c *gin.Context) {
	var req AppleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.authSvc.LoginWithApple(c.Request.Context(),
		req.IdentityToken, req.UserType, req.User.Name.FirstName, req.User.Name.LastName)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	respondAuthResult(c, result)
}

// Me handles GET /api/auth/me (requires authentication).
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		log.Printf("GET_PROFILE_FAILED: user_id=%d error=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": publicUser(user)})
}

// Logout handles POST /api/auth/logout (requires authentication). Deleting
// the session revokes the bearer token immediately.
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
		log.Printf("LOGOUT_FAILED: session_id=%s error=%v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func respondAuthResult(c *gin.Context, result *domain.AuthResult) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    publicUser(result.User),
		"token":   result.Token,
	})
}

// respondAuthError maps orchestrator errors to the response taxonomy:
// 400 validation, 401 auth failure, 409 conflict, 500 everything else.
// Raw datastore errors are logged server-side and never reach the client.
func respondAuthError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.Is(err, domain.ErrRoleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User type is required for new registrations"})
	case errors.Is(err, domain.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User type must be farmer or buyer"})
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, domain.ErrOTPInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired OTP"})
	case errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenMalformed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
	case errors.Is(err, domain.ErrSMSNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "SMS service not configured"})
	case errors.Is(err, domain.ErrGoogleNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google OAuth not configured"})
	default:
		log.Printf("AUTH_ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
