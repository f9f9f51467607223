package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akshaj-M/IlavaHealth-2/domain"
	"github.com/Akshaj-M/IlavaHealth-2/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// runWithJWT sends a request through the middleware followed by a probe
// handler that records the context values the middleware set.
func runWithJWT(t *testing.T, mw *AuthMW, authHeader string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	captured := map[string]any{}
	r := gin.New()
	r.GET("/protected", mw.WithJWT(), func(c *gin.Context) {
		for _, key := range []string{"user_id", "user_role", "session_id"} {
			if v, ok := c.Get(key); ok {
				captured[key] = v
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, captured
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestAuthMW_RejectsBadRequests(t *testing.T) {
	tests := []struct {
		name          string
		authHeader    string
		validateErr   error
		expectedError string
	}{
		{
			name:          "missing header",
			authHeader:    "",
			expectedError: "No token provided",
		},
		{
			name:          "not a bearer token",
			authHeader:    "Basic dXNlcjpwYXNz",
			expectedError: "Invalid authorization header format",
		},
		{
			name:          "no scheme at all",
			authHeader:    "some-raw-token",
			expectedError: "Invalid authorization header format",
		},
		{
			name:          "invalid token",
			authHeader:    "Bearer garbage",
			validateErr:   domain.ErrTokenInvalid,
			expectedError: "Invalid token",
		},
		{
			name:          "expired token",
			authHeader:    "Bearer expired",
			validateErr:   domain.ErrTokenExpired,
			expectedError: "Token expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mocks.NewMockTokenService()
			if tt.validateErr != nil {
				tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
					return nil, tt.validateErr
				}
			}
			mw := NewAuthMW(tokenSvc, mocks.NewMockSessionRepository())

			w, _ := runWithJWT(t, mw, tt.authHeader)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.expectedError, errorBody(t, w))
		})
	}
}

func TestAuthMW_SessionRevocation(t *testing.T) {
	claims := &domain.TokenClaims{UserID: 7, Role: domain.RoleFarmer, SessionID: "sess_abc"}

	t.Run("deleted session rejects a still-valid token", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) { return claims, nil }
		sessionRepo := mocks.NewMockSessionRepository()
		sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
			return nil, domain.ErrSessionNotFound
		}
		mw := NewAuthMW(tokenSvc, sessionRepo)

		w, _ := runWithJWT(t, mw, "Bearer valid")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Session invalid or expired", errorBody(t, w))
	})

	t.Run("session owned by a different user", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) { return claims, nil }
		sessionRepo := mocks.NewMockSessionRepository()
		sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
			return &domain.Session{ID: sessionID, UserID: 99}, nil
		}
		mw := NewAuthMW(tokenSvc, sessionRepo)

		w, _ := runWithJWT(t, mw, "Bearer valid")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Session user mismatch", errorBody(t, w))
	})
}

func TestAuthMW_PopulatesContext(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 7, Role: domain.RoleFarmer, SessionID: "sess_abc"}, nil
	}
	sessionRepo := mocks.NewMockSessionRepository()
	var lookedUp string
	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		lookedUp = sessionID
		return &domain.Session{ID: sessionID, UserID: 7}, nil
	}
	mw := NewAuthMW(tokenSvc, sessionRepo)

	w, captured := runWithJWT(t, mw, "Bearer valid")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess_abc", lookedUp)
	assert.Equal(t, "7", captured["user_id"])
	assert.Equal(t, domain.RoleFarmer, captured["user_role"])
	assert.Equal(t, "sess_abc", captured["session_id"])
}

func TestAuthMW_TokenWithoutSessionSkipsLookup(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 3, Role: domain.RoleBuyer}, nil
	}
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		t.Fatal("session lookup should not happen for tokens without a session id")
		return nil, nil
	}
	mw := NewAuthMW(tokenSvc, sessionRepo)

	w, captured := runWithJWT(t, mw, "Bearer valid")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", captured["user_id"])
	_, ok := captured["session_id"]
	assert.False(t, ok)
}
