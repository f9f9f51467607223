package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/repositories"
)

func TestEmailRegistrationAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	var token string
	t.Run("register", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email":     "anya@example.com",
			"password":  "secret1",
			"userType":  "buyer",
			"firstName": "Anya",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, true, body["success"])
		token, _ = body["token"].(string)
		require.NotEmpty(t, token)

		user := body["user"].(map[string]any)
		assert.Equal(t, "anya@example.com", user["email"])
		assert.Equal(t, "buyer", user["userType"])
		assert.NotContains(t, w.Body.String(), "secret1")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email":    "anya@example.com",
			"password": "other",
			"userType": "farmer",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "User already exists with this email", body["error"])
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "anya@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", body["error"])
	})

	t.Run("login issues a fresh token", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "anya@example.com",
			"password": "secret1",
		})
		require.Equal(t, http.StatusOK, w.Code)
		loginToken, _ := body["token"].(string)
		require.NotEmpty(t, loginToken)
		token = loginToken
	})

	t.Run("token grants access to the profile", func(t *testing.T) {
		w, body := env.do(t, http.MethodGet, "/api/auth/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		user := body["user"].(map[string]any)
		assert.Equal(t, "anya@example.com", user["email"])
	})

	t.Run("logout revokes the token immediately", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Logged out successfully", body["message"])

		w, body = env.do(t, http.MethodGet, "/api/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Session invalid or expired", body["error"])
	})
}

func TestPhoneOTPFlow(t *testing.T) {
	env := newTestEnv(t)
	phone := "9876543210"

	t.Run("send OTP delivers a code by SMS", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"phone": phone})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "OTP sent successfully", body["message"])
		assert.NotContains(t, w.Body.String(), env.lastOTPCode(t))
	})

	t.Run("new phone needs a user type", func(t *testing.T) {
		code := env.lastOTPCode(t)
		w, body := env.do(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]any{
			"phone": phone,
			"otp":   code,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User type is required for new registrations", body["error"])
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		w, body := env.do(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]any{
			"phone":    phone,
			"otp":      "000000",
			"userType": "farmer",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid or expired OTP", body["error"])
	})

	var token string
	t.Run("correct code registers and signs in", func(t *testing.T) {
		code := env.lastOTPCode(t)
		w, body := env.do(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]any{
			"phone":     phone,
			"otp":       code,
			"userType":  "farmer",
			"firstName": "Ravi",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		user := body["user"].(map[string]any)
		assert.Equal(t, true, user["isPhoneVerified"])
		assert.Equal(t, "farmer", user["userType"])
		token, _ = body["token"].(string)
		require.NotEmpty(t, token)

		var stored repositories.DBUser
		require.NoError(t, env.DB.Where("phone = ?", phone).First(&stored).Error)
		assert.True(t, stored.PhoneVerified)
	})

	t.Run("a consumed code cannot be replayed", func(t *testing.T) {
		code := env.lastOTPCode(t)
		w, _ := env.do(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]any{
			"phone":    phone,
			"otp":      code,
			"userType": "farmer",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("resending invalidates the previous code", func(t *testing.T) {
		w, _ := env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"phone": phone})
		require.Equal(t, http.StatusOK, w.Code)
		first := env.lastOTPCode(t)

		w, _ = env.do(t, http.MethodPost, "/api/auth/send-otp", "", map[string]any{"phone": phone})
		require.Equal(t, http.StatusOK, w.Code)
		second := env.lastOTPCode(t)

		if first != second {
			w, _ = env.do(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]any{
				"phone": phone,
				"otp":   first,
			})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		}

		w, body := env.do(t, http.MethodPost, "/api/auth/verify-otp", "", map[string]any{
			"phone": phone,
			"otp":   second,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		user := body["user"].(map[string]any)
		assert.Equal(t, "farmer", user["userType"])
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/auth/me", "/api/cart", "/api/favorites", "/api/orders"} {
		w, body := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "No token provided", body["error"], path)
	}

	w, body := env.do(t, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", body["error"])
}
