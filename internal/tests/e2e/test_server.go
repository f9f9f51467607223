package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Akshaj-M/IlavaHealth-2/internal/http/handlers"
	"github.com/Akshaj-M/IlavaHealth-2/internal/http/middleware"
	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/auth"
	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/database"
	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/repositories"
	"github.com/Akshaj-M/IlavaHealth-2/internal/mocks"
	"github.com/Akshaj-M/IlavaHealth-2/internal/services"

	httpx "github.com/Akshaj-M/IlavaHealth-2/internal/http"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

var otpCodePattern = regexp.MustCompile(`\d{6}`)

// testEnv wires the full HTTP stack against in-memory infrastructure:
// sqlite for the relational stores, miniredis for sessions, and a capturing
// SMS mock so tests can read back the OTP codes the service sends.
type testEnv struct {
	Router *gin.Engine
	DB     *gorm.DB
	SMS    *mocks.MockNotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	sessionRepo := repositories.NewSessionRepository(redisClient, time.Hour)
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService("e2e-secret", "ilavasvc-test", time.Hour)
	sms := mocks.NewMockNotificationService()
	otpSvc := services.NewOTPService(otpRepo, sms, services.OTPConfig{Length: 6, TTL: 10 * time.Minute})
	authSvc := services.NewAuthService(
		userRepo, sessionRepo, passwordSvc, tokenSvc, otpSvc,
		auth.NewGoogleVerifier(""), auth.NewAppleVerifier(""), time.Hour,
	)
	catalogSvc := services.NewCatalogService(productRepo, cartRepo, favoriteRepo, orderRepo)

	m, err := model.NewModelFromString(rbacModel)
	require.NoError(t, err)
	enforcer, err := casbin.NewEnforcer(m)
	require.NoError(t, err)
	policies := [][]string{
		{"role_farmer", "/api/products", "POST"},
		{"role_farmer", "/api/products/:id", "PUT"},
		{"role_farmer", "/api/orders", "GET"},
		{"role_buyer", "/api/cart", "(GET|POST)"},
		{"role_buyer", "/api/cart/:id", "DELETE"},
		{"role_buyer", "/api/favorites", "(GET|POST)"},
		{"role_buyer", "/api/favorites/:id", "DELETE"},
		{"role_buyer", "/api/orders", "(GET|POST)"},
	}
	for _, p := range policies {
		_, err = enforcer.AddPolicy(p[0], p[1], p[2])
		require.NoError(t, err)
	}

	router := httpx.BuildRouter(
		handlers.NewAuthHandlers(authSvc),
		handlers.NewMarketplaceHandlers(catalogSvc),
		handlers.NewHealthHandlers(userRepo),
		middleware.NewAuthMW(tokenSvc, sessionRepo),
		middleware.NewCasbinMW(&auth.CasbinService{E: enforcer}),
		[]string{"http://localhost:5173"},
	)

	return &testEnv{Router: router, DB: db, SMS: sms}
}

// do sends a JSON request through the router. An empty token leaves the
// Authorization header unset.
func (env *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)

	decoded := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

// lastOTPCode pulls the most recent OTP code out of the captured SMS log.
func (env *testEnv) lastOTPCode(t *testing.T) string {
	t.Helper()
	last, ok := env.SMS.LastSent()
	require.True(t, ok, "expected an SMS to have been sent")
	code := otpCodePattern.FindString(last.Message)
	require.NotEmpty(t, code, "SMS should contain a 6 digit code")
	return code
}

// registerUser registers an account through the API and returns its token.
func (env *testEnv) registerUser(t *testing.T, email, password, role string) string {
	t.Helper()
	w, body := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"password": password,
		"userType": role,
	})
	require.Equal(t, http.StatusOK, w.Code, "registration failed: %s", w.Body.String())
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
