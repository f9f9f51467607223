package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akshaj-M/IlavaHealth-2/internal/infrastructure/auth"
)

const casbinTestModel = `
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

func newTestCasbinMW(t *testing.T) *CasbinMW {
	t.Helper()

	m, err := model.NewModelFromString(casbinTestModel)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	_, err = e.AddPolicy("role_farmer", "/api/products", "POST")
	require.NoError(t, err)
	_, err = e.AddPolicy("role_farmer", "/api/products/:id", "PUT")
	require.NoError(t, err)
	_, err = e.AddPolicy("role_buyer", "/api/cart", "(GET|POST)")
	require.NoError(t, err)
	_, err = e.AddPolicy("role_buyer", "/api/cart/:id", "DELETE")
	require.NoError(t, err)

	return NewCasbinMW(&auth.CasbinService{E: e})
}

func runEnforce(t *testing.T, mw *CasbinMW, method, path, role string) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	prime := func(c *gin.Context) {
		if role != "" {
			c.Set("user_role", role)
		}
		c.Next()
	}
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) }
	r.Handle(method, "/api/products", prime, mw.Enforce(), ok)
	r.Handle(method, "/api/products/:id", prime, mw.Enforce(), ok)
	r.Handle(method, "/api/cart", prime, mw.Enforce(), ok)
	r.Handle(method, "/api/cart/:id", prime, mw.Enforce(), ok)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestCasbinMW_Enforce(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		role           string
		expectedStatus int
	}{
		{
			name:           "farmer may create products",
			method:         http.MethodPost,
			path:           "/api/products",
			role:           "farmer",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "buyer may not create products",
			method:         http.MethodPost,
			path:           "/api/products",
			role:           "buyer",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "farmer may edit a listing",
			method:         http.MethodPut,
			path:           "/api/products/3",
			role:           "farmer",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "buyer may not edit listings",
			method:         http.MethodPut,
			path:           "/api/products/3",
			role:           "buyer",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "regex action covers both cart verbs",
			method:         http.MethodGet,
			path:           "/api/cart",
			role:           "buyer",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "path parameter matches keyMatch2",
			method:         http.MethodDelete,
			path:           "/api/cart/42",
			role:           "buyer",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "farmer may not touch the cart",
			method:         http.MethodDelete,
			path:           "/api/cart/42",
			role:           "farmer",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing role in context",
			method:         http.MethodPost,
			path:           "/api/products",
			role:           "",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := newTestCasbinMW(t)
			w := runEnforce(t, mw, tt.method, tt.path, tt.role)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
