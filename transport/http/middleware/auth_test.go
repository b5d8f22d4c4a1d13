package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental/config"
	"rental/infras/jwt"
	"rental/infras/otel/mocks"
	"rental/permissions"
	"rental/shared/principal"
	"rental/transport/http/middleware"
)

func newRouter(t *testing.T) (http.Handler, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-secret"
	cfg.JWT.AccessExpireMin = 5
	cfg.App.APIKey = "internal-key"

	jwtService := jwt.New(cfg)
	auth := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), permissions.Get(), cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		caller := principal.FromContext(r.Context())
		w.Header().Set("X-Caller", caller.ID)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Use(auth.APIKey, auth.Auth, auth.RBAC)
	router.Route("/v1", func(v1 chi.Router) {
		v1.Route("/vehicles", func(vehicles chi.Router) {
			vehicles.Get("/{id}/availability", echo)
			vehicles.Put("/{id}/availability", echo)
		})
	})

	return router, jwtService
}

func bearer(t *testing.T, jwtService jwt.JWT, p principal.Principal) string {
	t.Helper()

	token, err := jwtService.GenerateAccessToken(p)
	require.NoError(t, err)

	return "Bearer " + token
}

func TestAuthRole(t *testing.T) {
	router, jwtService := newRouter(t)

	tests := []struct {
		name       string
		method     string
		headers    map[string]string
		wantCode   int
		wantCaller string
	}{
		{
			name:     "missing token",
			method:   http.MethodPut,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "garbage token",
			method:   http.MethodPut,
			headers:  map[string]string{"Authorization": "Bearer not-a-token"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "role not allowed",
			method: http.MethodPut,
			headers: map[string]string{
				"Authorization": bearer(t, jwtService, principal.Principal{ID: "cust-1", Role: principal.RoleCustomer, Email: "c@example.com"}),
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "admin allowed",
			method: http.MethodPut,
			headers: map[string]string{
				"Authorization": bearer(t, jwtService, principal.Principal{ID: "admin-1", Role: principal.RoleAdmin, Email: "a@example.com"}),
			},
			wantCode:   http.StatusOK,
			wantCaller: "admin-1",
		},
		{
			name:       "internal api key",
			method:     http.MethodPut,
			headers:    map[string]string{"X-API-Key": "internal-key"},
			wantCode:   http.StatusOK,
			wantCaller: "system",
		},
		{
			name:     "wrong api key",
			method:   http.MethodPut,
			headers:  map[string]string{"X-API-Key": "guess"},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "public route without token",
			method:   http.MethodGet,
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/vehicles/bike-1/availability", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCaller, rec.Header().Get("X-Caller"))
		})
	}
}
