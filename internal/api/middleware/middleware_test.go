package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stegavault/stegavault/internal/api/middleware"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/logger"
	"github.com/stegavault/stegavault/internal/mocks"
	"github.com/stegavault/stegavault/internal/ratelimit"
)

func newRouter(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Recovery(), middleware.Logger())
	router.GET("/", handlers...)
	return router
}

func serve(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	echoPrincipal := func(c *gin.Context) {
		principal, ok := middleware.PrincipalFrom(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, principal.AccountID)
	}

	t.Run("valid session sets the principal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		authenticator := mocks.NewMockAuthenticator(ctrl)
		authenticator.EXPECT().Authenticate(gomock.Any(), "tok").Return(&domain.Principal{AccountID: "alice"}, nil)

		w := serve(newRouter(t, middleware.Auth(authenticator), echoPrincipal), "Bearer tok")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		authenticator := mocks.NewMockAuthenticator(ctrl)

		w := serve(newRouter(t, middleware.Auth(authenticator), echoPrincipal), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("expired session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		authenticator := mocks.NewMockAuthenticator(ctrl)
		authenticator.EXPECT().Authenticate(gomock.Any(), "old").Return(nil, domain.ErrSessionExpired)

		w := serve(newRouter(t, middleware.Auth(authenticator), echoPrincipal), "Token old")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrSessionExpired.Message)
	})

	t.Run("ledger failure is a server error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		authenticator := mocks.NewMockAuthenticator(ctrl)
		authenticator.EXPECT().Authenticate(gomock.Any(), "tok").Return(nil, errors.New("connection reset"))

		w := serve(newRouter(t, middleware.Auth(authenticator), echoPrincipal), "Bearer tok")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})

	t.Run("no principal without the middleware", func(t *testing.T) {
		w := serve(newRouter(t, echoPrincipal), "")
		assert.Equal(t, http.StatusTeapot, w.Code)
	})
}

func TestRecovery(t *testing.T) {
	w := serve(newRouter(t, func(c *gin.Context) { panic("boom") }), "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestSetupCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.SetupCORS([]string{"https://app.example"}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("keys anonymous callers by ip", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := mocks.NewMockRateLimiter(ctrl)
		limiter.EXPECT().
			Allow(gomock.Any(), ratelimit.RouteVerify, "ip:192.0.2.1").
			Return(ratelimit.Decision{Allowed: true}, nil)

		w := serve(newRouter(t, middleware.RateLimit(limiter, ratelimit.RouteVerify), ok), "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("keys sessions by account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		authenticator := mocks.NewMockAuthenticator(ctrl)
		authenticator.EXPECT().Authenticate(gomock.Any(), "tok").Return(&domain.Principal{AccountID: "alice"}, nil)
		limiter := mocks.NewMockRateLimiter(ctrl)
		limiter.EXPECT().
			Allow(gomock.Any(), ratelimit.RouteMint, "account:alice").
			Return(ratelimit.Decision{Allowed: false, RetryAfter: 1500 * time.Millisecond}, nil)

		w := serve(newRouter(t, middleware.Auth(authenticator), middleware.RateLimit(limiter, ratelimit.RouteMint), ok), "Bearer tok")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "too_many_requests")
	})

	t.Run("limiter failure lets the request through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := mocks.NewMockRateLimiter(ctrl)
		limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any()).Return(ratelimit.Decision{}, errors.New("redis down"))

		w := serve(newRouter(t, middleware.RateLimit(limiter, ratelimit.RoutePurchase), ok), "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
