package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"employee-datahub/api/controllers"
	"employee-datahub/service/rate_limiter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (*rate_limiter.RateLimitResult, error) {
	args := m.Called(ctx, key)
	if res := args.Get(0); res != nil {
		return res.(*rate_limiter.RateLimitResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/average-salary-per-department", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	return req
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := new(MockLimiter)
	limiter.On("Allow", mock.Anything, "10.0.0.7").
		Return(&rate_limiter.RateLimitResult{Allowed: true, Limit: 60, Remaining: 59, ResetAt: 1700000060}, nil)

	w := httptest.NewRecorder()
	RateLimit(limiter)(okHandler()).ServeHTTP(w, newRequest())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "60", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "59", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1700000060", w.Header().Get("X-RateLimit-Reset"))
	limiter.AssertExpectations(t)
}

func TestRateLimit_Rejected(t *testing.T) {
	limiter := new(MockLimiter)
	limiter.On("Allow", mock.Anything, "10.0.0.7").
		Return(&rate_limiter.RateLimitResult{Allowed: false, Limit: 60, Remaining: 0, ResetAt: 1700000060}, nil)

	w := httptest.NewRecorder()
	RateLimit(limiter)(okHandler()).ServeHTTP(w, newRequest())

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var resp controllers.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_LimiterErrorPassesThrough(t *testing.T) {
	limiter := new(MockLimiter)
	limiter.On("Allow", mock.Anything, "10.0.0.7").Return(nil, errors.New("redis down"))

	w := httptest.NewRecorder()
	RateLimit(limiter)(okHandler()).ServeHTTP(w, newRequest())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:8080"
	assert.Equal(t, "192.168.1.5", clientIP(req))

	req.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", clientIP(req))
}
