package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-dashboard/internal/config"
	"github.com/iliyamo/user-dashboard/internal/logging"
)

func ok(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

func serve(e *echo.Echo, method, target string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAllowHosts(t *testing.T) {
	tests := []struct {
		name  string
		hosts []string
		host  string
		want  int
	}{
		{"empty list accepts any", nil, "evil.com", http.StatusNoContent},
		{"listed host", []string{"api.example.com"}, "api.example.com", http.StatusNoContent},
		{"port ignored", []string{"localhost"}, "localhost:8080", http.StatusNoContent},
		{"case insensitive", []string{"api.example.com"}, "API.Example.com", http.StatusNoContent},
		{"other host", []string{"api.example.com"}, "evil.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(AllowHosts(tt.hosts))
			e.GET("/", ok)
			rec := serve(e, http.MethodGet, "/", func(r *http.Request) { r.Host = tt.host })
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAllowMethods(t *testing.T) {
	e := echo.New()
	e.Pre(AllowMethods(http.MethodGet, http.MethodPost))
	e.GET("/", ok)

	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/", nil).Code)

	rec := serve(e, http.MethodPut, "/", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get(echo.HeaderAllow))
	assert.JSONEq(t, `{"error":"method not allowed"}`, rec.Body.String())
}

func TestAttachContext(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.Use(echomw.RequestID(), AttachContext(base))
	e.GET("/users", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("hit")
		return c.NoContent(http.StatusOK)
	})

	rec := serve(e, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	id := rec.Header().Get(echo.HeaderXRequestID)
	require.NotEmpty(t, id)
	assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
	assert.Contains(t, buf.String(), `"path":"/users"`)
}

type fakeScripter struct {
	result []any
	err    error
	keys   []string
}

func (f *fakeScripter) cmd(keys []string) *redis.Cmd {
	f.keys = keys
	return redis.NewCmdResult(f.result, f.err)
}

func (f *fakeScripter) Eval(_ context.Context, _ string, keys []string, _ ...any) *redis.Cmd {
	return f.cmd(keys)
}

func (f *fakeScripter) EvalSha(_ context.Context, _ string, keys []string, _ ...any) *redis.Cmd {
	return f.cmd(keys)
}

func (f *fakeScripter) EvalRO(_ context.Context, _ string, keys []string, _ ...any) *redis.Cmd {
	return f.cmd(keys)
}

func (f *fakeScripter) EvalShaRO(_ context.Context, _ string, keys []string, _ ...any) *redis.Cmd {
	return f.cmd(keys)
}

func (f *fakeScripter) ScriptExists(context.Context, ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(nil, nil)
}

func (f *fakeScripter) ScriptLoad(context.Context, string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func rateLimitedEcho(cfg config.RateLimitConfig, s redis.Scripter) *echo.Echo {
	e := echo.New()
	g := e.Group("/users", rateLimit(cfg, s, func() time.Time { return time.Unix(0, 0) }))
	g.GET("/:userId", ok)
	return e
}

func testRateConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled: true, Capacity: 5, RefillTokens: 1, RefillInterval: time.Second,
		TTL: time.Minute, KeyStrategy: "ip_route", Prefix: "rl:users",
	}
}

func TestRateLimit_Allowed(t *testing.T) {
	s := &fakeScripter{result: []any{int64(1), int64(4), int64(0)}}
	rec := serve(rateLimitedEcho(testRateConfig(), s), http.MethodGet, "/users/abc", func(r *http.Request) {
		r.RemoteAddr = "10.0.0.1:1234"
	})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, []string{"rl:users:ip:10.0.0.1:route:GET /users/:userId"}, s.keys)
}

func TestRateLimit_Blocked(t *testing.T) {
	s := &fakeScripter{result: []any{int64(0), int64(0), int64(1500)}}
	rec := serve(rateLimitedEcho(testRateConfig(), s), http.MethodGet, "/users/abc", nil)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimit_FailsOpen(t *testing.T) {
	s := &fakeScripter{err: errors.New("redis down")}
	rec := serve(rateLimitedEcho(testRateConfig(), s), http.MethodGet, "/users/abc", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	cfg := testRateConfig()
	cfg.Enabled = false
	e := echo.New()
	e.GET("/", ok, RateLimit(cfg, nil))
	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/", nil).Code)
}

func TestRateKey_Strategies(t *testing.T) {
	tests := map[string]string{
		"ip":       "rl:users:ip:10.0.0.1",
		"route":    "rl:users:route:GET /users/:userId",
		"ip_route": "rl:users:ip:10.0.0.1:route:GET /users/:userId",
		"bogus":    "rl:users:ip:10.0.0.1:route:GET /users/:userId",
	}
	for strategy, want := range tests {
		cfg := testRateConfig()
		cfg.KeyStrategy = strategy
		s := &fakeScripter{result: []any{int64(1), int64(1), int64(0)}}
		serve(rateLimitedEcho(cfg, s), http.MethodGet, "/users/abc", func(r *http.Request) {
			r.RemoteAddr = "10.0.0.1:1234"
		})
		assert.Equal(t, []string{want}, s.keys, strategy)
	}
}
