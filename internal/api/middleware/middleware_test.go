package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"jr-escala/backend/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── 测试桩 ──

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

type stubRecorder struct {
	metrics.NopRecorder
	routes   []string
	statuses []int
}

func (s *stubRecorder) ObserveHTTP(_ string, route string, status int, _ time.Duration) {
	s.routes = append(s.routes, route)
	s.statuses = append(s.statuses, status)
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func okHandler(c *gin.Context) { c.Status(http.StatusOK) }

// ── RequestID ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", okHandler)

	w := serve(r, http.MethodGet, "/ping", map[string]string{"X-Request-ID": "abc-123"})
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("应沿用请求头中的 ID，实际 %q", got)
	}

	for _, bad := range []string{strings.Repeat("x", 100), "abc\nlevel=error", "a b"} {
		w = serve(r, http.MethodGet, "/ping", map[string]string{"X-Request-ID": bad})
		if got := w.Header().Get("X-Request-ID"); len(got) != 36 || got == bad {
			t.Errorf("不合法的 ID %q 应被替换为 UUID，实际 %q", bad, got)
		}
	}
}

// ── RateLimit ──

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		limiter *stubLimiter
		want    int
	}{
		{"放行", &stubLimiter{allowed: true}, http.StatusOK},
		{"超出限制", &stubLimiter{allowed: false}, http.StatusTooManyRequests},
		{"Redis 出错时降级放行", &stubLimiter{err: errors.New("down")}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/routes/:id", RateLimit(tt.limiter, 1, time.Minute), okHandler)

			w := serve(r, http.MethodPost, "/routes/7", nil)
			if w.Code != tt.want {
				t.Errorf("期望状态码 %d，实际 %d", tt.want, w.Code)
			}
			if tt.want == http.StatusTooManyRequests && w.Header().Get("Retry-After") != "60" {
				t.Errorf("429 应带 Retry-After: 60，实际 %q", w.Header().Get("Retry-After"))
			}
			if len(tt.limiter.keys) != 1 || !strings.HasSuffix(tt.limiter.keys[0], ":/routes/:id") {
				t.Errorf("限流 key 应使用路由模板，实际 %v", tt.limiter.keys)
			}
		})
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/routes", RateLimit(nil, 1, time.Minute), okHandler)

	if w := serve(r, http.MethodPost, "/routes", nil); w.Code != http.StatusOK {
		t.Errorf("未配置 Redis 时应放行，实际 %d", w.Code)
	}
}

// ── Metrics ──

func TestMetrics(t *testing.T) {
	rec := &stubRecorder{}
	r := gin.New()
	r.Use(Metrics(rec))
	r.GET("/routes/:id", okHandler)

	serve(r, http.MethodGet, "/routes/42", nil)
	serve(r, http.MethodGet, "/missing", nil)

	if len(rec.routes) != 2 {
		t.Fatalf("期望记录 2 次请求，实际 %d", len(rec.routes))
	}
	if rec.routes[0] != "/routes/:id" || rec.statuses[0] != http.StatusOK {
		t.Errorf("第一次请求记录不符: %s %d", rec.routes[0], rec.statuses[0])
	}
	if rec.routes[1] != "unmatched" || rec.statuses[1] != http.StatusNotFound {
		t.Errorf("未匹配路由应记为 unmatched: %s %d", rec.routes[1], rec.statuses[1])
	}
}

// ── CORS ──

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		origins     []string
		method      string
		header      map[string]string
		wantStatus  int
		wantOrigin  string
		wantMethods bool
	}{
		{
			name:    "允许来源的预检",
			origins: []string{"http://localhost:5173/"},
			method:  http.MethodOptions,
			header: map[string]string{
				"Origin": "http://localhost:5173", "Access-Control-Request-Method": "POST",
			},
			wantStatus: http.StatusNoContent, wantOrigin: "http://localhost:5173", wantMethods: true,
		},
		{
			name:    "未允许来源的预检",
			origins: []string{"http://localhost:5173"},
			method:  http.MethodOptions,
			header: map[string]string{
				"Origin": "http://evil.example", "Access-Control-Request-Method": "POST",
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "未允许来源的简单请求照常处理",
			origins:    []string{"http://localhost:5173"},
			method:     http.MethodGet,
			header:     map[string]string{"Origin": "http://evil.example"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "通配来源",
			origins:    []string{"*"},
			method:     http.MethodGet,
			header:     map[string]string{"Origin": "http://any.example"},
			wantStatus: http.StatusOK, wantOrigin: "*",
		},
		{
			name:       "无 Origin 不处理",
			origins:    []string{"*"},
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.origins))
			r.GET("/ping", okHandler)

			w := serve(r, tt.method, "/ping", tt.header)
			if w.Code != tt.wantStatus {
				t.Errorf("期望状态码 %d，实际 %d", tt.wantStatus, w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin 期望 %q，实际 %q", tt.wantOrigin, got)
			}
			if got := w.Header().Get("Access-Control-Allow-Methods") != ""; got != tt.wantMethods {
				t.Errorf("Allow-Methods 是否下发期望 %v，实际 %v", tt.wantMethods, got)
			}
			if w.Header().Get("Access-Control-Allow-Credentials") != "" {
				t.Error("不应下发 Allow-Credentials")
			}
		})
	}
}

// ── BodyLimit ──

func TestBodyLimit_DeclaredLengthRejected(t *testing.T) {
	called := false
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/echo", func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 32)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("期望 413，实际 %d", w.Code)
	}
	if called {
		t.Error("超限请求不应进入 handler")
	}
}

func TestBodyLimit_ChunkedBodyCapped(t *testing.T) {
	var readErr error
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/echo", func(c *gin.Context) {
		_, readErr = io.ReadAll(c.Request.Body)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 32)))
	req.ContentLength = -1
	r.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	if !errors.As(readErr, &maxErr) {
		t.Errorf("未声明长度的请求体读取超限时应返回 *http.MaxBytesError，实际 %v", readErr)
	}

	readErr = nil
	small := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("ok"))
	small.ContentLength = -1
	r.ServeHTTP(httptest.NewRecorder(), small)
	if readErr != nil {
		t.Errorf("未超限的请求体应正常读取: %v", readErr)
	}
}

// ── SecurityHeaders ──

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/api/v1/availability", okHandler)
	r.GET("/health", okHandler)

	w := serve(r, http.MethodGet, "/api/v1/availability", nil)
	if w.Header().Get("X-Content-Type-Options") != "nosniff" || w.Header().Get("X-Frame-Options") != "DENY" {
		t.Errorf("缺少安全响应头: %v", w.Header())
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("/api 下应禁止缓存，实际 %q", w.Header().Get("Cache-Control"))
	}

	w = serve(r, http.MethodGet, "/health", nil)
	if w.Header().Get("Cache-Control") != "" {
		t.Errorf("/health 不设置 Cache-Control，实际 %q", w.Header().Get("Cache-Control"))
	}
}

// ── Logger ──

func TestLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.New(core), "/health"))
	r.GET("/health", okHandler)
	r.GET("/routes/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.POST("/routes", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/health", nil)
	serve(r, http.MethodGet, "/routes/9?x=1", map[string]string{"X-Request-ID": "rid-1"})
	serve(r, http.MethodPost, "/routes", nil)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("期望 3 条日志，实际 %d", len(entries))
	}
	wantLevels := []zapcore.Level{zapcore.DebugLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		if e.Level != wantLevels[i] {
			t.Errorf("第 %d 条日志级别期望 %s，实际 %s", i, wantLevels[i], e.Level)
		}
	}

	fields := entries[1].ContextMap()
	if fields["route"] != "/routes/:id" || fields["request_id"] != "rid-1" || fields["query"] != "x=1" {
		t.Errorf("日志字段不符: %v", fields)
	}
}

func TestLogger_SkipsDisabledLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core), "/health"))
	r.GET("/health", okHandler)

	serve(r, http.MethodGet, "/health", nil)
	if logs.Len() != 0 {
		t.Errorf("Info 级别下健康检查不应记录，实际 %d 条", logs.Len())
	}
}
