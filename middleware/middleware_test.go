package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestClientIP(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:5000", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.4 "}, "10.0.0.2:5000", "198.51.100.4"},
		{"peer address", nil, "192.0.2.9:4242", "192.0.2.9"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}
			if got := ClientIP(c); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := hit("192.0.2.1"); code != http.StatusOK {
			t.Fatalf("expected request %d allowed, got %d", i+1, code)
		}
	}
	if code := hit("192.0.2.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the burst, got %d", code)
	}
	if code := hit("192.0.2.2"); code != http.StatusOK {
		t.Fatalf("expected another client to be unaffected, got %d", code)
	}
}

func TestAdminKeyMiddleware(t *testing.T) {
	t.Parallel()
	build := func(key string) *gin.Engine {
		r := gin.New()
		r.Use(AdminKeyMiddleware(key))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}
	serve := func(r *gin.Engine, provided string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if provided != "" {
			req.Header.Set(AdminKeyHeader, provided)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := serve(build(""), "anything"); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when disabled, got %d", code)
	}
	r := build("k1")
	if code := serve(r, ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", code)
	}
	if code := serve(r, "k1"); code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", code)
	}
}
