package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/lanauthgate/logging"
	"github.com/blogem/lanauthgate/sessions"
	"github.com/blogem/lanauthgate/userctx"
)

func TestRequireAuth(t *testing.T) {
	store := sessions.NewMemoryStore(time.Hour, logging.Nop())
	session, err := store.Create("admin")
	require.NoError(t, err)

	var principal, token string
	handler := RequireAuth(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = userctx.GetPrincipal(r.Context())
		token = userctx.GetSessionToken(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("no cookie", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/auth/list", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "unauthenticated", body["error"])
		assert.NotEmpty(t, body["message"])
	})

	t.Run("unknown token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/list", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/list", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "admin", principal)
		assert.Equal(t, session.Token, token)
	})
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", false, "192.168.1.5:51234", nil, "192.168.1.5"},
		{"ipv6 remote addr", false, "[fe80::1]:51234", nil, "fe80::1"},
		{"forwarded ignored when untrusted", false, "192.168.1.5:1", map[string]string{"X-Forwarded-For": "10.0.0.9"}, "192.168.1.5"},
		{"forwarded first hop", true, "192.168.1.5:1", map[string]string{"X-Forwarded-For": "10.0.0.9, 10.0.0.1"}, "10.0.0.9"},
		{"real ip", true, "192.168.1.5:1", map[string]string{"X-Real-IP": "10.0.0.7"}, "10.0.0.7"},
		{"empty remote addr", false, "", nil, userctx.UnknownIP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := ClientIP(tt.trustProxy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = userctx.GetClientIP(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoginRateLimiter(t *testing.T) {
	limiter := NewLoginRateLimiter(2)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req = req.WithContext(userctx.SetClientIP(req.Context(), ip))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"), "limits are per IP")

	limiter.prune(time.Now().Add(idleLimiterTTL + time.Second))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"), "pruned limiter starts fresh")
}

func TestRateLimiterRunStops(t *testing.T) {
	limiter := NewLoginRateLimiter(1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		limiter.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: slog.LevelInfo, Format: logging.FormatJSON, Output: &buf})

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/health", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
}
