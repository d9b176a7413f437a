package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civic-sights/internal/core"
)

func newTestFilter(enabled bool) *Filter {
	return NewFilter(Config{
		Enabled:     enabled,
		Token:       "test-secret",
		BypassPaths: []string{"/api/articles/health", "/health", "/metrics"},
		AllowedIPs:  []string{"127.0.0.1", "10.0.0.5"},
	}, core.NewLogger())
}

func serve(f *Filter, r *http.Request) *httptest.ResponseRecorder {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	f.Middleware(ok).ServeHTTP(rec, r)
	return rec
}

func decodeForbidden(t *testing.T, rec *httptest.ResponseRecorder) ForbiddenResponse {
	t.Helper()
	var body ForbiddenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFilterDisabledPassesThrough(t *testing.T) {
	f := newTestFilter(false)

	r := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	rec := serve(f, r)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFilterBypassPaths(t *testing.T) {
	f := newTestFilter(true)

	for _, path := range []string{"/api/articles/health", "/health", "/metrics"} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		rec := serve(f, r)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s must bypass the filter", path)
	}
}

func TestFilterMissingHeader(t *testing.T) {
	f := newTestFilter(true)

	r := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	rec := serve(f, r)

	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeForbidden(t, rec)
	assert.Equal(t, "Forbidden", body.Error)
	assert.Equal(t, http.StatusForbidden, body.Status)
	assert.NotEmpty(t, body.Timestamp)
	assert.Contains(t, body.Message, "API Gateway")
}

func TestFilterInvalidToken(t *testing.T) {
	f := newTestFilter(true)

	r := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	r.Header.Set(HeaderGatewayInternal, "wrong-secret")
	rec := serve(f, r)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decodeForbidden(t, rec).Message, "Invalid gateway token")
}

func TestFilterDisallowedIP(t *testing.T) {
	f := newTestFilter(true)

	r := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	r.Header.Set(HeaderGatewayInternal, "test-secret")
	r.Header.Set(HeaderForwardedFor, "203.0.113.9")
	rec := serve(f, r)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decodeForbidden(t, rec).Message, "IP address")
}

func TestFilterFullPass(t *testing.T) {
	f := newTestFilter(true)

	r := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	r.Header.Set(HeaderGatewayInternal, "test-secret")
	r.Header.Set(HeaderForwardedFor, "10.0.0.5")
	rec := serve(f, r)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientIPResolution(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:4321"

	assert.Equal(t, "192.0.2.1", ClientIP(r))

	r.Header.Set(HeaderRealIP, "10.0.0.7")
	assert.Equal(t, "10.0.0.7", ClientIP(r))

	// The first X-Forwarded-For entry wins over everything else
	r.Header.Set(HeaderForwardedFor, "203.0.113.9, 10.0.0.7")
	assert.Equal(t, "203.0.113.9", ClientIP(r))
}
