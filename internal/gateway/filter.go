// Package gateway enforces that only the upstream API gateway may reach this
// service directly, and carries the role claims the gateway forwards.
package gateway

import (
	"crypto/subtle"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"civic-sights/internal/core"
)

// Header names the gateway populates
const (
	HeaderGatewayInternal = "X-Gateway-Internal"
	HeaderForwardedFor    = "X-Forwarded-For"
	HeaderRealIP          = "X-Real-IP"
	HeaderUserRoles       = "X-User-Roles"
)

// ForbiddenResponse is the structured 403 payload
type ForbiddenResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Config holds the gateway-only filter configuration
type Config struct {
	Enabled     bool
	Token       string
	BypassPaths []string
	AllowedIPs  []string
}

// NewConfig derives the filter configuration from the core security config
func NewConfig(security core.SecurityConfig) Config {
	return Config{
		Enabled:     security.GatewayOnly,
		Token:       security.GatewayToken,
		BypassPaths: []string{"/api/articles/health", "/health", "/metrics"},
		AllowedIPs:  security.AllowedIPs,
	}
}

// Filter is the gateway-only access filter. It is stateless; every request
// is evaluated independently.
type Filter struct {
	config Config
	logger *core.Logger
}

// NewFilter creates the gateway-only filter
func NewFilter(config Config, logger *core.Logger) *Filter {
	return &Filter{
		config: config,
		logger: logger,
	}
}

// Middleware intercepts every inbound request before routing
func (f *Filter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !f.config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		if f.isBypassPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		remoteAddr := ClientIP(r)
		logger := f.logger.WithContext(r.Context())

		token := r.Header.Get(HeaderGatewayInternal)
		if token == "" {
			logger.Warn("Gateway header missing", "uri", r.RequestURI, "ip", remoteAddr)
			WriteForbidden(w, "Direct access not allowed. Please use the API Gateway.")
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(f.config.Token)) != 1 {
			logger.Warn("Invalid gateway token", "uri", r.RequestURI, "ip", remoteAddr)
			WriteForbidden(w, "Invalid gateway token.")
			return
		}

		if !f.isAllowedIP(remoteAddr) {
			logger.Warn("Unauthorized IP access", "uri", r.RequestURI, "ip", remoteAddr)
			WriteForbidden(w, "Access from this IP address is not allowed.")
			return
		}

		logger.Debug("Gateway validation passed", "uri", r.RequestURI, "ip", remoteAddr)
		next.ServeHTTP(w, r)
	})
}

func (f *Filter) isBypassPath(path string) bool {
	for _, bypass := range f.config.BypassPaths {
		if strings.HasPrefix(path, bypass) {
			return true
		}
	}
	return false
}

func (f *Filter) isAllowedIP(ip string) bool {
	for _, allowed := range f.config.AllowedIPs {
		if ip == allowed {
			return true
		}
	}
	return false
}

// ClientIP resolves the caller's network address: the first X-Forwarded-For
// entry, else X-Real-IP, else the raw connection address.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	if realIP := r.Header.Get(HeaderRealIP); realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// WriteForbidden writes the structured 403 payload
func WriteForbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)

	json.NewEncoder(w).Encode(ForbiddenResponse{
		Error:     "Forbidden",
		Message:   message,
		Status:    http.StatusForbidden,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
