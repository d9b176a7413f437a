package gateway

import (
	"net/http"
	"strings"

	"civic-sights/internal/core"
)

// Role claims the gateway assigns to paying users
var paidRoles = []string{"PAID_USER", "ROLE_PAID_USER"}

// HasPaidRole reports whether the comma-separated role header contains a
// paid-user claim. Matching is case-insensitive.
func HasPaidRole(rolesHeader string) bool {
	if rolesHeader == "" {
		return false
	}

	for _, role := range strings.Split(rolesHeader, ",") {
		role = strings.TrimSpace(role)
		for _, paid := range paidRoles {
			if strings.EqualFold(role, paid) {
				return true
			}
		}
	}
	return false
}

// RequirePaidRole rejects requests whose X-User-Roles header carries no
// paid-user claim, before the request reaches the store.
func RequirePaidRole(logger *core.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !HasPaidRole(r.Header.Get(HeaderUserRoles)) {
				logger.WithContext(r.Context()).Warn("Premium content denied, no paid role", "uri", r.RequestURI)
				WriteForbidden(w, "A paid subscription is required to view this content.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
