package middleware

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/hris-web-go/internal/handler/http/response"
)

// RequireRole admits sessions whose login role is one of roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			if !slices.Contains(roles, role) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: role '%s' cannot open this page", role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
