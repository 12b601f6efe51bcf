package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/hris-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
)

// Session attaches the browser session named by a verified cookie to the
// request context. Requests without one pass through unchanged.
func Session(jwtService jwt.Service, store session.Store, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				next.ServeHTTP(w, r)
				return
			}
			sessionID, err := jwtService.SessionID(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			sc := session.NewContext(store, sessionID, ttl)
			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sc)))
		}
		return http.HandlerFunc(hfn)
	}
}

// SessionRequired rejects requests whose session holds no upstream token.
// The page is told to go to the login screen.
func SessionRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc, ok := session.FromContext(r.Context())
		if !ok {
			response.HandleError(w, session.ErrUnauthenticated)
			return
		}
		if _, err := sc.GetToken(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
