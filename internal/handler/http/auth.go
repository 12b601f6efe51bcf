package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
	store       session.Store
	ttl         time.Duration
	// onLogout drops per-session state kept outside the store.
	onLogout []func(sessionID string)
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, store session.Store, ttl time.Duration, onLogout ...func(sessionID string)) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
		store:       store,
		ttl:         ttl,
		onLogout:    onLogout,
	}
}

// Login implements AuthHandler. Every login starts a fresh session; a session
// the browser already had is ended.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest
	if !decodeJSON(w, r, &loginReq, "Login") {
		return
	}

	sessionID := a.jwtService.NewSessionID()
	sc := session.NewContext(a.store, sessionID, a.ttl)
	ctx := session.WithContext(r.Context(), sc)

	res, err := a.authService.Login(ctx, loginReq)
	if err != nil {
		slog.Warn("Login failed", "error", err)
		response.HandleError(w, err)
		return
	}

	role := strings.ToLower(res.User.Role)
	token, expiresAt, err := a.jwtService.IssueSessionToken(sessionID, role)
	if err != nil {
		slog.Error("Login token error", "error", err)
		if clearErr := sc.ClearToken(context.WithoutCancel(ctx)); clearErr != nil {
			slog.Warn("failed to clear session after token error", "error", clearErr)
		}
		response.InternalServerError(w, "Failed to start session")
		return
	}

	if previous, ok := session.FromContext(r.Context()); ok && previous.ID() != sessionID {
		a.end(r.Context(), previous)
	}

	http.SetCookie(w, a.jwtService.SessionCookie(token, expiresAt))
	response.SuccessWithMessage(w, "Login successful", res)
}

// Logout implements AuthHandler. It succeeds even without a session.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if sc, ok := session.FromContext(r.Context()); ok {
		if err := a.authService.Logout(r.Context()); err != nil {
			slog.Error("Logout error", "session", sc.ID(), "error", err)
		}
		a.forget(sc.ID())
	}

	http.SetCookie(w, a.jwtService.ExpiredCookie())
	response.SuccessWithMessage(w, "Logged out", map[string]string{"redirect_url": response.LoginURL})
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.authService.Me(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, user)
}

func (a *AuthHandlerImpl) end(ctx context.Context, sc *session.Context) {
	if err := sc.ClearToken(context.WithoutCancel(ctx)); err != nil {
		slog.Warn("failed to end previous session", "session", sc.ID(), "error", err)
	}
	a.forget(sc.ID())
}

func (a *AuthHandlerImpl) forget(sessionID string) {
	for _, fn := range a.onLogout {
		fn(sessionID)
	}
}
