package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-web-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
)

const (
	loginPath  = "/api/v1/login"
	logoutPath = "/api/v1/logout"
	mePath     = "/api/v1/me"
)

// Config holds auth service configuration
type Config struct {
	HomeURL string // default: /attendance
}

type AuthServiceImpl struct {
	client *apiclient.Client
	config Config
}

func NewAuthService(client *apiclient.Client, cfg Config) auth.AuthService {
	if cfg.HomeURL == "" {
		cfg.HomeURL = "/attendance"
	}
	return &AuthServiceImpl{client: client, config: cfg}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}
	sc, ok := session.FromContext(ctx)
	if !ok {
		return auth.LoginResponse{}, session.ErrUnauthenticated
	}

	// Anonymous: no token is held yet.
	raw, err := a.client.Post(ctx, loginPath, req)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusUnprocessableEntity) {
			if apiErr.Message != "" {
				return auth.LoginResponse{}, fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, err)
			}
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to log in: %w", err)
	}

	payload, err := apiclient.Decode[auth.LoginPayload](raw)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	token := payload.BearerToken()
	if token == "" {
		return auth.LoginResponse{}, auth.ErrMissingToken
	}
	if err := sc.SetToken(ctx, token); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to store session token: %w", err)
	}

	var user auth.User
	if payload.User != nil {
		user = payload.User.ToUser()
	} else if user, err = a.Me(ctx); err != nil {
		return auth.LoginResponse{}, err
	}

	slog.Info("user logged in", "session", sc.ID(), "user_id", user.ID)
	return auth.LoginResponse{User: user, RedirectURL: a.config.HomeURL}, nil
}

// Logout implements auth.AuthService. The upstream call is best effort; the
// local token is cleared whatever it returns.
func (a *AuthServiceImpl) Logout(ctx context.Context) error {
	client, sc, err := session.Client(ctx, a.client)
	if err != nil {
		return nil
	}

	if _, err := client.Post(ctx, logoutPath, nil); err != nil {
		slog.Warn("upstream logout failed", "session", sc.ID(), "error", err)
	}

	if err := sc.ClearToken(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.User, error) {
	client, _, err := session.Client(ctx, a.client)
	if err != nil {
		return auth.User{}, err
	}
	raw, err := client.Get(ctx, mePath, nil)
	if err != nil {
		return auth.User{}, session.Translate(ctx, err)
	}
	p, err := apiclient.Decode[auth.UserPayload](raw)
	if err != nil {
		return auth.User{}, err
	}
	return p.ToUser(), nil
}
