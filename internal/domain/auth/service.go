package auth

import (
	"context"
)

// AuthService works on the session carried by ctx.
type AuthService interface {
	// Login exchanges credentials for an upstream token and stores it in the session.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// Logout tells the upstream and always clears the stored token.
	Logout(ctx context.Context) error
	Me(ctx context.Context) (User, error)
}
