package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/apiclient"
)

// Client returns base bound to the session carried by ctx.
func Client(ctx context.Context, base *apiclient.Client) (*apiclient.Client, *Context, error) {
	sc, ok := FromContext(ctx)
	if !ok {
		return nil, nil, ErrUnauthenticated
	}
	return base.WithTokenSource(sc.TokenSource(ctx)), sc, nil
}

// Translate turns an upstream 401 into ErrUnauthenticated and drops the
// rejected token so the next request goes straight to login.
// Other errors are returned unchanged.
func Translate(ctx context.Context, err error) error {
	if err == nil || !errors.Is(err, apiclient.ErrUnauthorized) {
		return err
	}
	if sc, ok := FromContext(ctx); ok {
		if clearErr := sc.ClearToken(context.WithoutCancel(ctx)); clearErr != nil {
			slog.Warn("failed to clear rejected token", "session", sc.ID(), "error", clearErr)
		}
	}
	return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
}
