package session

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"
)

var (
	// ErrUnauthenticated means no upstream token is held for the session.
	ErrUnauthenticated = errors.New("not authenticated")
	ErrSessionNotFound = errors.New("session not found")
)

// Store persists the upstream bearer token per browser session.
// Implementations must be safe for concurrent use.
type Store interface {
	GetToken(ctx context.Context, sessionID string) (string, error)
	SetToken(ctx context.Context, sessionID string, token string, expiresAt time.Time) error
	ClearToken(ctx context.Context, sessionID string) error
	// PurgeExpired removes expired sessions and reports how many were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}

// Context is one session's view of the store. It is set at login,
// cleared at logout, and read at the start of every authenticated action.
type Context struct {
	store Store
	id    string
	ttl   time.Duration
	now   func() time.Time
}

func NewContext(store Store, sessionID string, ttl time.Duration) *Context {
	return &Context{store: store, id: sessionID, ttl: ttl, now: time.Now}
}

func (c *Context) ID() string {
	return c.id
}

func (c *Context) GetToken(ctx context.Context) (string, error) {
	token, err := c.store.GetToken(ctx, c.id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return "", ErrUnauthenticated
		}
		return "", err
	}
	if token == "" {
		return "", ErrUnauthenticated
	}
	return token, nil
}

func (c *Context) SetToken(ctx context.Context, token string) error {
	return c.store.SetToken(ctx, c.id, token, c.now().Add(c.ttl))
}

func (c *Context) ClearToken(ctx context.Context) error {
	return c.store.ClearToken(ctx, c.id)
}

// ExpiresAt returns the expiry a token set now would get.
func (c *Context) ExpiresAt() time.Time {
	return c.now().Add(c.ttl)
}

// TokenSource adapts the session to oauth2 so the upstream client reads the
// token on every request rather than capturing it once.
func (c *Context) TokenSource(ctx context.Context) oauth2.TokenSource {
	return tokenSource{ctx: ctx, sc: c}
}

type tokenSource struct {
	ctx context.Context
	sc  *Context
}

func (t tokenSource) Token() (*oauth2.Token, error) {
	token, err := t.sc.GetToken(t.ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

type ctxKey struct{}

// WithContext stores the session in ctx.
func WithContext(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// FromContext returns the session stored by WithContext.
func FromContext(ctx context.Context) (*Context, bool) {
	sc, ok := ctx.Value(ctxKey{}).(*Context)
	return sc, ok && sc != nil
}
