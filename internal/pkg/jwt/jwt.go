package jwt

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// CookieName is the browser cookie holding the signed session token.
const CookieName = "hris_session"

type Service interface {
	// NewSessionID mints an unguessable browser session id.
	NewSessionID() string
	// IssueSessionToken signs the cookie token for a logged-in session.
	IssueSessionToken(sessionID string, role string) (token string, expiresAt time.Time, err error)
	// GenerateSSEToken signs a short-lived token for EventSource connections,
	// which cannot send custom headers.
	GenerateSSEToken(sessionID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (sessionID string, err error)
	// SessionID reads the session id from a verified cookie token.
	SessionID(token jwt.Token) (string, error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt time.Time) *http.Cookie
	ExpiredCookie() *http.Cookie
}

type JWTService struct {
	ttl       time.Duration
	secure    bool
	tokenAuth *jwtauth.JWTAuth
	now       func() time.Time
}

func NewJWTService(secretKey string, ttl time.Duration, secure bool) Service {
	return &JWTService{
		ttl:       ttl,
		secure:    secure,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:       time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) NewSessionID() string {
	return uuid.NewString()
}

func (j *JWTService) IssueSessionToken(sessionID string, role string) (token string, expiresAt time.Time, err error) {
	expiresAt = j.now().Add(j.ttl)

	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"sid":  sessionID,
		"role": role,
		"type": "session",
		"iat":  j.now().Unix(),
		"exp":  expiresAt.Unix(),
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (j *JWTService) SessionID(token jwt.Token) (string, error) {
	return claim(token, "session", "sid")
}

func claim(token jwt.Token, wantType, key string) (string, error) {
	if token == nil {
		return "", jwt.ErrInvalidJWT()
	}
	tokenType, ok := token.Get("type")
	if !ok || tokenType != wantType {
		return "", jwt.ErrInvalidJWT()
	}
	val, ok := token.Get(key)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return s, nil
}

func (j *JWTService) SessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(sessionID string) (token string, expiresIn int, err error) {
	// SSE tokens are short-lived (5 minutes)
	expiresIn = 300
	expiresAt := j.now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sid":  sessionID,
		"type": "sse",
		"exp":  expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns the session ID
func (j *JWTService) ValidateSSEToken(tokenString string) (sessionID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}
	return claim(token, "sse", "sid")
}

// TokenFromCookie finds the session token for jwtauth.Verify.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
