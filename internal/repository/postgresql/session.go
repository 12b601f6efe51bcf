package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
	"github.com/jackc/pgx/v5"
)

// SessionSchema creates the table backing the session store.
var SessionSchema = []string{
	`CREATE TABLE IF NOT EXISTS web_sessions (
		session_hash     TEXT PRIMARY KEY,
		token_ciphertext BYTEA NOT NULL,
		expires_at       TIMESTAMPTZ NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS web_sessions_expires_at_idx ON web_sessions (expires_at)`,
}

type sessionRepositoryImpl struct {
	db     *database.DB
	sealer *session.Sealer
}

// NewSessionRepository creates a session.Store persisted in PostgreSQL.
// Session ids are stored hashed and upstream tokens encrypted.
func NewSessionRepository(db *database.DB, sealer *session.Sealer) session.Store {
	return &sessionRepositoryImpl{db: db, sealer: sealer}
}

// EnsureSessionSchema applies SessionSchema in one transaction.
func EnsureSessionSchema(ctx context.Context, db *database.DB) error {
	err := WithTransaction(ctx, db, func(tx pgx.Tx) error {
		for _, stmt := range SessionSchema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to apply session schema: %w", err)
	}
	return nil
}

// hashSessionID hashes the session id using SHA256 and encodes the result in base64.
func (s *sessionRepositoryImpl) hashSessionID(sessionID string) string {
	hash := sha256.Sum256([]byte(sessionID))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (s *sessionRepositoryImpl) GetToken(ctx context.Context, sessionID string) (string, error) {
	query := `
		SELECT token_ciphertext
		FROM web_sessions
		WHERE session_hash = $1 AND expires_at > NOW()
	`
	var sealed []byte
	err := s.db.QueryRow(ctx, query, s.hashSessionID(sessionID)).Scan(&sealed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", session.ErrSessionNotFound
		}
		return "", err
	}
	return s.sealer.Open(sealed)
}

func (s *sessionRepositoryImpl) SetToken(ctx context.Context, sessionID string, token string, expiresAt time.Time) error {
	sealed, err := s.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("failed to seal session token: %w", err)
	}
	query := `
		INSERT INTO web_sessions (session_hash, token_ciphertext, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_hash) DO UPDATE
		SET token_ciphertext = EXCLUDED.token_ciphertext,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
	`
	_, err = s.db.Exec(ctx, query, s.hashSessionID(sessionID), sealed, expiresAt.UTC())
	return err
}

func (s *sessionRepositoryImpl) ClearToken(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM web_sessions WHERE session_hash = $1`, s.hashSessionID(sessionID))
	return err
}

func (s *sessionRepositoryImpl) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM web_sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
