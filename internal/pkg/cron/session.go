package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
)

// SessionCache is per-session state held outside the session store.
type SessionCache interface {
	SessionIDs() []string
	Forget(sessionID string)
}

type SessionJobs struct {
	store    session.Store
	caches   []SessionCache
	interval time.Duration
}

func NewSessionJobs(store session.Store, interval time.Duration, caches ...SessionCache) *SessionJobs {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &SessionJobs{store: store, caches: caches, interval: interval}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_sessions", j.interval, j.PurgeExpiredSessions)
}

// PurgeExpiredSessions deletes expired sessions from the store, then drops
// cached state of every session the store no longer knows.
func (j *SessionJobs) PurgeExpiredSessions(ctx context.Context) error {
	removed, err := j.store.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge expired sessions: %w", err)
	}

	forgotten := 0
	for _, cache := range j.caches {
		for _, id := range cache.SessionIDs() {
			_, err := j.store.GetToken(ctx, id)
			switch {
			case errors.Is(err, session.ErrSessionNotFound):
				cache.Forget(id)
				forgotten++
			case err != nil:
				return fmt.Errorf("failed to check session: %w", err)
			}
		}
	}

	if removed > 0 || forgotten > 0 {
		slog.Info("Cron: purged expired sessions", "removed", removed, "cache_entries_forgotten", forgotten)
	}
	return nil
}
