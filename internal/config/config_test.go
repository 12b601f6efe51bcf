package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://api.example.com/")
	t.Setenv("SESSION_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "https://api.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, StoreMemory, cfg.Session.Store)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "/api/v1/attendances", cfg.Attendance.Path)
	assert.Equal(t, 1500*time.Millisecond, cfg.Employee.RedirectDelay)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.App.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "https://api.example.com")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("ATTENDANCE_PATH", "/attendances")
	t.Setenv("REDIRECT_DELAY", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/attendances", cfg.Attendance.Path)
	assert.Equal(t, 2*time.Second, cfg.Employee.RedirectDelay)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.App.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing upstream", map[string]string{"SESSION_SECRET": "s"}},
		{"missing secret", map[string]string{"UPSTREAM_BASE_URL": "https://api.example.com"}},
		{"bad duration", map[string]string{"UPSTREAM_BASE_URL": "https://api.example.com", "SESSION_SECRET": "s", "SESSION_TTL": "forever"}},
		{"unknown store", map[string]string{"UPSTREAM_BASE_URL": "https://api.example.com", "SESSION_SECRET": "s", "SESSION_STORE": "redis"}},
		{"postgres without key", map[string]string{"UPSTREAM_BASE_URL": "https://api.example.com", "SESSION_SECRET": "s", "SESSION_STORE": "postgres", "DB_PASSWORD": "pw"}},
		{"bad timezone", map[string]string{"UPSTREAM_BASE_URL": "https://api.example.com", "SESSION_SECRET": "s", "ATTENDANCE_TIMEZONE": "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("UPSTREAM_BASE_URL", "")
			t.Setenv("SESSION_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
