package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Upstream   UpstreamConfig
	Session    SessionConfig
	Database   DatabaseConfig
	Attendance AttendanceConfig
	Employee   EmployeeConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	FrontendURL    string
	AllowedOrigins []string
}

// UpstreamConfig points at the HRIS REST API
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds browser session configuration
type SessionConfig struct {
	Secret        string
	TTL           time.Duration
	Store         string // memory | postgres
	EncryptionKey string
	CookieSecure  bool
	PurgeInterval time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type AttendanceConfig struct {
	Path     string
	Timezone string
}

type EmployeeConfig struct {
	RedirectDelay time.Duration
}

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Load reads the environment, after .env when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
		slog.Info("no .env file, using process environment")
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{config.App.FrontendURL}
	}

	upstreamTimeout, err := getEnvDuration("UPSTREAM_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	config.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(getEnv("UPSTREAM_BASE_URL", ""), "/"),
		Timeout: upstreamTimeout,
	}

	sessionTTL, err := getEnvDuration("SESSION_TTL", "12h")
	if err != nil {
		return nil, err
	}
	purgeInterval, err := getEnvDuration("SESSION_PURGE_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	config.Session = SessionConfig{
		Secret:        getEnv("SESSION_SECRET", ""),
		TTL:           sessionTTL,
		Store:         getEnv("SESSION_STORE", StoreMemory),
		EncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", ""),
		CookieSecure:  getEnv("APP_ENV", "development") == "production",
		PurgeInterval: purgeInterval,
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_web"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Attendance = AttendanceConfig{
		Path:     getEnv("ATTENDANCE_PATH", "/api/v1/attendances"),
		Timezone: getEnv("ATTENDANCE_TIMEZONE", "Asia/Jakarta"),
	}

	redirectDelay, err := getEnvDuration("REDIRECT_DELAY", "1500ms")
	if err != nil {
		return nil, err
	}
	config.Employee = EmployeeConfig{RedirectDelay: redirectDelay}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	switch c.Session.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when SESSION_STORE=postgres")
		}
		if c.Session.EncryptionKey == "" {
			return fmt.Errorf("SESSION_ENCRYPTION_KEY is required when SESSION_STORE=postgres")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q", StoreMemory, StorePostgres)
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the attendance time zone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Attendance.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
