package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for a service binary. It is
// loaded once at startup and injected; nothing reloads it afterwards.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Identity IdentityPeerConfig
	Queue    QueueConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines the shared-secret credential parameters. The secret is
// the same value in every service's environment; whichever service verifies
// a credential does so locally with this key.
type AuthConfig struct {
	SharedSecret  string
	TokenTTLHours int
	BcryptCost    int
	// DenyStatus is the HTTP status used when a protected route is hit
	// without a valid credential. Services historically answered either
	// 401 or 403; the choice stays per-service configuration.
	DenyStatus int
}

// IdentityPeerConfig locates the identity service for forwarded
// authorization checks.
type IdentityPeerConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// QueueConfig names the Redis-backed notification outbox.
type QueueConfig struct {
	NotificationKey string
}

// Load reads configuration from environment variables, applying defaults
// where possible. serviceName seeds APP_NAME's default.
func Load(serviceName string) (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	denyStatus := getEnvAsInt("AUTH_DENY_STATUS", http.StatusUnauthorized)
	if denyStatus != http.StatusUnauthorized && denyStatus != http.StatusForbidden {
		return nil, fmt.Errorf("AUTH_DENY_STATUS must be 401 or 403, got %d", denyStatus)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", serviceName),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			SharedSecret:  getEnv("AUTH_SHARED_SECRET", "dev-secret"),
			TokenTTLHours: getEnvAsInt("AUTH_TOKEN_TTL_HOURS", 10),
			BcryptCost:    getEnvAsInt("AUTH_BCRYPT_COST", 12),
			DenyStatus:    denyStatus,
		},
		Identity: IdentityPeerConfig{
			BaseURL:        getEnv("IDENTITY_BASE_URL", "http://127.0.0.1:8081"),
			TimeoutSeconds: getEnvAsInt("IDENTITY_TIMEOUT_SECONDS", 4),
		},
		Queue: QueueConfig{
			NotificationKey: getEnv("NOTIFICATION_QUEUE_KEY", "notifications:outbox"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the credential validity window.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLHours <= 0 {
		return 10 * time.Hour
	}
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// Timeout returns the peer call timeout.
func (i IdentityPeerConfig) Timeout() time.Duration {
	if i.TimeoutSeconds <= 0 {
		return 4 * time.Second
	}
	return time.Duration(i.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
