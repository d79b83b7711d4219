package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSecretKey = "dev-secret"

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Mail      MailConfig
	Directory DirectoryConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	BaseURL               string
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

// AuthConfig defines authentication and signed-token parameters.
type AuthConfig struct {
	SecretKey                   string
	AccessTokenTTLMinutes       int
	BcryptCost                  int
	ActivationTimeoutSeconds    int
	PasswordResetTimeoutSeconds int
	ResetRequiresActive         bool
}

// MailConfig holds outbound SMTP settings. An empty host selects the logging mailer.
type MailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	From         string
}

// DirectoryConfig tunes the profile listing views.
type DirectoryConfig struct {
	PageSize        int
	MostLikedLimit  int
	CacheTTLSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "freelance-directory"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			BaseURL:               strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),
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
			SecretKey:                   getEnv("AUTH_SECRET_KEY", devSecretKey),
			AccessTokenTTLMinutes:       getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:                  getEnvAsInt("AUTH_BCRYPT_COST", 12),
			ActivationTimeoutSeconds:    getEnvAsInt("ACTIVATION_TIMEOUT_SECONDS", 60*60*24),
			PasswordResetTimeoutSeconds: getEnvAsInt("PASSWORD_RESET_TIMEOUT_SECONDS", 60*60*24*3),
			ResetRequiresActive:         getEnvAsBool("AUTH_RESET_REQUIRES_ACTIVE", false),
		},
		Mail: MailConfig{
			SMTPHost:     os.Getenv("MAIL_SMTP_HOST"),
			SMTPPort:     getEnvAsInt("MAIL_SMTP_PORT", 587),
			SMTPUser:     os.Getenv("MAIL_SMTP_USER"),
			SMTPPassword: os.Getenv("MAIL_SMTP_PASSWORD"),
			From:         getEnv("MAIL_FROM", "freelance <noreply@example.com>"),
		},
		Directory: DirectoryConfig{
			PageSize:        getEnvAsInt("DIRECTORY_PAGE_SIZE", 8),
			MostLikedLimit:  getEnvAsInt("DIRECTORY_MOST_LIKED_LIMIT", 6),
			CacheTTLSeconds: getEnvAsInt("DIRECTORY_CACHE_TTL_SECONDS", 300),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.App.Env == "production" && c.Auth.SecretKey == devSecretKey {
		return errors.New("AUTH_SECRET_KEY must be set in production")
	}
	if c.Auth.ActivationTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid ACTIVATION_TIMEOUT_SECONDS: %d", c.Auth.ActivationTimeoutSeconds)
	}
	if c.Auth.PasswordResetTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid PASSWORD_RESET_TIMEOUT_SECONDS: %d", c.Auth.PasswordResetTimeoutSeconds)
	}
	return nil
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

// ActivationTimeout is the max age of an activation token.
func (a AuthConfig) ActivationTimeout() time.Duration {
	return time.Duration(a.ActivationTimeoutSeconds) * time.Second
}

// PasswordResetTimeout is the max age of a password reset token.
func (a AuthConfig) PasswordResetTimeout() time.Duration {
	return time.Duration(a.PasswordResetTimeoutSeconds) * time.Second
}

// CacheTTL returns how long listing projections stay cached.
func (d DirectoryConfig) CacheTTL() time.Duration {
	if d.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(d.CacheTTLSeconds) * time.Second
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
