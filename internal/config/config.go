package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Upstream   UpstreamConfig
	Geocoder   GeocoderConfig
	Attendance AttendanceConfig
	Storage    StorageConfig
	Redis      RedisConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int      `env:"APP_PORT" envDefault:"8080"`
	Env         string   `env:"APP_ENV" envDefault:"development"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	FrontendURL string   `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

type DatabaseConfig struct {
	Host           string `env:"DB_HOST" envDefault:"localhost"`
	Port           int    `env:"DB_PORT" envDefault:"5432"`
	User           string `env:"DB_USER" envDefault:"postgres"`
	Password       string `env:"DB_PASSWORD"`
	Name           string `env:"DB_NAME" envDefault:"hrms_portal"`
	SSLMode        string `env:"DB_SSL_MODE" envDefault:"disable"`
	MigrateOnStart bool   `env:"DB_MIGRATE_ON_START" envDefault:"true"`
}

// JWTConfig holds portal session token configuration
type JWTConfig struct {
	Secret            string        `env:"JWT_SECRET_KEY"`
	SessionExpiration time.Duration `env:"JWT_SESSION_EXPIRATION_TIME" envDefault:"12h"`
	// TokenSealKey seals upstream access tokens at rest. Falls back to Secret.
	TokenSealKey string `env:"TOKEN_SEAL_KEY"`
	SecureCookie bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// UpstreamConfig points at the HRMS REST API the portal fronts.
type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`
}

type GeocoderConfig struct {
	Enabled   bool          `env:"GEOCODER_ENABLED" envDefault:"true"`
	BaseURL   string        `env:"GEOCODER_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	UserAgent string        `env:"GEOCODER_USER_AGENT" envDefault:"hrms-portal/1.0"`
	Timeout   time.Duration `env:"GEOCODER_TIMEOUT" envDefault:"5s"`
}

type AttendanceConfig struct {
	RadiusKm      float64 `env:"ATTENDANCE_RADIUS_KM" envDefault:"5"`
	OfficesFile   string  `env:"ATTENDANCE_OFFICES_FILE"`
	RequireOffice bool    `env:"ATTENDANCE_REQUIRE_OFFICE" envDefault:"false"`
}

type StorageConfig struct {
	Type     string `env:"STORAGE_TYPE" envDefault:"local"`
	BasePath string `env:"STORAGE_BASE_PATH" envDefault:"./uploads"`
	BaseURL  string `env:"STORAGE_BASE_URL" envDefault:"http://localhost:8080/api/v1/uploads"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"attendance-proofs"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
}

// RedisConfig is optional. An empty Addr selects the in-memory role cache.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		slog.Debug("No .env file found, using process environment")
	}

	return Parse(env.Options{})
}

// Parse reads the configuration from the environment described by opts.
func Parse(opts env.Options) (*Config, error) {
	config := &Config{}
	if err := env.ParseWithOptions(config, opts); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if config.JWT.TokenSealKey == "" {
		config.JWT.TokenSealKey = config.JWT.Secret
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if c.Attendance.RadiusKm <= 0 {
		return fmt.Errorf("ATTENDANCE_RADIUS_KM must be positive")
	}
	switch c.Storage.Type {
	case "local":
	case "minio":
		if c.Storage.MinioEndpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required when STORAGE_TYPE=minio")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
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

// IsProduction reports whether the portal runs with production settings.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
