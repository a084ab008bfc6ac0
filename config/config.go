package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Media    MediaConfig
	Mail     MailConfig
	Notify   NotifyConfig
	CORS     CORSConfig
}

// AppConfig holds process-level settings
type AppConfig struct {
	Port      string `envconfig:"PORT" default:"8080"`
	GoEnv     string `envconfig:"GO_ENV" default:"development"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// DatabaseConfig holds the connection string and pool sizing
type DatabaseConfig struct {
	URL             string        `envconfig:"DATABASE_URL"`
	MaxPoolSize     int           `envconfig:"DB_MAX_POOL_SIZE" default:"10"`
	MinPoolSize     int           `envconfig:"DB_MIN_POOL_SIZE" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

// AuthConfig holds the identity provider settings used to protect admin routes
type AuthConfig struct {
	Auth0Domain   string `envconfig:"AUTH0_DOMAIN"`
	Auth0Audience string `envconfig:"AUTH0_AUDIENCE"`
}

// Enabled reports whether admin routes should require a validated JWT
func (a AuthConfig) Enabled() bool {
	return a.Auth0Domain != ""
}

// MediaConfig holds the hosted media bucket settings.
// CloudName is the bucket, APIKey/APISecret are the access credentials and
// UploadPreset is the folder that pre-authorized (presigned) uploads land in.
type MediaConfig struct {
	CloudName     string `envconfig:"MEDIA_CLOUD_NAME"`
	Region        string `envconfig:"MEDIA_REGION" default:"us-east-1"`
	APIKey        string `envconfig:"MEDIA_API_KEY"`
	APISecret     string `envconfig:"MEDIA_API_SECRET"`
	UploadPreset  string `envconfig:"MEDIA_UPLOAD_PRESET" default:"cloth-designs"`
	PublicBaseURL string `envconfig:"MEDIA_PUBLIC_BASE_URL"`
	Endpoint      string `envconfig:"MEDIA_ENDPOINT"`
}

// MailConfig holds the SMTP relay settings
type MailConfig struct {
	SMTPHost       string        `envconfig:"SMTP_HOST" default:"smtp.zoho.com"`
	SMTPPort       int           `envconfig:"SMTP_PORT" default:"587"`
	SenderEmail    string        `envconfig:"MAIL_SENDER_EMAIL"`
	AppPassword    string        `envconfig:"MAIL_APP_PASSWORD"`
	SenderName     string        `envconfig:"MAIL_SENDER_NAME" default:"LASUMBA Games"`
	AdminEmail     string        `envconfig:"ADMIN_EMAIL"`
	MaxRetries     int           `envconfig:"MAIL_MAX_RETRIES" default:"3"`
	RetryBaseDelay time.Duration `envconfig:"MAIL_RETRY_BASE_DELAY" default:"1s"`
	RetryMaxDelay  time.Duration `envconfig:"MAIL_RETRY_MAX_DELAY" default:"10s"`
}

// Configured reports whether relay credentials are present
func (m MailConfig) Configured() bool {
	return m.SenderEmail != "" && m.AppPassword != ""
}

// NotifyConfig tunes the notification queue
type NotifyConfig struct {
	FanoutDelay time.Duration `envconfig:"NOTIFY_FANOUT_DELAY" default:"500ms"`
	QueueSize   int           `envconfig:"NOTIFY_QUEUE_SIZE" default:"100"`
}

// CORSConfig lists the browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// In production variables are set directly, so missing files are fine
		if err := godotenv.Load(); err != nil {
			log.Debug().Msg("No .env file found, using system environment variables")
		}
	} else {
		log.Info().Str("file", envFile).Msg("Loaded configuration file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.CORS.AllowedOrigins = trimAll(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Database.MaxPoolSize < 1 {
		return fmt.Errorf("DB_MAX_POOL_SIZE must be at least 1")
	}
	if c.Database.MinPoolSize > c.Database.MaxPoolSize {
		return fmt.Errorf("DB_MIN_POOL_SIZE cannot exceed DB_MAX_POOL_SIZE")
	}
	if c.Mail.MaxRetries < 0 {
		return fmt.Errorf("MAIL_MAX_RETRIES cannot be negative")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.App.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.GoEnv == "development"
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
