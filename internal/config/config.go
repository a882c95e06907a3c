package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider exposes configuration values to the rest of the application.
// Handlers and modules depend on this interface rather than on Config so
// tests can substitute their own values.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetStorageBackend() string
	GetStorageDir() string
	GetMaxUploadBytes() int64
	GetWizardTTL() time.Duration
	GetLogFormat() string
	GetLogLevel() string
	GetEmailProvider() string
	GetEmailAPIKey() string
	GetEmailSender() string
}

// Storage backends.
const (
	StorageMemory = "memory"
	StorageDisk   = "disk"
)

// Email providers.
const (
	EmailLog    = "log"
	EmailResend = "resend"
)

// devSessionSecret is only accepted when APP_ENV is "development".
const devSessionSecret = "dev-only-session-secret-change-me"

// Config holds all configuration for the application.
type Config struct {
	Env            string
	ServerAddr     string
	AppBaseURL     string
	SessionSecret  string
	StorageBackend string
	StorageDir     string
	MaxUploadBytes int64
	WizardTTL      time.Duration
	LogFormat      string
	LogLevel       string
	EmailProvider  string
	EmailAPIKey    string
	EmailSender    string
}

// New loads configuration from a .env file, if present, and then from
// environment variables.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Env:            orDefault(getenv("APP_ENV"), "development"),
		ServerAddr:     orDefault(getenv("SERVER_ADDR"), ":8080"),
		AppBaseURL:     orDefault(getenv("APP_BASE_URL"), "http://localhost:8080"),
		SessionSecret:  getenv("SESSION_SECRET"),
		StorageBackend: strings.ToLower(orDefault(getenv("STORAGE_BACKEND"), StorageMemory)),
		StorageDir:     orDefault(getenv("STORAGE_DIR"), "uploads"),
		MaxUploadBytes: 10 << 20,
		WizardTTL:      30 * time.Minute,
		LogFormat:      orDefault(getenv("LOG_FORMAT"), "text"),
		LogLevel:       orDefault(getenv("LOG_LEVEL"), "debug"),
		EmailProvider:  strings.ToLower(orDefault(getenv("EMAIL_PROVIDER"), EmailLog)),
		EmailAPIKey:    getenv("EMAIL_API_KEY"),
		EmailSender:    orDefault(getenv("EMAIL_SENDER"), "SafeOnboard <onboarding@safeonboard.local>"),
	}

	if v := getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: MAX_UPLOAD_BYTES must be a positive integer, got %q", v)
		}
		cfg.MaxUploadBytes = n
	}
	if v := getenv("WIZARD_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: WIZARD_TTL must be a positive duration, got %q", v)
		}
		cfg.WizardTTL = d
	}

	switch cfg.StorageBackend {
	case StorageMemory, StorageDisk:
	default:
		return nil, fmt.Errorf("config: unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	switch cfg.EmailProvider {
	case EmailLog:
	case EmailResend:
		if cfg.EmailAPIKey == "" {
			return nil, fmt.Errorf("config: EMAIL_API_KEY is required when EMAIL_PROVIDER=%s", EmailResend)
		}
	default:
		return nil, fmt.Errorf("config: unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}

	if cfg.SessionSecret == "" {
		if cfg.Env != "development" {
			return nil, fmt.Errorf("config: SESSION_SECRET is required when APP_ENV=%s", cfg.Env)
		}
		cfg.SessionSecret = devSessionSecret
	}
	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (c *Config) GetServerAddr() string       { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string       { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string    { return c.SessionSecret }
func (c *Config) GetStorageBackend() string   { return c.StorageBackend }
func (c *Config) GetStorageDir() string       { return c.StorageDir }
func (c *Config) GetMaxUploadBytes() int64    { return c.MaxUploadBytes }
func (c *Config) GetWizardTTL() time.Duration { return c.WizardTTL }
func (c *Config) GetLogFormat() string        { return c.LogFormat }
func (c *Config) GetLogLevel() string         { return c.LogLevel }
func (c *Config) GetEmailProvider() string    { return c.EmailProvider }
func (c *Config) GetEmailAPIKey() string      { return c.EmailAPIKey }
func (c *Config) GetEmailSender() string      { return c.EmailSender }
