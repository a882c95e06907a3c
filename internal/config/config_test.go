package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, "http://localhost:8080", cfg.GetAppBaseURL())
	assert.Equal(t, devSessionSecret, cfg.GetSessionSecret())
	assert.Equal(t, StorageMemory, cfg.GetStorageBackend())
	assert.Equal(t, "uploads", cfg.GetStorageDir())
	assert.Equal(t, int64(10<<20), cfg.GetMaxUploadBytes())
	assert.Equal(t, 30*time.Minute, cfg.GetWizardTTL())
	assert.Equal(t, "text", cfg.GetLogFormat())
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.Equal(t, EmailLog, cfg.GetEmailProvider())
	assert.NotEmpty(t, cfg.GetEmailSender())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"APP_ENV":          "production",
		"SERVER_ADDR":      ":9000",
		"SESSION_SECRET":   "s3cret",
		"STORAGE_BACKEND":  "DISK",
		"STORAGE_DIR":      "/var/lib/onboard",
		"MAX_UPLOAD_BYTES": "2048",
		"WIZARD_TTL":       "5m",
		"LOG_FORMAT":       "json",
		"LOG_LEVEL":        "warn",
		"EMAIL_PROVIDER":   "Resend",
		"EMAIL_API_KEY":    "re_123",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ServerAddr)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, StorageDisk, cfg.StorageBackend)
	assert.Equal(t, "/var/lib/onboard", cfg.StorageDir)
	assert.Equal(t, int64(2048), cfg.MaxUploadBytes)
	assert.Equal(t, 5*time.Minute, cfg.WizardTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, EmailResend, cfg.EmailProvider)
	assert.Equal(t, "re_123", cfg.GetEmailAPIKey())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"negative upload limit":      {"MAX_UPLOAD_BYTES": "-1"},
		"non-numeric upload limit":   {"MAX_UPLOAD_BYTES": "lots"},
		"bad ttl":                    {"WIZARD_TTL": "forever"},
		"zero ttl":                   {"WIZARD_TTL": "0s"},
		"unknown backend":            {"STORAGE_BACKEND": "s3"},
		"missing secret outside dev": {"APP_ENV": "production"},
		"unknown email provider":     {"EMAIL_PROVIDER": "pigeon"},
		"resend without key":         {"EMAIL_PROVIDER": "resend"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envFrom(env))
			assert.Error(t, err)
		})
	}
}
