package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingCredentialsFailFast(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RESEND_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/app")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://app:secret@db:5432/app", cfg.Database.DSN())
	assert.Equal(t, "re_test_key", cfg.Email.ResendAPIKey)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Defaults survive alongside overrides.
	assert.Equal(t, "localhost:7233", cfg.Temporal.HostPort)
	assert.Equal(t, "resend", cfg.Email.Provider)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_SMTPProviderRequiresHost(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/app")
	t.Setenv("EMAIL_PROVIDER", "smtp")
	t.Setenv("SMTP_HOST", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST")
}

func TestLoad_SMTPProviderDoesNotRequireResendKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/app")
	t.Setenv("EMAIL_PROVIDER", "smtp")
	t.Setenv("SMTP_HOST", "mail.internal")
	t.Setenv("SMTP_USERNAME", "mailer")
	t.Setenv("SMTP_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "smtp", cfg.Email.Provider)
	assert.Equal(t, "mail.internal", cfg.Email.SMTP.Host)
	assert.Equal(t, 587, cfg.Email.SMTP.Port)
}

func TestLoad_UnsupportedProvider(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/app")
	t.Setenv("EMAIL_PROVIDER", "carrier-pigeon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported email provider")
}
