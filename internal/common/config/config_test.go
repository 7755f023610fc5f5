package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingRequiredEnv) {
		t.Errorf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	if !errors.Is(err, ErrInvalidJWTSecret) {
		t.Errorf("expected ErrInvalidJWTSecret, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	unsetenv(t, "STORE_DRIVER", "STREAK_TIMEZONE", "REMINDER_HOUR", "REMINDER_WINDOW", "REMINDER_ENABLED", "ACCESS_TOKEN_TTL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Store.Driver != StoreDriverFile {
		t.Errorf("expected file driver, got %q", cfg.Store.Driver)
	}
	if cfg.AccessTokenTTL != 7*24*time.Hour {
		t.Errorf("expected 7d token ttl, got %v", cfg.AccessTokenTTL)
	}
	if cfg.Reminder.Hour != 8 || cfg.Reminder.Window != 24*time.Hour || !cfg.Reminder.Enabled {
		t.Errorf("unexpected reminder defaults: %+v", cfg.Reminder)
	}
	if cfg.Location.String() != "UTC" {
		t.Errorf("expected UTC, got %s", cfg.Location)
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingRequiredEnv) {
		t.Errorf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	if !errors.Is(err, ErrInvalidStoreDriver) {
		t.Errorf("expected ErrInvalidStoreDriver, got %v", err)
	}
}

func TestLoad_InvalidTimezoneAndHour(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("STREAK_TIMEZONE", "Mars/Olympus")

	if _, err := Load(); !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("expected ErrInvalidTimezone, got %v", err)
	}

	t.Setenv("STREAK_TIMEZONE", "UTC")
	t.Setenv("REMINDER_HOUR", "24")
	if _, err := Load(); !errors.Is(err, ErrInvalidReminderHour) {
		t.Errorf("expected ErrInvalidReminderHour, got %v", err)
	}
}

func TestLoadSMTPConfig_LegacyKeys(t *testing.T) {
	unsetenv(t, "SMTP_USERNAME", "SMTP_PASSWORD", "EMAIL_FROM")
	t.Setenv("EMAIL_USER", "stride@example.com")
	t.Setenv("EMAIL_PASS", "secret")

	cfg := loadSMTPConfig()
	if !cfg.Configured() {
		t.Fatal("expected smtp to be configured from EMAIL_* keys")
	}
	if cfg.From != "stride@example.com" {
		t.Errorf("expected From to default to username, got %q", cfg.From)
	}
}

func TestGetListEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	got := getListEnv("CORS_ALLOWED_ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("unexpected list %v", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("STRIDE_DOTENV_PROBE=loaded\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("STRIDE_DOTENV_PROBE") })

	if got := LoadDotEnv(filepath.Join(dir, "missing.env"), path); got != path {
		t.Errorf("expected %s to be loaded, got %q", path, got)
	}
	if os.Getenv("STRIDE_DOTENV_PROBE") != "loaded" {
		t.Error("expected variable from .env file")
	}
}
