package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/AlibekovAA/stride/internal/common/constants"
)

var (
	ErrMissingRequiredEnv  = errors.New("missing required environment variable")
	ErrInvalidJWTSecret    = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrInvalidStoreDriver  = errors.New("unsupported STORE_DRIVER")
	ErrInvalidTimezone     = errors.New("invalid STREAK_TIMEZONE")
	ErrInvalidReminderHour = errors.New("REMINDER_HOUR must be between 0 and 23")
)

const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

type StoreConfig struct {
	Driver      string
	Path        string
	DatabaseURL string
	SQLitePath  string
}

type ReminderConfig struct {
	Enabled bool
	Hour    int
	Window  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether credentials are present. Without them reminders
// are only logged.
func (c SMTPConfig) Configured() bool {
	return c.Username != "" && c.Password != "" && c.Host != ""
}

type Config struct {
	HTTPPort           string
	JWTSecret          string
	AccessTokenTTL     time.Duration
	RequestTimeout     time.Duration
	Store              StoreConfig
	Location           *time.Location
	Reminder           ReminderConfig
	SMTP               SMTPConfig
	CORSAllowedOrigins []string
	LogDir             string
	LogLevel           string
}

// LoadDotEnv reads the first .env file found among paths. Real environment
// variables win over file entries.
func LoadDotEnv(paths ...string) string {
	if len(paths) == 0 {
		paths = []string{".env", "../.env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			return p
		}
	}
	return ""
}

func Load() (Config, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return Config{}, err
	}

	store, err := LoadStoreConfig()
	if err != nil {
		return Config{}, err
	}

	loc, err := LoadLocation()
	if err != nil {
		return Config{}, err
	}

	reminder, err := loadReminderConfig()
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:           getEnv("HTTP_PORT", getEnv("PORT", constants.DefaultHTTPPort)),
		JWTSecret:          jwtSecret,
		AccessTokenTTL:     getDurationEnv("ACCESS_TOKEN_TTL", constants.DefaultAccessTokenTTL),
		RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		Store:              store,
		Location:           loc,
		Reminder:           reminder,
		SMTP:               loadSMTPConfig(),
		CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogDir:             getEnv("LOG_DIR", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}, nil
}

func LoadStoreConfig() (StoreConfig, error) {
	cfg := StoreConfig{
		Driver:     strings.ToLower(getEnv("STORE_DRIVER", StoreDriverFile)),
		Path:       getEnv("STORE_PATH", constants.DefaultStorePath),
		SQLitePath: getEnv("SQLITE_PATH", constants.DefaultSQLitePath),
	}

	switch cfg.Driver {
	case StoreDriverFile, StoreDriverSQLite:
	case StoreDriverPostgres:
		url, err := mustEnv("DATABASE_URL")
		if err != nil {
			return StoreConfig{}, err
		}
		cfg.DatabaseURL = url
	default:
		return StoreConfig{}, fmt.Errorf("%w: %q", ErrInvalidStoreDriver, cfg.Driver)
	}

	return cfg, nil
}

func LoadLocation() (*time.Location, error) {
	name := getEnv("STREAK_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, name, err)
	}
	return loc, nil
}

func loadReminderConfig() (ReminderConfig, error) {
	hour := getIntEnv("REMINDER_HOUR", constants.DefaultReminderHour)
	if hour < 0 || hour > 23 {
		return ReminderConfig{}, fmt.Errorf("%w: got %d", ErrInvalidReminderHour, hour)
	}
	return ReminderConfig{
		Enabled: getBoolEnv("REMINDER_ENABLED", true),
		Hour:    hour,
		Window:  getDurationEnv("REMINDER_WINDOW", constants.DefaultReminderWindow),
	}, nil
}

func loadSMTPConfig() SMTPConfig {
	username := getEnv("SMTP_USERNAME", getEnv("EMAIL_USER", ""))
	return SMTPConfig{
		Host:     getEnv("SMTP_HOST", getEnv("EMAIL_HOST", constants.DefaultSMTPHost)),
		Port:     getIntEnv("SMTP_PORT", getIntEnv("EMAIL_PORT", constants.DefaultSMTPPort)),
		Username: username,
		Password: getEnv("SMTP_PASSWORD", getEnv("EMAIL_PASS", "")),
		From:     getEnv("EMAIL_FROM", username),
	}
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getListEnv(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
