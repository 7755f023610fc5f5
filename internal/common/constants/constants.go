package constants

import "time"

const (
	NameMaxLength      = 100
	EmailMaxLength     = 254
	PasswordMinLength  = 8
	PasswordMaxLength  = 72
	TitleMaxLength     = 500
	JWTSecretMinLength = 32

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerWriteGrace        = 5 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "3000"
	DefaultRequestTimeout = 5 * time.Second
	DefaultAccessTokenTTL = 7 * 24 * time.Hour

	DefaultStorePath  = "database/db.json"
	DefaultSQLitePath = "database/stride.db"

	DefaultReminderHour   = 8
	DefaultReminderWindow = 24 * time.Hour
	DefaultSMTPHost       = "smtp.gmail.com"
	DefaultSMTPPort       = 587
	SMTPSendTimeout       = 30 * time.Second

	DefaultCircuitBreakerThreshold = 5
	DefaultCircuitBreakerReset     = 10 * time.Minute

	RateLimitCleanupInterval = 10 * time.Minute

	RateLimitLoginRequestsPerSecond    = 0.5
	RateLimitLoginBurst                = 5
	RateLimitRegisterRequestsPerSecond = 0.2
	RateLimitRegisterBurst             = 3
	RateLimitGeneralRequestsPerSecond  = 20
	RateLimitGeneralBurst              = 40

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
