package constants

import "time"

type ContextKey string

const TraceIDKey ContextKey = "trace_id"

const (
	NameMaxLength     = 50
	EmailMaxLength    = 255
	PasswordMinLength = 8
	PasswordMaxLength = 72

	BcryptCost = 12

	DefaultMaxRequestSize = 1 << 20

	SessionCookieName      = "SESSION"
	DefaultSessionTTL      = 30 * time.Minute
	SessionCleanupInterval = 1 * time.Minute

	MenuPriceMin = 100
	MenuPriceMax = 1_000_000

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	RateLimitCleanupInterval = 10 * time.Minute

	RateLimitLoginRequestsPerSecond   = 1.0
	RateLimitLoginBurst               = 5
	RateLimitSignupRequestsPerSecond  = 0.5
	RateLimitSignupBurst              = 3
	RateLimitGeneralRequestsPerSecond = 10.0
	RateLimitGeneralBurst             = 20
)
