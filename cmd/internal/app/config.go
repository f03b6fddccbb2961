package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr string
	LogLevel string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// If true, pending schema migrations are applied on startup.
	MigrateOnStart bool

	// If true:
	// - /readyz returns 503 unless DB is configured and reachable.
	ReadinessRequireDB bool

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	CORSMaxAgeSeconds    int
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr: EnvString("HABIT_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel: EnvString("HABIT_LOG_LEVEL", "info"),

		ReadHeaderTimeout: EnvDuration("HABIT_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("HABIT_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("HABIT_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("HABIT_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("HABIT_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("HABIT_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("HABIT_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("HABIT_DB_MIN_CONNS", 0),

		MigrateOnStart: EnvBool("HABIT_DB_MIGRATE", true),

		ReadinessRequireDB: EnvBool("HABIT_READINESS_REQUIRE_DB", false),

		CORSAllowedOrigins:   EnvStrings("HABIT_CORS_ALLOWED_ORIGINS", nil),
		CORSAllowCredentials: EnvBool("HABIT_CORS_ALLOW_CREDENTIALS", false),
		CORSMaxAgeSeconds:    EnvInt("HABIT_CORS_MAX_AGE_SECONDS", 600),
	}
}
