// Package config loads runtime settings from the environment (and .env
// files) and checks them up front.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	Driver          string // "pgx" or "sqlite"
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

type HTTP struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	StrictSecurity  bool
	CSRFSecure      bool
	CORSOrigins     []string // empty: no CORS headers
}

type RateLimit struct {
	RedisURL string // empty: in-process limiter
	RPS      float64
	Burst    int
}

type Config struct {
	Env       string
	LogLevel  string
	DB        DB
	HTTP      HTTP
	RateLimit RateLimit
}

func (c Config) Production() bool { return strings.EqualFold(c.Env, "production") }

// LoadDotenv reads .env.local then .env, never overriding variables that are
// already set. Missing files are ignored.
func LoadDotenv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env.local", ".env"}
	}
	for _, p := range paths {
		_ = godotenv.Load(p)
	}
}

// Load reads the environment. Fail-fast on bad config.
func Load() (Config, error) {
	var c Config
	var errs []error
	add := func(key string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	var err error

	c.Env = envString("APP_ENV", "development")
	c.LogLevel = envString("LOG_LEVEL", "info")

	c.DB.Driver = envString("DB_DRIVER", "pgx")
	if c.DB.Driver != "pgx" && c.DB.Driver != "sqlite" {
		add("DB_DRIVER", fmt.Errorf("must be pgx or sqlite, got %q", c.DB.Driver))
	}
	c.DB.URL = os.Getenv("DATABASE_URL")
	if c.DB.URL == "" {
		add("DATABASE_URL", errors.New("not set"))
	}
	c.DB.MaxOpenConns, err = envInt("DB_MAX_OPEN_CONNS", 10, 1)
	add("DB_MAX_OPEN_CONNS", err)
	c.DB.MaxIdleConns, err = envInt("DB_MAX_IDLE_CONNS", 10, 0)
	add("DB_MAX_IDLE_CONNS", err)
	c.DB.ConnMaxIdleTime, err = envDuration("DB_CONN_MAX_IDLE_TIME", "5m")
	add("DB_CONN_MAX_IDLE_TIME", err)
	c.DB.ConnMaxLifetime, err = envDuration("DB_CONN_MAX_LIFETIME", "30m")
	add("DB_CONN_MAX_LIFETIME", err)

	c.HTTP.Addr = envString("APP_ADDR", ":3000")
	c.HTTP.ReadTimeout, err = envDuration("HTTP_READ_TIMEOUT", "5s")
	add("HTTP_READ_TIMEOUT", err)
	c.HTTP.WriteTimeout, err = envDuration("HTTP_WRITE_TIMEOUT", "10s")
	add("HTTP_WRITE_TIMEOUT", err)
	c.HTTP.IdleTimeout, err = envDuration("HTTP_IDLE_TIMEOUT", "60s")
	add("HTTP_IDLE_TIMEOUT", err)
	c.HTTP.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", "20s")
	add("SHUTDOWN_TIMEOUT", err)
	maxBody, err := envInt("MAX_BODY_SIZE", 1<<20, 1)
	add("MAX_BODY_SIZE", err)
	c.HTTP.MaxBodyBytes = int64(maxBody)
	c.HTTP.StrictSecurity = os.Getenv("STRICT_SECURITY") == "1"
	c.HTTP.CSRFSecure, err = envBool("CSRF_COOKIE_SECURE", c.Production())
	add("CSRF_COOKIE_SECURE", err)
	c.HTTP.CORSOrigins = envList("CORS_ALLOWED_ORIGINS")

	c.RateLimit.RedisURL = os.Getenv("REDIS_URL")
	c.RateLimit.RPS, err = envFloat("RATE_LIMIT_RPS", 5)
	add("RATE_LIMIT_RPS", err)
	c.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", 20, 1)
	add("RATE_LIMIT_BURST", err)

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return c, nil
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func (c Config) HardeningWarnings() []string {
	var warns []string

	if c.DB.MaxIdleConns > c.DB.MaxOpenConns {
		warns = append(warns, fmt.Sprintf("DB_MAX_IDLE_CONNS=%d exceeds DB_MAX_OPEN_CONNS=%d; extra idle conns are closed", c.DB.MaxIdleConns, c.DB.MaxOpenConns))
	}

	// Production-specific nudges
	if c.Production() {
		if c.DB.Driver == "sqlite" {
			warns = append(warns, "DB_DRIVER=sqlite in production; prefer pgx")
		}
		if strings.HasPrefix(c.RateLimit.RedisURL, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if c.RateLimit.RedisURL == "" {
			warns = append(warns, "REDIS_URL not set; rate limits are per-process")
		}
		if slices.Contains(c.HTTP.CORSOrigins, "*") {
			warns = append(warns, "CORS_ALLOWED_ORIGINS contains *; any site can read JSON responses")
		}
		if !c.HTTP.CSRFSecure {
			warns = append(warns, "CSRF_COOKIE_SECURE=false; the CSRF cookie will be sent over plain HTTP")
		}
	}
	return warns
}

// --- helpers ---

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envList splits a comma-separated variable, dropping empty entries.
func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDuration(key, def string) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		s = def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func envInt(key string, def, min int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("not a number: %v", err)
	}
	if n < min {
		return 0, fmt.Errorf("must be >= %d", min)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("must be a positive number, got %q", v)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("not a boolean: %q", v)
	}
	return b, nil
}
