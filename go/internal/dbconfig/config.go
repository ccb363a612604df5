// Package dbconfig resolves Postgres connection settings shared by the
// server and the seeding tools.
package dbconfig

import (
	"net"
	"net/url"
	"os"
)

// Config holds Postgres connection settings. URL, when set, overrides the
// individual fields.
type Config struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// NewConfigFromEnv reads DATABASE_URL, falling back to DB_* variables with
// defaults.
func NewConfigFromEnv() Config {
	return Config{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     envOr("DB_HOST", "localhost"),
		Port:     envOr("DB_PORT", "5432"),
		User:     envOr("DB_USER", "postgres"),
		Password: envOr("DB_PASSWORD", "postgres"),
		Database: envOr("DB_NAME", "auctioneer"),
		SSLMode:  envOr("DB_SSLMODE", "disable"),
	}
}

// DSN returns the Postgres connection URL. Credentials are URL-escaped so
// passwords with reserved characters survive.
func (c Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
