package dbconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSNFromFields(t *testing.T) {
	cfg := Config{
		Host: "db", Port: "5433", User: "auction", Password: "p@ss/word",
		Database: "auctioneer", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://auction:p%40ss%2Fword@db:5433/auctioneer?sslmode=disable", cfg.DSN())
}

func TestDSNPrefersExplicitURL(t *testing.T) {
	cfg := Config{
		URL:  "postgres://u:p@elsewhere:5432/other",
		Host: "ignored", Port: "5432",
	}
	assert.Equal(t, "postgres://u:p@elsewhere:5432/other", cfg.DSN())
}
