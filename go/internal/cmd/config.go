package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kpatel744/auctioneer/go/internal/auction/bidengine"
)

// AppConfig carries process-level settings read from the environment.
type AppConfig struct {
	Port         string
	StoreBackend string // "postgres" or "memory"
	NatsURL      string // empty runs without JetStream (log publisher, no gateway consumer)
	RedisAddr    string // empty keeps device sessions in memory
	LadderPath   string // optional YAML override for the bid increment ladder

	// RoomRetention is how long ended rooms are kept before the registry
	// purges them. Zero disables purging.
	RoomRetention time.Duration
}

func loadAppConfig() AppConfig {
	return AppConfig{
		Port:          getEnv("PORT", "8080"),
		StoreBackend:  getEnv("STORE_BACKEND", "postgres"),
		NatsURL:       os.Getenv("NATS_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		LadderPath:    os.Getenv("BID_LADDER_PATH"),
		RoomRetention: getEnvAsDuration("ROOM_RETENTION", 0),
	}
}

// loadLadder reads the increment schedule from a YAML file, falling back to
// the default schedule when no path is configured.
func loadLadder(path string) (bidengine.Ladder, error) {
	if path == "" {
		return bidengine.DefaultLadder(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return bidengine.Ladder{}, fmt.Errorf("failed to read ladder file: %w", err)
	}

	var ladder bidengine.Ladder
	if err := yaml.Unmarshal(data, &ladder); err != nil {
		return bidengine.Ladder{}, fmt.Errorf("failed to parse ladder file: %w", err)
	}
	if err := ladder.Validate(); err != nil {
		return bidengine.Ladder{}, fmt.Errorf("invalid ladder: %w", err)
	}
	return ladder, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
