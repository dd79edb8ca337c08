// Package config loads the service configuration from the environment,
// with an optional .env file for development.
package config

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/kdvornichenko/birthday/internal/logging"
)

// Config holds the runtime settings. Telegram credentials are optional:
// without them the service still runs and every submission fails with a
// diagnostic naming the missing setting.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// Lang selects the embedded questionnaire language.
	Lang string

	// Telegram delivery settings.
	BotToken string
	ChatID   string
	APIBase  string

	// RedisAddr enables the Redis session store when set; empty keeps
	// sessions in memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// SessionTTL expires idle sessions in the Redis store. Zero keeps
	// them until deleted.
	SessionTTL time.Duration

	// EncryptionKey enables at-rest encryption of stored sessions when
	// set. Must decode to 32 bytes (AES-256).
	EncryptionKey []byte

	LogLevel slog.Level
}

// Load reads the configuration from the environment. A .env file in the
// working directory is merged in first when present; a missing file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:          envOr("INVITE_ADDR", ":8080"),
		Lang:          os.Getenv("INVITE_LANG"),
		BotToken:      os.Getenv("INVITE_BOT_TOKEN"),
		ChatID:        os.Getenv("INVITE_CHAT_ID"),
		APIBase:       os.Getenv("INVITE_API_BASE"),
		RedisAddr:     os.Getenv("INVITE_REDIS_ADDR"),
		RedisPassword: os.Getenv("INVITE_REDIS_PASSWORD"),
	}

	if v := os.Getenv("INVITE_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid INVITE_REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = db
	}

	if v := os.Getenv("INVITE_REDIS_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid INVITE_REDIS_TTL %q: %w", v, err)
		}
		cfg.SessionTTL = ttl
	}

	if v := os.Getenv("INVITE_ENCRYPTION_KEY"); v != "" {
		key, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid INVITE_ENCRYPTION_KEY: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("INVITE_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(key))
		}
		cfg.EncryptionKey = key
	}

	level, err := logging.ParseLevel(os.Getenv("INVITE_LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
