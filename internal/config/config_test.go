package config

import (
	"encoding/base64"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.BotToken)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("INVITE_ADDR", ":9090")
	t.Setenv("INVITE_LANG", "en")
	t.Setenv("INVITE_BOT_TOKEN", "token")
	t.Setenv("INVITE_CHAT_ID", "-100")
	t.Setenv("INVITE_REDIS_ADDR", "localhost:6379")
	t.Setenv("INVITE_REDIS_DB", "2")
	t.Setenv("INVITE_REDIS_TTL", "48h")
	t.Setenv("INVITE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, "token", cfg.BotToken)
	assert.Equal(t, "-100", cfg.ChatID)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 48*time.Hour, cfg.SessionTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadEncryptionKey(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	t.Setenv("INVITE_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(key))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, key, cfg.EncryptionKey)
}

func TestLoadRejectsShortEncryptionKey(t *testing.T) {
	t.Setenv("INVITE_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString([]byte("short")))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("INVITE_REDIS_DB", "two")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("INVITE_REDIS_TTL", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("INVITE_LOG_LEVEL", "loud")
	_, err := Load()
	assert.Error(t, err)
}
