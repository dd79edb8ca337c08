package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliverSuccess(t *testing.T) {
	var got sendMessageRequest
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":42}}`))
	}))
	defer srv.Close()

	client := New(Config{
		BaseURL: srv.URL,
		Token:   "secret-token",
		ChatID:  "-100123",
	})

	err := client.Deliver(context.Background(), "Identity: Ada Lovelace")
	require.NoError(t, err)

	assert.Equal(t, "/botsecret-token/sendMessage", gotPath)
	assert.Equal(t, "-100123", got.ChatID)
	assert.Equal(t, "Identity: Ada Lovelace", got.Text)
	assert.Equal(t, "HTML", got.ParseMode)
}

func TestDeliverAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, Token: "t", ChatID: "wrong"})

	err := client.Deliver(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "chat not found")
}

func TestDeliverRejectedByAPIWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, Token: "t", ChatID: "c"})

	err := client.Deliver(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestDeliverMissingConfiguration(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		client := New(Config{ChatID: "c"})
		err := client.Deliver(context.Background(), "hi")
		require.ErrorIs(t, err, ErrNotConfigured)
		assert.Contains(t, err.Error(), "bot token")
	})

	t.Run("missing chat id", func(t *testing.T) {
		client := New(Config{Token: "t"})
		err := client.Deliver(context.Background(), "hi")
		require.ErrorIs(t, err, ErrNotConfigured)
		assert.Contains(t, err.Error(), "chat id")
	})
}

func TestDeliverUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(Config{BaseURL: srv.URL, Token: "t", ChatID: "c", Timeout: time.Second})

	err := client.Deliver(context.Background(), "hi")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}
