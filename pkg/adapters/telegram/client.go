// Package telegram implements ports.Courier over the Telegram Bot API.
// One submission is one sendMessage call: no retries, no queueing, and no
// cancellation once the request is on the wire.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// ErrNotConfigured marks a delivery that failed because the bot token or
// chat ID is missing. It is a regular failed outcome, never a crash: the
// service runs fine without credentials, every submission just fails with
// a diagnostic naming what is absent.
var ErrNotConfigured = errors.New("telegram is not configured")

// Config holds the courier settings.
type Config struct {
	// BaseURL overrides DefaultBaseURL (tests, proxies).
	BaseURL string
	// Token is the bot token; ChatID is the destination chat.
	Token  string
	ChatID string
	// Timeout bounds the whole call. Zero keeps the transport default.
	Timeout time.Duration
}

// Client delivers composed messages to one Telegram chat.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a courier with the given configuration.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// sendMessageRequest is the JSON body of a sendMessage call. The message
// text is already sanitized; parse_mode stays HTML so the chat renders
// the small amount of markup the templates allow.
type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// apiResponse is the relevant slice of the Bot API response envelope.
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// Deliver sends one composed message. The returned error text doubles as
// the user-visible diagnostic: it concatenates the transport problem and
// the structured description the endpoint returned, like the original
// error dialog did.
func (c *Client) Deliver(ctx context.Context, message string) error {
	if c.cfg.Token == "" {
		return fmt.Errorf("%w: missing bot token", ErrNotConfigured)
	}
	if c.cfg.ChatID == "" {
		return fmt.Errorf("%w: missing chat id", ErrNotConfigured)
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.cfg.ChatID,
		Text:      message,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("telegram: encoding message: %w", err)
	}

	url := c.cfg.BaseURL + "/bot" + c.cfg.Token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: sending message: %w", err)
	}
	defer resp.Body.Close()

	var api apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&api); err != nil {
		api = apiResponse{}
	}

	if resp.StatusCode != http.StatusOK || !api.OK {
		if api.Description != "" {
			return fmt.Errorf("telegram: sendMessage failed: %s: %s", resp.Status, api.Description)
		}
		return fmt.Errorf("telegram: sendMessage failed: %s", resp.Status)
	}

	return nil
}
