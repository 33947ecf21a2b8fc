// Package webhook delivers finished recommendations to a configured
// callback URL, signed with a shared key.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	URL        string        `split_words:"true" required:"true"`
	SigningKey string        `split_words:"true" required:"true"`
	Timeout    time.Duration `split_words:"true" default:"10s"`
}

type Client struct {
	url        string
	signingKey []byte
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	target := strings.TrimSpace(cfg.URL)
	if target == "" {
		return nil, errors.New("webhook url is required")
	}
	if _, err := url.ParseRequestURI(target); err != nil {
		return nil, err
	}

	key := strings.TrimSpace(cfg.SigningKey)
	if key == "" {
		return nil, errors.New("webhook signing key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		url:        target,
		signingKey: []byte(key),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

type Event struct {
	SessionID      string    `json:"session_id"`
	Recommendation string    `json:"recommendation"`
	ProducedAt     time.Time `json:"produced_at"`
}

// Publish POSTs the event as JSON with an X-Signature header carrying the
// hex HMAC-SHA256 of the body.
func (c *Client) Publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal webhook event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", c.sign(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook http status=%d", resp.StatusCode)
	}
	return nil
}

func (c *Client) sign(body []byte) string {
	mac := hmac.New(sha256.New, c.signingKey)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
