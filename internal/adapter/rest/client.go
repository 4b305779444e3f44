// Package rest implements the backend HTTP API consumed by the client.
// Expected failures come back as *domain.RequestError carrying the
// server-provided message; callers branch on the error instead of parsing
// responses themselves.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/the-devesta/khaaonow-delivery/internal/core/domain"
	"github.com/the-devesta/khaaonow-delivery/internal/core/port"
)

const rateLimitMessage = "Too many attempts. Please try again later."

// envelope is the uniform response shape every endpoint returns.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type Options struct {
	BaseURL      string
	Timeout      time.Duration
	RetryMax     int
	RetryBackoff time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   port.SessionStore
	log        *zap.Logger
	retryMax   int
	backoff    time.Duration
}

func NewClient(opts Options, sessions port.SessionStore, log *zap.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = time.Second
	}
	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
		sessions:   sessions,
		log:        log,
		retryMax:   opts.RetryMax,
		backoff:    opts.RetryBackoff,
	}
}

// get executes an idempotent request with exponential backoff on transport
// errors, 5xx and 429. Mutations go through do directly: a duplicate
// accept or status update is worse than a failed one.
func (c *Client) get(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			wait := c.backoff * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err := c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode >= 400 && reqErr.StatusCode < 500 && reqErr.StatusCode != http.StatusTooManyRequests {
			return err
		}
	}
	return fmt.Errorf("request failed after %d attempts: %w", c.retryMax+1, lastErr)
}

// do executes a single request and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token, err := c.sessions.Token(ctx); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// The stored token is no longer accepted; drop it.
		if clearErr := c.sessions.Clear(ctx); clearErr != nil {
			c.log.Error("clear invalid session token failed", zap.Error(clearErr))
		}
		return &domain.RequestError{StatusCode: resp.StatusCode, Message: "Session expired. Please log in again."}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &domain.RequestError{StatusCode: resp.StatusCode, Message: rateLimitMessage}
	case resp.StatusCode >= 400:
		var env envelope
		if err := json.Unmarshal(respBody, &env); err != nil || env.Message == "" {
			return &domain.RequestError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &domain.RequestError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		c.log.Error("malformed response body", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return &domain.RequestError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.log.Error("malformed response data", zap.String("path", path), zap.Error(err))
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
