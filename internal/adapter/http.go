package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/stegavault/stegavault/internal/logger"
)

// ErrResponseTooLarge is returned when a response body exceeds the caller's limit
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// StatusError is returned for non-OK responses that are not retried
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// GetBytes performs a GET request and returns the body and its content type.
	// Bodies larger than maxBytes fail with ErrResponseTooLarge.
	GetBytes(ctx context.Context, url string, maxBytes int64) ([]byte, string, error)
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client          *http.Client
	maxRetryElapsed time.Duration
}

// NewHTTPClient creates a new real HTTP client.
// Rate limited and 5xx responses are retried with backoff for at most maxRetryElapsed.
func NewHTTPClient(timeout, maxRetryElapsed time.Duration) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		maxRetryElapsed: maxRetryElapsed,
	}
}

// GetBytes performs a GET request with exponential backoff retry for 429 and 5xx responses
func (c *RealHTTPClient) GetBytes(ctx context.Context, url string, maxBytes int64) ([]byte, string, error) {
	var (
		body        []byte
		contentType string
	)

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		resp, err := c.client.Do(req)
		if err != nil {
			// Network errors are retryable
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.WarnCtx(ctx, "failed to close response body", zap.Error(err), zap.String("url", url))
			}
		}()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			logger.WarnCtx(ctx, "retryable response, retrying with backoff",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode))
			return fmt.Errorf("retryable status code %d", resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return backoff.Permanent(&StatusError{StatusCode: resp.StatusCode, Body: string(snippet)})
		}

		if resp.ContentLength > maxBytes {
			return backoff.Permanent(ErrResponseTooLarge)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}
		if int64(len(data)) > maxBytes {
			return backoff.Permanent(ErrResponseTooLarge)
		}

		body = data
		contentType = resp.Header.Get("Content-Type")
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = c.maxRetryElapsed
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, "", fmt.Errorf("request failed after retries: %w", err)
	}

	return body, contentType, nil
}
