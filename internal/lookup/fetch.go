package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JinojiLock/Airlines/internal/cache"
)

// retrySleep is swapped out in tests to avoid real backoff waits.
var retrySleep = func(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

const (
	maxAttempts    = 4
	retryBaseDelay = 500 * time.Millisecond
)

// get fetches rawURL with rate limiting, caching, and retry on 429 and
// 5xx responses. The backoff doubles each attempt.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	key := cache.Key(rawURL)
	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			return body, nil
		}
	}

	var lastErr error
	delay := retryBaseDelay
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := retrySleep(ctx, delay); err != nil {
				return nil, err
			}
			delay *= 2
		}

		if err := c.limiter.Wait(ctx, rawURL); err != nil {
			return nil, err
		}

		body, retryable, err := c.fetchOnce(ctx, rawURL)
		if err == nil {
			if c.cache != nil {
				_ = c.cache.Set(key, body, 0)
			}
			return body, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("giving up after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, rawURL string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// fall through to read
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	default:
		return nil, false, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}
	return data, false, nil
}
