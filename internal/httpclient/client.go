// Package httpclient issues the outbound GET requests made on behalf of the
// dashboard panels.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps how much of an upstream body is read.
const maxBodyBytes = 4 << 20

// ErrMalformed is returned when an upstream body cannot be decoded.
var ErrMalformed = errors.New("malformed response")

// secretParams are query parameters whose values never leave the client
// in logs or errors.
var secretParams = []string{"api_key", "apikey", "key", "token", "access_token"}

// Redact replaces the values of credential query parameters in rawURL.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.RawQuery == "" {
		return rawURL
	}
	q := u.Query()
	changed := false
	for name := range q {
		for _, secret := range secretParams {
			if strings.EqualFold(name, secret) {
				q.Set(name, "REDACTED")
				changed = true
			}
		}
	}
	if !changed {
		return rawURL
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Options configures a Client.
type Options struct {
	Timeout   time.Duration
	RetryMax  int
	RetryWait time.Duration
	UserAgent string
}

// Client wraps a retryable HTTP client with JSON helpers.
type Client struct {
	http      *retryablehttp.Client
	userAgent string
	logger    zerolog.Logger
}

// New creates a Client. A zero RetryMax means every request is attempted once.
func New(opts Options, logger zerolog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient = cleanhttp.DefaultPooledClient()
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}
	rc.RetryMax = opts.RetryMax
	if opts.RetryWait > 0 {
		rc.RetryWaitMin = opts.RetryWait
		rc.RetryWaitMax = 4 * opts.RetryWait
	}
	rc.Logger = nil
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		http:      rc,
		userAgent: opts.UserAgent,
		logger:    logger.With().Str("component", "httpclient").Logger(),
	}
}

// GetJSON fetches rawURL and decodes the JSON body into out. Logs and
// errors carry the URL with credentials redacted.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	safeURL := Redact(rawURL)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", safeURL, redactURLError(err, safeURL))
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", safeURL, redactURLError(err, safeURL))
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("url", safeURL).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("upstream response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &StatusError{URL: safeURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading body of %s: %w", safeURL, redactURLError(err, safeURL))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s: %w: %v", safeURL, ErrMalformed, err)
	}
	return nil
}

// redactURLError rewrites the URL inside a *url.Error, which the transport
// fills with the raw request URL.
func redactURLError(err error, safeURL string) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = safeURL
	}
	return err
}
