package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	// HTTP client retry configuration.
	defaultRetryWaitTime    = time.Second
	defaultRetryMaxWaitTime = 5 * time.Second

	// Rate limiting configuration.
	rateLimitRequestsPerSecond = 2
	rateLimitBurst             = 1
)

// Adapter is an HTTP client adapter using resty with rate limiting.
type Adapter struct {
	client *resty.Client
	logger *slog.Logger
}

// NewAdapter creates a new HTTP adapter with rate limiting and retry capabilities.
// Every attempt counts against the limiter, including retries.
func NewAdapter(timeout time.Duration, retryCount int, insecureSkipVerify bool, logger *slog.Logger) *Adapter {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(defaultRetryWaitTime).
		SetRetryMaxWaitTime(defaultRetryMaxWaitTime).
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: insecureSkipVerify, //nolint:gosec // Local proxies serve self-signed certificates
		})

	limiter := rate.NewLimiter(rate.Limit(rateLimitRequestsPerSecond), rateLimitBurst)

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.DebugContext(req.Context(), "HTTP request",
			"method", req.Method,
			"url", req.URL,
		)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.DebugContext(resp.Request.Context(), "HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
		)
		return nil
	})

	return &Adapter{
		client: client,
		logger: logger,
	}
}

// Probe succeeds once url answers with any HTTP status. Transport errors are
// retried according to the adapter's retry policy.
func (a *Adapter) Probe(ctx context.Context, url string) error {
	resp, err := a.client.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return fmt.Errorf("endpoint %s is not reachable: %w", url, err)
	}
	if raw := resp.RawBody(); raw != nil {
		_ = raw.Close()
	}

	a.logger.DebugContext(ctx, "Endpoint answered", "url", url, "status", resp.StatusCode())
	return nil
}
