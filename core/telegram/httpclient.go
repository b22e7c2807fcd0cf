package telegram

import (
	"net"
	"net/http"
	"time"

	"github.com/ksokolovskiy/ks-buy-bot/core/telegram/netutil"
)

const (
	defaultDialTimeout       = 5 * time.Second
	defaultTLSHandshake      = 5 * time.Second
	defaultIdleConnTimeout   = 30 * time.Second
	defaultKeepAliveInterval = 30 * time.Second
	defaultRetryAttempts     = 3
	defaultRetryBackoff      = 2 * time.Second

	// Response and client timeouts must stay above the long-poll
	// getUpdates timeout or polling would self-cancel.
	defaultResponseTimeout = 65 * time.Second
	defaultClientTimeout   = 75 * time.Second
)

// BuildHTTPClient returns an HTTP client tuned for the Telegram Bot API,
// with transparent retries on transient transport errors.
func BuildHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   defaultDialTimeout,
		KeepAlive: defaultKeepAliveInterval,
	}
	return &http.Client{
		Timeout: defaultClientTimeout,
		Transport: &retryTransport{
			base: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           dialer.DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          20,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       defaultIdleConnTimeout,
				TLSHandshakeTimeout:   defaultTLSHandshake,
				ResponseHeaderTimeout: defaultResponseTimeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
			maxRetries: defaultRetryAttempts,
			backoff:    defaultRetryBackoff,
		},
	}
}

// retryTransport re-issues requests that failed with a retryable transport
// error, with linear backoff. Requests whose body cannot be replayed are
// never retried.
type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	var lastErr error
	attempts := t.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		attemptReq, err := t.prepare(req, attempt)
		if err != nil {
			return nil, err
		}
		if attemptReq == nil {
			return nil, lastErr
		}

		resp, err := base.RoundTrip(attemptReq)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !netutil.ShouldRetry(err) || attempt == attempts {
			break
		}
		if err := t.wait(req, attempt); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// prepare returns the request to send for the given attempt, cloning and
// rewinding the body on retries. A nil request means the body is consumed
// and cannot be replayed.
func (t *retryTransport) prepare(req *http.Request, attempt int) (*http.Request, error) {
	if attempt == 1 {
		return req, nil
	}
	clone := req.Clone(req.Context())
	switch {
	case req.GetBody != nil:
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	case req.Body != nil:
		return nil, nil
	}
	return clone, nil
}

func (t *retryTransport) wait(req *http.Request, attempt int) error {
	delay := t.backoff * time.Duration(attempt)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-req.Context().Done():
		return req.Context().Err()
	case <-timer.C:
		return nil
	}
}
