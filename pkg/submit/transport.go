package submit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// IdempotencyHeader carries Request.ID so endpoints can drop replays.
const IdempotencyHeader = "Idempotency-Key"

// Request is one submission.
type Request struct {
	// ID identifies the submission attempt.
	ID     string
	URL    string
	Method string
	Values map[string][]string
}

// Response is the endpoint's reply.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport delivers a request.
type Transport interface {
	Submit(ctx context.Context, req Request) (Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req Request) (Response, error)

func (fn TransportFunc) Submit(ctx context.Context, req Request) (Response, error) {
	return fn(ctx, req)
}

// HTTPTransport posts form-urlencoded values. Non-2xx responses yield a
// *StatusError.
type HTTPTransport struct {
	client  *http.Client
	header  http.Header
	maxBody int64
}

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithClient overrides the HTTP client.
func WithClient(client *http.Client) Option {
	return func(t *HTTPTransport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithTimeout sets the client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(t *HTTPTransport) {
		if timeout > 0 {
			t.client = &http.Client{Timeout: timeout, Transport: t.client.Transport}
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(t *HTTPTransport) {
		t.header.Add(key, value)
	}
}

// WithMaxBody caps how much of the response body is read.
func WithMaxBody(n int64) Option {
	return func(t *HTTPTransport) {
		if n > 0 {
			t.maxBody = n
		}
	}
}

// NewHTTPTransport creates a transport with a 30 second client timeout.
func NewHTTPTransport(opts ...Option) *HTTPTransport {
	t := &HTTPTransport{
		client:  &http.Client{Timeout: 30 * time.Second},
		header:  make(http.Header),
		maxBody: 1 << 20,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Submit sends the request. GET requests carry the values in the query
// string, every other method in the body.
func (t *HTTPTransport) Submit(ctx context.Context, req Request) (Response, error) {
	target := strings.TrimSpace(req.URL)
	if target == "" {
		return Response{}, ErrMissingURL
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodPost
	}

	encoded := url.Values(req.Values).Encode()
	var body io.Reader
	if method == http.MethodGet {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		if encoded != "" {
			target += sep + encoded
		}
	} else {
		body = strings.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return Response{}, fmt.Errorf("submit: build request: %w", err)
	}
	for key, values := range t.header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if req.ID != "" {
		httpReq.Header.Set(IdempotencyHeader, req.ID)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("submit: %s %s: %w", method, req.URL, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBody))
	if err != nil {
		return Response{}, fmt.Errorf("submit: read response: %w", err)
	}
	out := Response{StatusCode: resp.StatusCode, Body: payload}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return out, nil
}
