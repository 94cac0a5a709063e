package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

// Loader fetches raw OpenAPI documents from files, an fs.FS or HTTP. HTTP is
// disabled unless a client or the fallback is configured.
type Loader struct {
	fs   fs.FS
	http *http.Client
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem enables SourceKindFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			l.http = client
		}
	}
}

// WithHTTPFallback enables URL sources with a default client.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		if l.http == nil {
			l.http = &http.Client{Timeout: timeout}
		}
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load returns the document bytes.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch src.Kind() {
	case SourceKindFile:
		return os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return nil, errors.New("openapi loader: filesystem is not configured")
		}
		return fs.ReadFile(l.fs, src.Location())
	case SourceKindURL:
		if l.http == nil {
			return nil, errors.New("openapi loader: http support disabled")
		}
		return l.fetch(ctx, src.Location())
	default:
		return nil, fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: build request: %w", err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: fetch %s: %w", location, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openapi loader: fetch %s: unexpected status %s", location, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
