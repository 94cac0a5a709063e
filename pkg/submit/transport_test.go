package submit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formval/pkg/submit"
)

func TestHTTPTransportPostsFormValues(t *testing.T) {
	var (
		gotValues url.Values
		gotHeader http.Header
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotValues = r.PostForm
		gotHeader = r.Header.Clone()
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	transport := submit.NewHTTPTransport(submit.WithHeader("X-Form", "signup"))
	resp, err := transport.Submit(context.Background(), submit.Request{
		ID:     "abc-123",
		URL:    server.URL,
		Values: map[string][]string{"name": {"Ada"}, "topics": {"go", "zig"}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.StatusCode != http.StatusOK || string(resp.Body) != "ok" {
		t.Fatalf("unexpected response %+v", resp)
	}
	want := url.Values{"name": {"Ada"}, "topics": {"go", "zig"}}
	if diff := cmp.Diff(want, gotValues); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if gotHeader.Get(submit.IdempotencyHeader) != "abc-123" || gotHeader.Get("X-Form") != "signup" {
		t.Fatalf("missing headers: %v", gotHeader)
	}
}

func TestHTTPTransportGetUsesQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
	}))
	defer server.Close()

	_, err := submit.NewHTTPTransport().Submit(context.Background(), submit.Request{
		URL:    server.URL + "/search?page=1",
		Method: "get",
		Values: map[string][]string{"q": {"go"}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gotQuery != "page=1&q=go" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

func TestHTTPTransportStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	_, err := submit.NewHTTPTransport().Submit(context.Background(), submit.Request{URL: server.URL})
	var statusErr *submit.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", statusErr.StatusCode)
	}
}

func TestHTTPTransportRequiresURL(t *testing.T) {
	_, err := submit.NewHTTPTransport().Submit(context.Background(), submit.Request{URL: "  "})
	if !errors.Is(err, submit.ErrMissingURL) {
		t.Fatalf("expected ErrMissingURL, got %v", err)
	}
}
