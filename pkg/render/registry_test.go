package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formval/pkg/render"
)

type namedRenderer struct {
	*fakeDOM
	name string
}

func (n namedRenderer) Name() string { return n.name }

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(namedRenderer{fakeDOM: newFakeDOM(), name: "vanilla"})
	registry.MustRegister(namedRenderer{fakeDOM: newFakeDOM(), name: "tui"})

	if err := registry.Register(namedRenderer{fakeDOM: newFakeDOM(), name: "tui"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := registry.Register(namedRenderer{fakeDOM: newFakeDOM()}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}

	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("vanilla") || registry.Has("preact") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := registry.Get("preact"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}
