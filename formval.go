package formval

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formval/pkg/config"
	"github.com/goliatone/go-formval/pkg/controller"
	"github.com/goliatone/go-formval/pkg/model"
	pkgopenapi "github.com/goliatone/go-formval/pkg/openapi"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/renderers/vanilla"
)

// Attach validates cfg, builds a controller for form and initialises it.
func Attach(ctx context.Context, form model.Form, cfg config.Config, opts ...controller.Option) (*controller.Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctrl := controller.New(form, cfg, opts...)
	if err := ctrl.Init(ctx); err != nil {
		return nil, fmt.Errorf("formval: init %s: %w", form.ID, err)
	}
	return ctrl, nil
}

// NewRegistry returns a registry holding the vanilla renderer configured
// with cfg plus any extra renderers.
func NewRegistry(cfg config.Config, extra ...render.MessageRenderer) (*render.Registry, error) {
	registry := render.NewRegistry()
	html, err := vanilla.New(vanilla.WithConfig(cfg))
	if err != nil {
		return nil, err
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	for _, renderer := range extra {
		if err := registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// SinksFor resolves a renderer by name and uses it for every sink it
// implements.
func SinksFor(registry *render.Registry, name string) (render.Sinks, error) {
	renderer, err := registry.Get(name)
	if err != nil {
		return render.Sinks{}, err
	}
	sinks := render.Sinks{Messages: renderer}
	if marker, ok := renderer.(render.MarkerSink); ok {
		sinks.Markers = marker
	}
	if focus, ok := renderer.(render.Focuser); ok {
		sinks.Focus = focus
	}
	return sinks, nil
}

// FormFromOpenAPI loads the document at src and derives the form of
// operationID using the markers configured in cfg.
func FormFromOpenAPI(ctx context.Context, src pkgopenapi.Source, operationID string, cfg config.Config, opts ...pkgopenapi.LoaderOption) (model.Form, error) {
	raw, err := pkgopenapi.NewLoader(opts...).Load(ctx, src)
	if err != nil {
		return model.Form{}, fmt.Errorf("formval: load %s: %w", src.Location(), err)
	}
	return pkgopenapi.FormFromOperation(ctx, raw, operationID, pkgopenapi.WithConfig(cfg))
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
