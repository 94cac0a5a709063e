package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formval/pkg/config"
	"github.com/goliatone/go-formval/pkg/model"
	"github.com/goliatone/go-formval/pkg/render"
	rendertemplate "github.com/goliatone/go-formval/pkg/render/template"
	gotemplate "github.com/goliatone/go-formval/pkg/render/template/gotemplate"
)

// Name is the registry name of the renderer.
const Name = "vanilla"

// Theme token keys that override the configured classes.
const (
	TokenErrorClass    = "formval-error-class"
	TokenErrorBoxClass = "formval-error-box-class"
	TokenRequiredClass = "formval-required-class"
)

// RequiredLabelClass is added to the labels of required fields.
const RequiredLabelClass = "required"

type Option func(*options)

type options struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	cfg              config.Config
	policy           *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain FormTemplate.
func WithTemplatesFS(files fs.FS) Option {
	return func(o *options) {
		o.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(o *options) {
		if path == "" {
			return
		}
		o.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(o *options) {
		if renderer != nil {
			o.templateRenderer = renderer
		}
	}
}

// WithConfig supplies the validator configuration used for markers and
// classes.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithTheme applies a go-theme renderer configuration: the theme name and
// variant become data attributes, CSS variables are inlined on the form and
// the Token* keys override classes.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *options) {
		o.theme = cfg
	}
}

// WithPolicy overrides the bluemonday policy applied to message text.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(o *options) {
		if policy != nil {
			o.policy = policy
		}
	}
}

// Renderer renders forms as HTML and keeps the UI state driven by
// render.Apply: invalid marks, message boxes and focus. It satisfies
// render.MessageRenderer, render.MarkerSink and render.Focuser.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
	theme     *theme.RendererConfig

	errorClass    string
	errorBoxClass string
	requiredClass string
	cfg           config.Config

	mu     sync.Mutex
	marked map[string]struct{}
	boxes  []render.Message
	focus  string
}

var (
	_ render.MessageRenderer = (*Renderer)(nil)
	_ render.MarkerSink      = (*Renderer)(nil)
	_ render.Focuser         = (*Renderer)(nil)
)

// New constructs the vanilla renderer applying any provided options.
func New(opts ...Option) (*Renderer, error) {
	o := options{templateFS: TemplatesFS(), cfg: config.Defaults()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.templateFS == nil {
		o.templateFS = TemplatesFS()
	}
	if o.policy == nil {
		o.policy = bluemonday.StrictPolicy()
	}

	templates := o.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(o.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	r := &Renderer{
		templates:     templates,
		policy:        o.policy,
		theme:         o.theme,
		cfg:           o.cfg,
		errorClass:    o.cfg.ErrorClass,
		requiredClass: RequiredLabelClass,
		marked:        make(map[string]struct{}),
	}
	if o.theme != nil {
		if v := strings.TrimSpace(o.theme.Tokens[TokenErrorClass]); v != "" {
			r.errorClass = v
		}
		if v := strings.TrimSpace(o.theme.Tokens[TokenErrorBoxClass]); v != "" {
			r.errorBoxClass = v
		}
		if v := strings.TrimSpace(o.theme.Tokens[TokenRequiredClass]); v != "" {
			r.requiredClass = v
		}
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Clear removes every message box.
func (r *Renderer) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boxes = nil
	r.focus = ""
	return nil
}

// Show records a message box. Markup in the text is stripped.
func (r *Renderer) Show(_ context.Context, msg render.Message) error {
	msg.Text = strings.TrimSpace(r.policy.Sanitize(msg.Text))
	if r.errorBoxClass != "" {
		msg.Class = r.errorBoxClass
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boxes = append(r.boxes, msg)
	return nil
}

// Mark toggles the invalid state of a field, or of every group member and
// the group legend.
func (r *Renderer) Mark(_ context.Context, target render.Target, on bool) error {
	keys := []string{target.FieldID}
	if target.IsGroup() {
		keys = append(keys, target.Members...)
		keys = append(keys, groupKey(target.GroupName))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		if key == "" {
			continue
		}
		if on {
			r.marked[key] = struct{}{}
		} else {
			delete(r.marked, key)
		}
	}
	return nil
}

// Focus records the field that receives autofocus on the next render.
func (r *Renderer) Focus(_ context.Context, fieldID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.focus = fieldID
	return nil
}

// Invalid reports whether the field or group key is currently marked.
func (r *Renderer) Invalid(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.marked[id]
	return ok
}

// Marked returns the marked keys, sorted. Group legends appear as
// "group:<name>".
func (r *Renderer) Marked() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.marked))
	for key := range r.marked {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Messages returns the visible message boxes in display order.
func (r *Renderer) Messages() []render.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]render.Message(nil), r.boxes...)
}

// Focused returns the field ID holding focus, if any.
func (r *Renderer) Focused() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.focus
}

// Render produces the HTML for form reflecting the current UI state.
func (r *Renderer) Render(_ context.Context, form model.Form) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	r.mu.Lock()
	data := map[string]any{
		"form":  formView(form),
		"items": r.items(form),
		"theme": themeView(r.theme),
	}
	r.mu.Unlock()

	result, err := r.templates.RenderTemplate(FormTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func groupKey(name string) string {
	return "group:" + name
}
