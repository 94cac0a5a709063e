package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formval/pkg/config"
	"github.com/goliatone/go-formval/pkg/model"
	"github.com/goliatone/go-formval/pkg/persist"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/rules"
	"github.com/goliatone/go-formval/pkg/submit"
	"github.com/goliatone/go-formval/pkg/suggest"
	"github.com/goliatone/go-formval/pkg/validation"
)

const namePlaceholder = "[name]"

// Outcome describes what a submit event led to.
type Outcome struct {
	Result validation.Result
	// Proceed tells the host to perform the native submission. Only set in
	// synchronous mode when validation passed.
	Proceed bool
	// Pending is set when an asynchronous submission started. Done receives
	// its error (nil on success) and is then closed.
	Pending      bool
	Done         <-chan error
	SubmissionID string
}

// Controller owns one form instance. Create it with New and call Init once
// before routing events.
type Controller struct {
	mu sync.Mutex

	form    model.Form
	initial model.Form
	cfg     config.Config
	rules   []rules.FieldRule
	pending bool

	logger    *zap.Logger
	sinks     render.Sinks
	mirror    *persist.Mirror
	transport submit.Transport
	control   SubmitControl
	notifier  Notifier
	suggester *suggest.Suggester
	newID     func() string
}

// New creates a controller. Rules are classified once since markers do not
// change over the life of a form.
func New(form model.Form, cfg config.Config, opts ...Option) *Controller {
	c := &Controller{
		form:      form.Clone(),
		initial:   form.Clone(),
		cfg:       cfg,
		rules:     rules.Classify(form, cfg),
		logger:    zap.NewNop(),
		transport: submit.NewHTTPTransport(),
		control:   nopControl{},
		notifier:  nopNotifier{},
		suggester: suggest.New(),
		newID:     defaultID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if !cfg.PersistInputs {
		c.mirror = nil
	}
	if c.sinks.Stored == nil && c.mirror != nil {
		c.sinks.Stored = c.mirror
	}
	return c
}

// Init normalises url fields and restores persisted values.
func (c *Controller) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.form = c.form.NormalizeURLFields()
	c.initial = c.form.Clone()
	if c.mirror != nil {
		c.form = c.mirror.Restore(ctx, c.form)
	}
	c.logger.Debug("controller: form initialised",
		zap.String("form", c.form.ID),
		zap.Int("fields", len(c.form.Fields)),
		zap.Int("rules", len(c.rules)),
	)
	return nil
}

// Form returns a copy of the current form state.
func (c *Controller) Form() model.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Clone()
}

// Rules returns the classified rules.
func (c *Controller) Rules() []rules.FieldRule {
	return append([]rules.FieldRule(nil), c.rules...)
}

// Pending reports whether an asynchronous submission is in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Change sets the value of a field and persists it.
func (c *Controller) Change(ctx context.Context, fieldID, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setValue(ctx, fieldID, value)
}

// Toggle sets the check state of a radio or checkbox and persists its group.
func (c *Controller) Toggle(ctx context.Context, fieldID string, checked bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	form, ok := c.form.SetChecked(fieldID, checked)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, fieldID)
	}
	c.form = form
	c.persist(ctx, fieldID)
	return nil
}

// Blur handles a field losing focus. Url fields are normalised; email fields
// are run through the suggester and any correction is returned for the host
// to offer.
func (c *Controller) Blur(ctx context.Context, fieldID string) (suggest.Suggestion, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	field, ok := c.form.Field(fieldID)
	if !ok {
		return suggest.Suggestion{}, false, fmt.Errorf("%w %q", ErrUnknownField, fieldID)
	}
	if field.Type == model.FieldTypeURL {
		if normalized := model.NormalizeURL(field.Value); normalized != field.Value {
			if err := c.setValue(ctx, fieldID, normalized); err != nil {
				return suggest.Suggestion{}, false, err
			}
		}
		return suggest.Suggestion{}, false, nil
	}
	if field.Type != model.FieldTypeEmail && !field.HasMarker(c.cfg.EmailMarker) {
		return suggest.Suggestion{}, false, nil
	}

	suggestion, found := c.suggester.Suggest(field.Value)
	if found {
		c.logger.Debug("controller: email suggestion",
			zap.String("field", fieldID),
			zap.String("domain", suggestion.SuggestedDomain),
		)
	}
	return suggestion, found, nil
}

// SuggestionText formats the prompt offering a suggestion.
func (c *Controller) SuggestionText(s suggest.Suggestion) string {
	return s.Text(c.cfg.SuggestText())
}

// AcceptSuggestion replaces the field value with the suggested address.
func (c *Controller) AcceptSuggestion(ctx context.Context, fieldID string, s suggest.Suggestion) error {
	return c.Change(ctx, fieldID, s.Address())
}

// Validate runs the engine and applies the resulting effects without
// submitting.
func (c *Controller) Validate(ctx context.Context) validation.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validate(ctx)
}

// Submit validates the form. Invalid forms stop there. Valid forms either
// return Proceed (synchronous mode, persisted values cleared first) or start
// an asynchronous submission to SubmitURL, falling back to the form action.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending {
		return Outcome{}, ErrSubmissionPending
	}

	result := c.validate(ctx)
	if !result.OK {
		return Outcome{Result: result}, nil
	}

	if !c.cfg.AsyncSubmit {
		c.mirror.Clear(ctx, c.form)
		return Outcome{Result: result, Proceed: true}, nil
	}

	target := strings.TrimSpace(c.cfg.SubmitURL)
	if target == "" {
		target = strings.TrimSpace(c.form.Action)
	}
	if target == "" {
		return Outcome{Result: result}, fmt.Errorf("controller: %w", config.ErrNoSubmitTarget)
	}

	req := submit.Request{
		ID:     c.newID(),
		URL:    target,
		Method: c.form.Method,
		Values: c.form.Values(),
	}
	message := SuccessMessage(c.form, c.cfg)
	done := make(chan error, 1)

	c.pending = true
	c.control.Disable(ctx)
	c.logger.Info("controller: submitting",
		zap.String("form", c.form.ID),
		zap.String("submission", req.ID),
		zap.String("url", req.URL),
	)
	go c.deliver(ctx, req, message, done)

	return Outcome{Result: result, Pending: true, Done: done, SubmissionID: req.ID}, nil
}

func (c *Controller) deliver(ctx context.Context, req submit.Request, message string, done chan<- error) {
	defer close(done)

	_, err := c.transport.Submit(ctx, req)

	c.mu.Lock()
	c.pending = false
	form := c.form.Clone()
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("controller: submission failed",
			zap.String("submission", req.ID),
			zap.Error(err),
		)
		c.control.Enable(ctx)
		c.notifier.Failure(ctx, err)
		done <- err
		return
	}

	c.logger.Info("controller: submission succeeded", zap.String("submission", req.ID))
	c.mirror.Clear(ctx, form)
	c.notifier.Success(ctx, message)
	if c.cfg.OnSuccess != nil {
		c.cfg.OnSuccess(req.Values)
	}
	done <- nil
}

// Reset clears every mark, message box and persisted value and restores the
// form to its state after Init.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	plan := render.ResetPlan(c.form, c.rules)
	err := render.Apply(ctx, plan, c.sinks)
	c.form = c.initial.Clone()
	if err != nil {
		return fmt.Errorf("controller: reset: %w", err)
	}
	return nil
}

// SuccessMessage resolves the message shown after a successful asynchronous
// submission: the value of the success message field with the first "[name]"
// replaced by the username field's value. Without a success message field, or
// when it is blank, the configured default is used.
func SuccessMessage(form model.Form, cfg config.Config) string {
	field, ok := form.Field(cfg.SuccessMessageFieldID)
	if !ok || strings.TrimSpace(field.Value) == "" {
		if msg := strings.TrimSpace(cfg.DefaultSuccessMessage); msg != "" {
			return msg
		}
		return config.DefaultSuccessMessage
	}
	var name string
	if username, found := form.Lookup(cfg.UsernameFieldSelector); found {
		name = username.Value
	}
	return strings.Replace(field.Value, namePlaceholder, name, 1)
}

func (c *Controller) validate(ctx context.Context) validation.Result {
	result := validation.Validate(c.form, c.rules, c.cfg)
	plan := render.PlanEffects(c.form, c.rules, result, c.cfg)
	if err := render.Apply(ctx, plan, c.sinks); err != nil {
		c.logger.Warn("controller: apply effects", zap.Error(err))
	}
	if !result.OK {
		c.logger.Debug("controller: validation failed",
			zap.String("form", c.form.ID),
			zap.Strings("invalid", result.InvalidFieldIDs),
		)
	}
	return result
}

func (c *Controller) setValue(ctx context.Context, fieldID, value string) error {
	form, ok := c.form.SetValue(fieldID, value)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, fieldID)
	}
	c.form = form
	c.persist(ctx, fieldID)
	return nil
}

func (c *Controller) persist(ctx context.Context, fieldID string) {
	if c.mirror == nil {
		return
	}
	if field, ok := c.form.Field(fieldID); ok {
		c.mirror.Save(ctx, c.form, field.Name)
	}
}
