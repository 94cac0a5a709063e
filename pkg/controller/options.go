package controller

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formval/pkg/persist"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/submit"
	"github.com/goliatone/go-formval/pkg/suggest"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSinks sets the UI collaborators driven by validation and reset. A nil
// Stored sink is filled with the mirror.
func WithSinks(sinks render.Sinks) Option {
	return func(c *Controller) {
		c.sinks = sinks
	}
}

// WithMirror enables value persistence. It only takes effect when the
// configuration has PersistInputs set.
func WithMirror(mirror *persist.Mirror) Option {
	return func(c *Controller) {
		c.mirror = mirror
	}
}

// WithTransport sets the transport used for asynchronous submission. The
// default posts with submit.HTTPTransport.
func WithTransport(transport submit.Transport) Option {
	return func(c *Controller) {
		if transport != nil {
			c.transport = transport
		}
	}
}

// WithSubmitControl sets the submit button collaborator.
func WithSubmitControl(control SubmitControl) Option {
	return func(c *Controller) {
		if control != nil {
			c.control = control
		}
	}
}

// WithNotifier sets the collaborator told about asynchronous outcomes.
func WithNotifier(notifier Notifier) Option {
	return func(c *Controller) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

// WithSuggester overrides the email domain suggester.
func WithSuggester(s *suggest.Suggester) Option {
	return func(c *Controller) {
		if s != nil {
			c.suggester = s
		}
	}
}

// WithIDGenerator overrides how submission IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

func defaultID() string {
	return uuid.NewString()
}
