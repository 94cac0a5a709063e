package config

import (
	"fmt"
	"strings"
)

// Default option values, matching the markup conventions the engine was
// designed around.
const (
	DefaultUsernameFieldSelector     = "#fullname"
	DefaultValidationMessageSelector = ".val-message"
	DefaultRequiredMarker            = "required"
	DefaultEmailMarker               = "email"
	DefaultPasswordMarker            = "pass"
	DefaultPasswordConfirmMarker     = "pass_confirm"
	DefaultErrorClass                = "alert error"
	DefaultErrorBoxClass             = "val-box"
	DefaultSuccessMessageFieldID     = "success_message"
	DefaultErrorMessage              = "Please check this field"
	DefaultSuccessMessage            = "You have successfully submitted the form"
	DefaultSuggestText               = "Did you mean %s?"
)

// SuccessFunc is invoked after an asynchronous submission succeeds.
type SuccessFunc func(values map[string][]string)

// Config is the flat option set supplied when attaching to a form. Treat it
// as immutable once built; every consumer receives a copy.
type Config struct {
	UsernameFieldSelector     string
	ValidationMessageSelector string

	RequiredMarker        string
	EmailMarker           string
	PasswordMarker        string
	PasswordConfirmMarker string

	ErrorClass    string
	ErrorBoxClass string

	EmailPattern    Matcher
	PasswordPattern Matcher

	// ConsecutiveErrors shows only the first invalid field's message and
	// focuses it. When false every invalid field gets its own box.
	ConsecutiveErrors bool
	// AppendErrorToTitle appends the box to the field label; otherwise it is
	// prepended to the field container.
	AppendErrorToTitle bool
	PersistInputs      bool
	AsyncSubmit        bool

	SuccessMessageFieldID string
	DefaultErrorMessage   string
	DefaultSuccessMessage string
	DefaultSuggestText    string
	SubmitURL             string

	OnSuccess SuccessFunc
}

// Option mutates a Config under construction.
type Option func(*Config)

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		UsernameFieldSelector:     DefaultUsernameFieldSelector,
		ValidationMessageSelector: DefaultValidationMessageSelector,
		RequiredMarker:            DefaultRequiredMarker,
		EmailMarker:               DefaultEmailMarker,
		PasswordMarker:            DefaultPasswordMarker,
		PasswordConfirmMarker:     DefaultPasswordConfirmMarker,
		ErrorClass:                DefaultErrorClass,
		ErrorBoxClass:             DefaultErrorBoxClass,
		EmailPattern:              DefaultEmailPattern(),
		PasswordPattern:           DefaultPasswordPattern(),
		ConsecutiveErrors:         true,
		AppendErrorToTitle:        true,
		PersistInputs:             true,
		AsyncSubmit:               true,
		SuccessMessageFieldID:     DefaultSuccessMessageFieldID,
		DefaultErrorMessage:       DefaultErrorMessage,
		DefaultSuccessMessage:     DefaultSuccessMessage,
		DefaultSuggestText:        DefaultSuggestText,
	}
}

// New applies options over Defaults and validates the result.
func New(options ...Option) (Config, error) {
	cfg := Defaults()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustNew panics when New fails. Useful for package-level wiring.
func MustNew(options ...Option) Config {
	cfg, err := New(options...)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks the structural requirements of a configuration.
func (c Config) Validate() error {
	markers := map[string]string{
		"required":        c.RequiredMarker,
		"email":           c.EmailMarker,
		"password":        c.PasswordMarker,
		"passwordConfirm": c.PasswordConfirmMarker,
	}
	for name, marker := range markers {
		if strings.TrimSpace(marker) == "" {
			return fmt.Errorf("%w: %s", ErrMissingMarker, name)
		}
	}
	if c.EmailPattern == nil {
		return fmt.Errorf("%w: email pattern is nil", ErrInvalidPattern)
	}
	if c.PasswordPattern == nil {
		return fmt.Errorf("%w: password pattern is nil", ErrInvalidPattern)
	}
	return nil
}

// ErrorMessage returns the default error message, falling back to the package
// default when the configured one is blank.
func (c Config) ErrorMessage() string {
	if msg := strings.TrimSpace(c.DefaultErrorMessage); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}

// SuggestText returns the suggestion prompt template.
func (c Config) SuggestText() string {
	if text := strings.TrimSpace(c.DefaultSuggestText); text != "" {
		return text
	}
	return DefaultSuggestText
}

// WithUsernameFieldSelector sets the selector of the field holding the
// submitter's name, substituted for [name] in success messages.
func WithUsernameFieldSelector(selector string) Option {
	return func(c *Config) {
		c.UsernameFieldSelector = strings.TrimSpace(selector)
	}
}

// WithValidationMessageSelector sets the selector of per-field validation
// message elements.
func WithValidationMessageSelector(selector string) Option {
	return func(c *Config) {
		c.ValidationMessageSelector = strings.TrimSpace(selector)
	}
}

// WithMarkers overrides the rule markers. Blank arguments keep the current
// value.
func WithMarkers(required, email, password, passwordConfirm string) Option {
	return func(c *Config) {
		setIfNotBlank(&c.RequiredMarker, required)
		setIfNotBlank(&c.EmailMarker, email)
		setIfNotBlank(&c.PasswordMarker, password)
		setIfNotBlank(&c.PasswordConfirmMarker, passwordConfirm)
	}
}

// WithErrorClasses overrides the invalid-marker class and the error box class.
func WithErrorClasses(errorClass, errorBoxClass string) Option {
	return func(c *Config) {
		setIfNotBlank(&c.ErrorClass, errorClass)
		setIfNotBlank(&c.ErrorBoxClass, errorBoxClass)
	}
}

// WithEmailPattern overrides the email matcher.
func WithEmailPattern(m Matcher) Option {
	return func(c *Config) {
		if m != nil {
			c.EmailPattern = m
		}
	}
}

// WithPasswordPattern overrides the password matcher.
func WithPasswordPattern(m Matcher) Option {
	return func(c *Config) {
		if m != nil {
			c.PasswordPattern = m
		}
	}
}

// WithConsecutiveErrors toggles first-error-only presentation.
func WithConsecutiveErrors(enabled bool) Option {
	return func(c *Config) {
		c.ConsecutiveErrors = enabled
	}
}

// WithAppendErrorToTitle toggles label placement of error boxes.
func WithAppendErrorToTitle(enabled bool) Option {
	return func(c *Config) {
		c.AppendErrorToTitle = enabled
	}
}

// WithPersistInputs toggles the persistence mirror.
func WithPersistInputs(enabled bool) Option {
	return func(c *Config) {
		c.PersistInputs = enabled
	}
}

// WithAsyncSubmit toggles asynchronous submission.
func WithAsyncSubmit(enabled bool) Option {
	return func(c *Config) {
		c.AsyncSubmit = enabled
	}
}

// WithSuccessMessageFieldID sets the field whose value is used as the success
// message template.
func WithSuccessMessageFieldID(id string) Option {
	return func(c *Config) {
		c.SuccessMessageFieldID = strings.TrimPrefix(strings.TrimSpace(id), "#")
	}
}

// WithMessages overrides the default error, success and suggestion texts.
// Blank arguments keep the current value.
func WithMessages(errorMsg, successMsg, suggestText string) Option {
	return func(c *Config) {
		setIfNotBlank(&c.DefaultErrorMessage, errorMsg)
		setIfNotBlank(&c.DefaultSuccessMessage, successMsg)
		setIfNotBlank(&c.DefaultSuggestText, suggestText)
	}
}

// WithSubmitURL sets the endpoint used for asynchronous submission. It
// overrides the form action.
func WithSubmitURL(url string) Option {
	return func(c *Config) {
		c.SubmitURL = strings.TrimSpace(url)
	}
}

// WithOnSuccess registers the callback run after a successful asynchronous
// submission.
func WithOnSuccess(fn SuccessFunc) Option {
	return func(c *Config) {
		c.OnSuccess = fn
	}
}

func setIfNotBlank(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}
