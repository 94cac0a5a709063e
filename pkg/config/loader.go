package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. FORMVAL_SUBMIT_URL.
const EnvPrefix = "FORMVAL_"

// Settings is the serialisable form of Config. Patterns are expressed as
// regular expressions; PasswordPatterns must all match.
type Settings struct {
	UsernameFieldSelector     string   `yaml:"usernameFieldSelector" env:"USERNAME_FIELD_SELECTOR"`
	ValidationMessageSelector string   `yaml:"validationMessageSelector" env:"VALIDATION_MESSAGE_SELECTOR"`
	RequiredMarker            string   `yaml:"requiredMarker" env:"REQUIRED_MARKER"`
	EmailMarker               string   `yaml:"emailMarker" env:"EMAIL_MARKER"`
	PasswordMarker            string   `yaml:"passwordMarker" env:"PASSWORD_MARKER"`
	PasswordConfirmMarker     string   `yaml:"passwordConfirmMarker" env:"PASSWORD_CONFIRM_MARKER"`
	ErrorClass                string   `yaml:"errorClass" env:"ERROR_CLASS"`
	ErrorBoxClass             string   `yaml:"errorBoxClass" env:"ERROR_BOX_CLASS"`
	EmailPattern              string   `yaml:"emailPattern" env:"EMAIL_PATTERN"`
	PasswordPatterns          []string `yaml:"passwordPatterns" env:"PASSWORD_PATTERNS" envSeparator:"|"`
	ConsecutiveErrors         bool     `yaml:"consecutiveErrors" env:"CONSECUTIVE_ERRORS"`
	AppendErrorToTitle        bool     `yaml:"appendErrorToTitle" env:"APPEND_ERROR_TO_TITLE"`
	PersistInputs             bool     `yaml:"persistInputs" env:"PERSIST_INPUTS"`
	AsyncSubmit               bool     `yaml:"asyncSubmit" env:"ASYNC_SUBMIT"`
	SuccessMessageFieldID     string   `yaml:"successMessageFieldId" env:"SUCCESS_MESSAGE_FIELD_ID"`
	DefaultErrorMessage       string   `yaml:"defaultErrorMessage" env:"DEFAULT_ERROR_MESSAGE"`
	DefaultSuccessMessage     string   `yaml:"defaultSuccessMessage" env:"DEFAULT_SUCCESS_MESSAGE"`
	DefaultSuggestText        string   `yaml:"defaultSuggestText" env:"DEFAULT_SUGGEST_TEXT"`
	SubmitURL                 string   `yaml:"submitUrl" env:"SUBMIT_URL"`
}

// DefaultSettings mirrors Defaults in serialisable form. Pattern fields are
// left empty, meaning "use the built-in matcher".
func DefaultSettings() Settings {
	d := Defaults()
	return Settings{
		UsernameFieldSelector:     d.UsernameFieldSelector,
		ValidationMessageSelector: d.ValidationMessageSelector,
		RequiredMarker:            d.RequiredMarker,
		EmailMarker:               d.EmailMarker,
		PasswordMarker:            d.PasswordMarker,
		PasswordConfirmMarker:     d.PasswordConfirmMarker,
		ErrorClass:                d.ErrorClass,
		ErrorBoxClass:             d.ErrorBoxClass,
		ConsecutiveErrors:         d.ConsecutiveErrors,
		AppendErrorToTitle:        d.AppendErrorToTitle,
		PersistInputs:             d.PersistInputs,
		AsyncSubmit:               d.AsyncSubmit,
		SuccessMessageFieldID:     d.SuccessMessageFieldID,
		DefaultErrorMessage:       d.DefaultErrorMessage,
		DefaultSuccessMessage:     d.DefaultSuccessMessage,
		DefaultSuggestText:        d.DefaultSuggestText,
	}
}

// Options converts the settings into Config options.
func (s Settings) Options() ([]Option, error) {
	opts := []Option{
		WithUsernameFieldSelector(s.UsernameFieldSelector),
		WithValidationMessageSelector(s.ValidationMessageSelector),
		WithMarkers(s.RequiredMarker, s.EmailMarker, s.PasswordMarker, s.PasswordConfirmMarker),
		WithErrorClasses(s.ErrorClass, s.ErrorBoxClass),
		WithConsecutiveErrors(s.ConsecutiveErrors),
		WithAppendErrorToTitle(s.AppendErrorToTitle),
		WithPersistInputs(s.PersistInputs),
		WithAsyncSubmit(s.AsyncSubmit),
		WithSuccessMessageFieldID(s.SuccessMessageFieldID),
		WithMessages(s.DefaultErrorMessage, s.DefaultSuccessMessage, s.DefaultSuggestText),
		WithSubmitURL(s.SubmitURL),
	}
	if s.EmailPattern != "" {
		m, err := CompilePattern(s.EmailPattern)
		if err != nil {
			return nil, fmt.Errorf("config: email pattern: %w", err)
		}
		opts = append(opts, WithEmailPattern(m))
	}
	if len(s.PasswordPatterns) > 0 {
		m, err := CompilePattern(s.PasswordPatterns...)
		if err != nil {
			return nil, fmt.Errorf("config: password pattern: %w", err)
		}
		opts = append(opts, WithPasswordPattern(m))
	}
	return opts, nil
}

// Decode reads YAML settings from r, applies FORMVAL_* environment overrides
// and builds the Config. Extra options are applied last.
func Decode(r io.Reader, extra ...Option) (Config, error) {
	settings := DefaultSettings()
	if r != nil {
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: decode yaml: %w", err)
		}
	}
	if err := env.ParseWithOptions(&settings, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	opts, err := settings.Options()
	if err != nil {
		return Config{}, err
	}
	return New(append(opts, extra...)...)
}

// Load decodes YAML settings held in memory.
func Load(data []byte, extra ...Option) (Config, error) {
	return Decode(bytes.NewReader(data), extra...)
}

// LoadFile decodes YAML settings from path. An empty path yields Defaults
// with environment overrides applied.
func LoadFile(path string, extra ...Option) (Config, error) {
	if path == "" {
		return Decode(nil, extra...)
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, extra...)
}
