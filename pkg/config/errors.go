package config

import "errors"

var (
	// ErrInvalidPattern is returned when a configured pattern fails to compile.
	ErrInvalidPattern = errors.New("config: invalid pattern")
	// ErrMissingMarker is returned when a rule marker is configured blank.
	ErrMissingMarker = errors.New("config: marker is required")
	// ErrNoSubmitTarget is returned when async submission is enabled without a
	// submit URL and the form carries no action either.
	ErrNoSubmitTarget = errors.New("config: async submit requires a submit url or form action")
)
