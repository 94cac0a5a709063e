package submit

import (
	"errors"
	"fmt"
)

// ErrMissingURL is returned when a request has no target.
var ErrMissingURL = errors.New("submit: url is required")

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("submit: unexpected status %s", e.Status)
	}
	return fmt.Sprintf("submit: unexpected status %d", e.StatusCode)
}
