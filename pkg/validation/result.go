package validation

import "github.com/goliatone/go-formval/pkg/rules"

// Failure describes why one field (or group) is invalid.
type Failure struct {
	FieldID   string     `json:"fieldId"`
	Kind      rules.Kind `json:"kind"`
	GroupName string     `json:"groupName,omitempty"`
	// Members lists every input of a failed group, including FieldID.
	Members []string `json:"members,omitempty"`
	Message string   `json:"message"`
}

// Result is the outcome of one validation run.
type Result struct {
	OK                  bool      `json:"ok"`
	InvalidFieldIDs     []string  `json:"invalidFieldIds"`
	FirstInvalidMessage string    `json:"firstInvalidMessage,omitempty"`
	Failures            []Failure `json:"failures,omitempty"`
}

// Failure returns the failure recorded for the field ID.
func (r Result) Failure(id string) (Failure, bool) {
	for _, failure := range r.Failures {
		if failure.FieldID == id {
			return failure, true
		}
	}
	return Failure{}, false
}

// Invalid reports whether the field ID was flagged.
func (r Result) Invalid(id string) bool {
	_, ok := r.Failure(id)
	return ok
}
