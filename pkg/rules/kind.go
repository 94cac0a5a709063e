package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Kind enumerates the declarative rule kinds. The numeric order is the
// evaluation priority for a field carrying several markers.
type Kind int

const (
	KindRequired Kind = iota + 1
	KindEmail
	KindPassword
	KindPasswordConfirm
	KindGroup
)

// ErrUnknownKind is returned by ParseKind for unrecognised names.
var ErrUnknownKind = errors.New("rules: unknown rule kind")

var kindNames = map[Kind]string{
	KindRequired:        "required",
	KindEmail:           "email",
	KindPassword:        "password",
	KindPasswordConfirm: "passwordConfirm",
	KindGroup:           "radioCheckboxGroup",
}

// String returns the canonical kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a canonical kind name (case-insensitive).
func ParseKind(name string) (Kind, error) {
	trimmed := strings.TrimSpace(name)
	for kind, candidate := range kindNames {
		if strings.EqualFold(candidate, trimmed) {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKind, name)
}

// FieldRule is one declared constraint on one field. GroupName is only set
// for KindGroup, whose FieldID is the first member of the group.
type FieldRule struct {
	FieldID   string `json:"fieldId"`
	Kind      Kind   `json:"kind"`
	GroupName string `json:"groupName,omitempty"`
}
