package render

import (
	"fmt"
	"strings"
)

// Operation enumerates the marker operations a plan can request.
type Operation int

const (
	// OpMarkOn flags a target as invalid.
	OpMarkOn Operation = iota + 1
	// OpMarkOff removes the invalid flag from a target.
	OpMarkOff
	// OpClearStored drops the persisted value of a target.
	OpClearStored
)

var operationNames = map[Operation]string{
	OpMarkOn:      "on",
	OpMarkOff:     "off",
	OpClearStored: "clear",
}

// String returns the operation name.
func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// ParseOperation resolves an operation name. Unknown names are rejected with
// ErrUnknownOperation.
func ParseOperation(name string) (Operation, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	for op, candidate := range operationNames {
		if candidate == trimmed {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownOperation, name)
}

// MarshalText implements encoding.TextMarshaler.
func (op Operation) MarshalText() ([]byte, error) {
	name, ok := operationNames[op]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownOperation, int(op))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *Operation) UnmarshalText(text []byte) error {
	parsed, err := ParseOperation(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// Placement selects where a message box is inserted.
type Placement int

const (
	// PlacementLabel appends the box to the field label.
	PlacementLabel Placement = iota + 1
	// PlacementContainer prepends the box to the field container.
	PlacementContainer
)

// String returns the placement name.
func (p Placement) String() string {
	switch p {
	case PlacementLabel:
		return "label"
	case PlacementContainer:
		return "container"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Placement) MarshalText() ([]byte, error) {
	switch p {
	case PlacementLabel, PlacementContainer:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("render: unknown placement %d", int(p))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Placement) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "label":
		*p = PlacementLabel
	case "container":
		*p = PlacementContainer
	default:
		return fmt.Errorf("render: unknown placement %q", string(text))
	}
	return nil
}
