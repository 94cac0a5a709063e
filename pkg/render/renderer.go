package render

import "context"

// Target identifies what a marker operation applies to: a single field, or a
// group of radio/checkbox inputs together with its label.
type Target struct {
	FieldID   string   `json:"fieldId"`
	GroupName string   `json:"groupName,omitempty"`
	Members   []string `json:"members,omitempty"`
	// Name is the field name used as the persistence key.
	Name string `json:"name,omitempty"`
}

// IsGroup reports whether the target is a radio/checkbox group.
func (t Target) IsGroup() bool {
	return t.GroupName != ""
}

// MarkerSink toggles the visual invalid indicator. Implementations must be
// idempotent: marking an already marked target is a no-op.
type MarkerSink interface {
	Mark(ctx context.Context, target Target, on bool) error
}

// MessageRenderer displays message boxes. Clear removes every box shown by
// previous runs.
type MessageRenderer interface {
	Name() string
	Clear(ctx context.Context) error
	Show(ctx context.Context, msg Message) error
}

// Focuser moves input focus to a field.
type Focuser interface {
	Focus(ctx context.Context, fieldID string) error
}

// StoredClearer drops persisted values for a field name.
type StoredClearer interface {
	ClearField(ctx context.Context, name string) error
}

// Sinks bundles the collaborators Apply drives. Nil members are skipped.
type Sinks struct {
	Markers  MarkerSink
	Messages MessageRenderer
	Focus    Focuser
	Stored   StoredClearer
}
