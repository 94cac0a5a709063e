package rules

import (
	"github.com/goliatone/go-formval/pkg/config"
	"github.com/goliatone/go-formval/pkg/model"
)

// Classify scans the form in document order and returns the rules declared by
// the configured markers.
//
// Text-like fields yield one rule per marker, ordered by Kind priority.
// Required radio and checkbox inputs collapse into a single KindGroup rule per
// distinct name, positioned at the group's first member. Choice inputs never
// receive field-level rules and fields without an ID are skipped since they
// cannot be reported.
func Classify(form model.Form, cfg config.Config) []FieldRule {
	var out []FieldRule
	seenGroups := make(map[string]struct{})

	for _, field := range form.Fields {
		if field.ID == "" && !field.IsChoice() {
			continue
		}
		if field.IsChoice() {
			if field.Name == "" || !field.HasMarker(cfg.RequiredMarker) {
				continue
			}
			if _, seen := seenGroups[field.Name]; seen {
				continue
			}
			seenGroups[field.Name] = struct{}{}
			members := form.GroupMembers(field.Name)
			groupID := field.ID
			if groupID == "" && len(members) > 0 {
				groupID = firstNonEmpty(members)
			}
			if groupID == "" {
				groupID = field.Name
			}
			out = append(out, FieldRule{FieldID: groupID, Kind: KindGroup, GroupName: field.Name})
			continue
		}

		if field.HasMarker(cfg.RequiredMarker) {
			out = append(out, FieldRule{FieldID: field.ID, Kind: KindRequired})
		}
		if field.HasMarker(cfg.EmailMarker) {
			out = append(out, FieldRule{FieldID: field.ID, Kind: KindEmail})
		}
		if field.HasMarker(cfg.PasswordMarker) {
			out = append(out, FieldRule{FieldID: field.ID, Kind: KindPassword})
		}
		if field.HasMarker(cfg.PasswordConfirmMarker) {
			out = append(out, FieldRule{FieldID: field.ID, Kind: KindPasswordConfirm})
		}
	}
	return out
}

// PasswordSource returns the first field carrying the password marker.
func PasswordSource(form model.Form, cfg config.Config) (model.Field, bool) {
	for _, field := range form.Fields {
		if field.IsTextLike() && field.HasMarker(cfg.PasswordMarker) {
			return field, true
		}
	}
	return model.Field{}, false
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
