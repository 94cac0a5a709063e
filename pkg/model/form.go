package model

import "strings"

const (
	httpPrefix      = "http://"
	schemeSeparator = "://"
)

// Clone returns a deep copy of the form.
func (f Form) Clone() Form {
	out := f
	if f.Fields == nil {
		return out
	}
	out.Fields = make([]Field, len(f.Fields))
	for i, field := range f.Fields {
		out.Fields[i] = field.Clone()
	}
	return out
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	if f.Markers != nil {
		out.Markers = append([]string(nil), f.Markers...)
	}
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	if f.Elements != nil {
		out.Elements = make([]Element, len(f.Elements))
		for i, el := range f.Elements {
			out.Elements[i] = el
			out.Elements[i].Classes = append([]string(nil), el.Classes...)
		}
	}
	return out
}

// Matches reports whether the element matches a simple selector: "#id",
// ".class" or a bare class name. Compound selectors never match.
func (e Element) Matches(selector string) bool {
	sel := strings.TrimSpace(selector)
	switch {
	case sel == "", strings.ContainsAny(sel, " >+~[:,"):
		return false
	case strings.HasPrefix(sel, "#"):
		return e.ID != "" && e.ID == sel[1:]
	}
	want := normalizeMarker(sel)
	for _, class := range e.Classes {
		if class == want {
			return true
		}
	}
	return false
}

// ScopedText returns the trimmed text of the first element matching
// selector that carries non-blank text.
func (f Field) ScopedText(selector string) (string, bool) {
	for _, el := range f.Elements {
		if !el.Matches(selector) {
			continue
		}
		if text := strings.TrimSpace(el.Text); text != "" {
			return text, true
		}
	}
	return "", false
}

// HasMarker reports whether the field carries the marker. Leading selector
// dots are ignored on both sides so ".required" and "required" match.
func (f Field) HasMarker(marker string) bool {
	want := normalizeMarker(marker)
	if want == "" {
		return false
	}
	for _, candidate := range f.Markers {
		if normalizeMarker(candidate) == want {
			return true
		}
	}
	return false
}

// IsChoice reports whether the field is a radio or checkbox input.
func (f Field) IsChoice() bool {
	return f.Type == FieldTypeRadio || f.Type == FieldTypeCheckbox
}

// IsTextLike reports whether the field holds a free-form value: text-like
// inputs, selects and textareas.
func (f Field) IsTextLike() bool {
	switch f.Type {
	case FieldTypeRadio, FieldTypeCheckbox:
		return false
	default:
		return true
	}
}

// Index returns the position of the field with the given ID, or -1.
func (f Form) Index(id string) int {
	if id == "" {
		return -1
	}
	for i, field := range f.Fields {
		if field.ID == id {
			return i
		}
	}
	return -1
}

// Field returns the field with the given ID.
func (f Form) Field(id string) (Field, bool) {
	idx := f.Index(id)
	if idx < 0 {
		return Field{}, false
	}
	return f.Fields[idx], true
}

// Lookup resolves a field by selector: "#id", ".marker" or a bare name/ID.
func (f Form) Lookup(selector string) (Field, bool) {
	sel := strings.TrimSpace(selector)
	switch {
	case sel == "":
		return Field{}, false
	case strings.HasPrefix(sel, "#"):
		return f.Field(sel[1:])
	case strings.HasPrefix(sel, "."):
		for _, field := range f.Fields {
			if field.HasMarker(sel) {
				return field, true
			}
		}
		return Field{}, false
	}
	if field, ok := f.Field(sel); ok {
		return field, true
	}
	for _, field := range f.Fields {
		if field.Name == sel {
			return field, true
		}
	}
	return Field{}, false
}

// GroupMembers returns the IDs of every field sharing the given name, in
// document order.
func (f Form) GroupMembers(name string) []string {
	if name == "" {
		return nil
	}
	var out []string
	for _, field := range f.Fields {
		if field.Name == name {
			out = append(out, field.ID)
		}
	}
	return out
}

// Values serialises the form the way a browser would: text-like fields always
// contribute their value, radios and checkboxes only when checked. Fields
// without a name are skipped.
func (f Form) Values() map[string][]string {
	out := make(map[string][]string)
	for _, field := range f.Fields {
		if field.Name == "" {
			continue
		}
		if field.IsChoice() {
			if field.Checked {
				out[field.Name] = append(out[field.Name], field.Value)
			}
			continue
		}
		out[field.Name] = append(out[field.Name], field.Value)
	}
	return out
}

// SetValue returns a copy of the form with the field's value replaced.
func (f Form) SetValue(id, value string) (Form, bool) {
	idx := f.Index(id)
	if idx < 0 {
		return f, false
	}
	out := f.Clone()
	out.Fields[idx].Value = value
	return out, true
}

// SetChecked returns a copy of the form with the field's check state
// replaced. Checking a radio unchecks its siblings.
func (f Form) SetChecked(id string, checked bool) (Form, bool) {
	idx := f.Index(id)
	if idx < 0 {
		return f, false
	}
	out := f.Clone()
	target := &out.Fields[idx]
	if target.Type == FieldTypeRadio && checked {
		for i := range out.Fields {
			if out.Fields[i].Type == FieldTypeRadio && out.Fields[i].Name == target.Name {
				out.Fields[i].Checked = false
			}
		}
	}
	target.Checked = checked
	return out, true
}

// NormalizeURL prefixes http:// to a non-empty value that carries no scheme.
func NormalizeURL(value string) string {
	if value == "" || strings.Contains(value, schemeSeparator) {
		return value
	}
	return httpPrefix + value
}

// NormalizeURLFields applies NormalizeURL to every url field.
func (f Form) NormalizeURLFields() Form {
	out := f.Clone()
	for i := range out.Fields {
		if out.Fields[i].Type == FieldTypeURL {
			out.Fields[i].Value = NormalizeURL(out.Fields[i].Value)
		}
	}
	return out
}

func normalizeMarker(marker string) string {
	return strings.TrimPrefix(strings.TrimSpace(marker), ".")
}
