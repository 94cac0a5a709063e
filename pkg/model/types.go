package model

// FieldType enumerates the control kinds the engine distinguishes.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePassword FieldType = "password"
	FieldTypeURL      FieldType = "url"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTel      FieldType = "tel"
	FieldTypeHidden   FieldType = "hidden"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTextArea FieldType = "textarea"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
)

// Field models a single control inside a form. Struct fields are annotated so
// form definitions can be decoded from JSON or YAML directly.
type Field struct {
	ID    string    `json:"id" yaml:"id"`
	Name  string    `json:"name" yaml:"name"`
	Type  FieldType `json:"type" yaml:"type"`
	Value string    `json:"value,omitempty" yaml:"value,omitempty"`
	// Checked only applies to radio and checkbox inputs.
	Checked bool `json:"checked,omitempty" yaml:"checked,omitempty"`
	// Markers carries the declarative rule tags (class names) applied to the
	// control, e.g. "required" or "email".
	Markers []string `json:"markers,omitempty" yaml:"markers,omitempty"`
	Label   string   `json:"label,omitempty" yaml:"label,omitempty"`
	// ValidationMessage is the text of the validation-message element scoped to
	// this control. Blank means none was found.
	ValidationMessage string   `json:"validationMessage,omitempty" yaml:"validationMessage,omitempty"`
	Options           []string `json:"options,omitempty" yaml:"options,omitempty"`
	// Elements are the markup elements inside the control's container. The
	// validation message selector is resolved against them when
	// ValidationMessage is blank.
	Elements []Element `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// Element is a text-bearing element scoped to a field's container.
type Element struct {
	ID      string   `json:"id,omitempty" yaml:"id,omitempty"`
	Classes []string `json:"classes,omitempty" yaml:"classes,omitempty"`
	Text    string   `json:"text" yaml:"text"`
}

// Form is the flat, ordered representation of one markup form. Field order is
// document order.
type Form struct {
	ID     string  `json:"id" yaml:"id"`
	Action string  `json:"action,omitempty" yaml:"action,omitempty"`
	Method string  `json:"method,omitempty" yaml:"method,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}
