package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formval/pkg/config"
	"github.com/goliatone/go-formval/pkg/model"
)

// ExtensionKey is the vendor extension read from property schemas.
const ExtensionKey = "x-formval"

// mediaTypes lists the request body content types tried, in order.
var mediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Operation summarises an operation that carries an ID.
type Operation struct {
	ID      string `json:"id"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary,omitempty"`
}

// extension is the decoded x-formval payload of a property.
type extension struct {
	Label   string `json:"label"`
	Message string `json:"message"`
	Widget  string `json:"widget"`
	Order   *int   `json:"order"`
	// Confirm names the password property this one must repeat.
	Confirm string `json:"confirm"`
}

// FormOption configures form derivation.
type FormOption func(*formOptions)

type formOptions struct {
	cfg      config.Config
	validate bool
}

// WithConfig sets the markers used on derived fields.
func WithConfig(cfg config.Config) FormOption {
	return func(o *formOptions) {
		o.cfg = cfg
	}
}

// WithoutValidation skips document validation.
func WithoutValidation() FormOption {
	return func(o *formOptions) {
		o.validate = false
	}
}

// Parse loads and validates raw document bytes.
func Parse(ctx context.Context, raw []byte, validate bool) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate document: %w", err)
		}
	}
	return doc, nil
}

// Operations lists every operation with an ID, sorted by ID.
func Operations(doc *openapi3.T) []Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	var ops []Operation
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID == "" {
				continue
			}
			ops = append(ops, Operation{
				ID:      op.OperationID,
				Method:  strings.ToUpper(method),
				Path:    path,
				Summary: op.Summary,
			})
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].ID < ops[j].ID })
	return ops
}

// FormFromOperation derives a form from the request body of operationID.
func FormFromOperation(ctx context.Context, raw []byte, operationID string, opts ...FormOption) (model.Form, error) {
	o := formOptions{cfg: config.Defaults(), validate: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	doc, err := Parse(ctx, raw, o.validate)
	if err != nil {
		return model.Form{}, err
	}

	var (
		found  *openapi3.Operation
		header Operation
	)
	for _, candidate := range Operations(doc) {
		if candidate.ID != operationID {
			continue
		}
		header = candidate
		found = doc.Paths.Find(candidate.Path).GetOperation(candidate.Method)
		break
	}
	if found == nil {
		return model.Form{}, fmt.Errorf("%w: %s", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(found)
	if schema == nil {
		return model.Form{}, fmt.Errorf("%w: %s", ErrNoRequestBody, operationID)
	}

	form := model.Form{
		ID:     operationID,
		Action: header.Path,
		Method: strings.ToLower(header.Method),
	}
	for _, prop := range orderedProperties(schema) {
		form.Fields = append(form.Fields, fieldsFor(prop, isRequired(schema, prop.name), o.cfg)...)
	}
	return form, nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	for _, mediaType := range mediaTypes {
		media := op.RequestBody.Value.Content.Get(mediaType)
		if media == nil || media.Schema == nil || media.Schema.Value == nil {
			continue
		}
		if len(media.Schema.Value.Properties) == 0 {
			continue
		}
		return media.Schema.Value
	}
	return nil
}

type property struct {
	name   string
	schema *openapi3.Schema
	ext    extension
}

// orderedProperties sorts by x-formval order, then by name.
func orderedProperties(schema *openapi3.Schema) []property {
	props := make([]property, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		props = append(props, property{name: name, schema: ref.Value, ext: readExtension(ref.Value)})
	}
	sort.SliceStable(props, func(i, j int) bool {
		oi, oj := props[i].ext.Order, props[j].ext.Order
		switch {
		case oi != nil && oj != nil && *oi != *oj:
			return *oi < *oj
		case oi != nil && oj == nil:
			return true
		case oi == nil && oj != nil:
			return false
		}
		return props[i].name < props[j].name
	})
	return props
}

func readExtension(schema *openapi3.Schema) extension {
	var ext extension
	raw, ok := schema.Extensions[ExtensionKey]
	if !ok || raw == nil {
		return ext
	}
	// Extension values arrive either decoded or as raw JSON.
	var payload []byte
	switch v := raw.(type) {
	case json.RawMessage:
		payload = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ext
		}
		payload = encoded
	}
	_ = json.Unmarshal(payload, &ext)
	return ext
}

func isRequired(schema *openapi3.Schema, name string) bool {
	for _, req := range schema.Required {
		if req == name {
			return true
		}
	}
	return false
}

func fieldsFor(prop property, required bool, cfg config.Config) []model.Field {
	base := model.Field{
		ID:                prop.name,
		Name:              prop.name,
		Type:              model.FieldTypeText,
		Label:             labelFor(prop),
		ValidationMessage: prop.ext.Message,
		Value:             defaultString(prop.schema.Default),
	}
	if required {
		base.Markers = append(base.Markers, cfg.RequiredMarker)
	}

	switch {
	case schemaIs(prop.schema, openapi3.TypeArray):
		if prop.schema.Items == nil || prop.schema.Items.Value == nil {
			return []model.Field{base}
		}
		return choiceGroup(base, enumStrings(prop.schema.Items.Value.Enum), model.FieldTypeCheckbox)
	case len(prop.schema.Enum) > 0:
		values := enumStrings(prop.schema.Enum)
		if prop.ext.Widget == "radio" {
			return choiceGroup(base, values, model.FieldTypeRadio)
		}
		base.Type = model.FieldTypeSelect
		base.Options = values
		return []model.Field{base}
	case schemaIs(prop.schema, openapi3.TypeBoolean):
		base.Type = model.FieldTypeCheckbox
		base.Checked = base.Value == "true"
		base.Value = "true"
		return []model.Field{base}
	case schemaIs(prop.schema, openapi3.TypeInteger), schemaIs(prop.schema, openapi3.TypeNumber):
		base.Type = model.FieldTypeNumber
		return []model.Field{base}
	}

	switch strings.ToLower(prop.schema.Format) {
	case "email":
		base.Type = model.FieldTypeEmail
		base.Markers = append(base.Markers, cfg.EmailMarker)
	case "password":
		base.Type = model.FieldTypePassword
		if prop.ext.Confirm != "" {
			base.Markers = append(base.Markers, cfg.PasswordConfirmMarker)
		} else {
			base.Markers = append(base.Markers, cfg.PasswordMarker)
		}
	case "uri", "url":
		base.Type = model.FieldTypeURL
	}

	switch prop.ext.Widget {
	case "textarea":
		base.Type = model.FieldTypeTextArea
	case "hidden":
		base.Type = model.FieldTypeHidden
	case "tel":
		base.Type = model.FieldTypeTel
	}
	return []model.Field{base}
}

// choiceGroup expands one property into a group of members sharing a name.
func choiceGroup(base model.Field, values []string, kind model.FieldType) []model.Field {
	selected := map[string]bool{}
	if base.Value != "" {
		for _, v := range strings.Split(base.Value, ",") {
			selected[strings.TrimSpace(v)] = true
		}
	}
	members := make([]model.Field, 0, len(values))
	for _, value := range values {
		member := base.Clone()
		member.ID = base.Name + "-" + value
		member.Type = kind
		member.Value = value
		member.Label = value
		member.Checked = selected[value]
		members = append(members, member)
	}
	return members
}

func labelFor(prop property) string {
	switch {
	case prop.ext.Label != "":
		return prop.ext.Label
	case prop.schema.Title != "":
		return prop.schema.Title
	}
	return prop.name
}

func schemaIs(schema *openapi3.Schema, kind string) bool {
	return schema.Type != nil && schema.Type.Is(kind)
}

func enumStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func defaultString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case []any:
		return strings.Join(enumStrings(v), ",")
	default:
		return fmt.Sprint(v)
	}
}
