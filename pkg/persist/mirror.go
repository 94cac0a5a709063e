package persist

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formval/pkg/model"
)

const listSeparator = ","

// Mirror copies field values to a Store on change and back into the form on
// init. Every method tolerates a nil Mirror or a nil Store and store errors
// are logged at debug level and otherwise ignored, so persistence never
// blocks validation or submission.
type Mirror struct {
	store     Store
	logger    *zap.Logger
	namespace string
}

// MirrorOption configures a Mirror.
type MirrorOption func(*Mirror)

// WithLogger sets the logger used for degraded store operations.
func WithLogger(logger *zap.Logger) MirrorOption {
	return func(m *Mirror) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithNamespace prefixes every key with "<namespace>:" so several forms can
// share a store. The default is no prefix, keying values by field name.
func WithNamespace(namespace string) MirrorOption {
	return func(m *Mirror) {
		m.namespace = strings.TrimSpace(namespace)
	}
}

// NewMirror creates a mirror over store.
func NewMirror(store Store, opts ...MirrorOption) *Mirror {
	m := &Mirror{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

func (m *Mirror) enabled() bool {
	return m != nil && m.store != nil
}

func (m *Mirror) key(name string) string {
	if m.namespace == "" {
		return name
	}
	return m.namespace + ":" + name
}

// Save stores the current value of the named field or group.
func (m *Mirror) Save(ctx context.Context, form model.Form, name string) {
	if !m.enabled() || name == "" {
		return
	}
	value, ok := Encode(form, name)
	if !ok {
		return
	}
	if err := m.store.Set(ctx, m.key(name), value); err != nil {
		m.logger.Debug("persist: save failed", zap.String("field", name), zap.Error(err))
	}
}

// SaveAll stores every named field of the form.
func (m *Mirror) SaveAll(ctx context.Context, form model.Form) {
	for _, name := range names(form) {
		m.Save(ctx, form, name)
	}
}

// Restore returns a copy of form with stored values applied. Empty stored
// values are ignored.
func (m *Mirror) Restore(ctx context.Context, form model.Form) model.Form {
	if !m.enabled() {
		return form
	}
	out := form
	for _, name := range names(form) {
		value, ok, err := m.store.Get(ctx, m.key(name))
		if err != nil {
			m.logger.Debug("persist: restore failed", zap.String("field", name), zap.Error(err))
			continue
		}
		if !ok || value == "" {
			continue
		}
		out = Decode(out, name, value)
	}
	return out
}

// Clear deletes the stored values of every named field.
func (m *Mirror) Clear(ctx context.Context, form model.Form) {
	for _, name := range names(form) {
		_ = m.ClearField(ctx, name)
	}
}

// ClearField deletes one stored value. It satisfies render.StoredClearer and
// always returns nil.
func (m *Mirror) ClearField(ctx context.Context, name string) error {
	if !m.enabled() || name == "" {
		return nil
	}
	if err := m.store.Delete(ctx, m.key(name)); err != nil {
		m.logger.Debug("persist: clear failed", zap.String("field", name), zap.Error(err))
	}
	return nil
}

// Encode computes the stored representation of the named field. Password
// fields and unknown names report false.
func Encode(form model.Form, name string) (string, bool) {
	var fields []model.Field
	for _, field := range form.Fields {
		if field.Name == name {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return "", false
	}

	switch fields[0].Type {
	case model.FieldTypePassword:
		return "", false
	case model.FieldTypeCheckbox:
		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			if field.Type == model.FieldTypeCheckbox && field.Checked {
				parts = append(parts, field.Value)
			} else {
				parts = append(parts, "")
			}
		}
		return strings.Join(parts, listSeparator), true
	case model.FieldTypeRadio:
		for _, field := range fields {
			if field.Checked {
				return field.Value, true
			}
		}
		return "", true
	default:
		return fields[0].Value, true
	}
}

// Decode applies a stored value to the named field or group. Checkbox and
// radio state is only ever switched on.
func Decode(form model.Form, name, value string) model.Form {
	out := form
	position := 0
	parts := strings.Split(value, listSeparator)
	for _, field := range form.Fields {
		if field.Name != name {
			continue
		}
		switch field.Type {
		case model.FieldTypePassword:
		case model.FieldTypeCheckbox:
			if position < len(parts) && parts[position] != "" && parts[position] == field.Value {
				out, _ = out.SetChecked(field.ID, true)
			}
		case model.FieldTypeRadio:
			if field.Value == value {
				out, _ = out.SetChecked(field.ID, true)
			}
		default:
			out, _ = out.SetValue(field.ID, value)
		}
		position++
	}
	return out
}

func names(form model.Form) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, field := range form.Fields {
		if field.Name == "" {
			continue
		}
		if _, dup := seen[field.Name]; dup {
			continue
		}
		seen[field.Name] = struct{}{}
		out = append(out, field.Name)
	}
	return out
}
