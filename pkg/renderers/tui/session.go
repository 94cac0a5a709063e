package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formval/pkg/controller"
	"github.com/goliatone/go-formval/pkg/model"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/suggest"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

// Form is the slice of controller.Controller a session drives.
type Form interface {
	Form() model.Form
	Change(ctx context.Context, fieldID, value string) error
	Toggle(ctx context.Context, fieldID string, checked bool) error
	Blur(ctx context.Context, fieldID string) (suggest.Suggestion, bool, error)
	SuggestionText(s suggest.Suggestion) string
	AcceptSuggestion(ctx context.Context, fieldID string, s suggest.Suggestion) error
	Submit(ctx context.Context) (controller.Outcome, error)
}

var _ Form = (*controller.Controller)(nil)

// Session fills a form interactively. The first pass prompts every field in
// document order; later passes only prompt fields that failed validation.
// Session is also a render.MessageRenderer so validation messages are
// printed as they are shown.
type Session struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	maxAttempts  int
	logger       *zap.Logger
}

var _ render.MessageRenderer = (*Session)(nil)

// New constructs a session with defaults (survey driver, JSON output).
func New(options ...Option) *Session {
	s := &Session{
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "✗ ", InfoPrefix: "✓ "},
		maxAttempts:  DefaultMaxAttempts,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Name reports the renderer identifier.
func (s *Session) Name() string {
	return Name
}

// Clear is a no-op; printed messages cannot be withdrawn.
func (s *Session) Clear(context.Context) error {
	return nil
}

// Show prints a validation message.
func (s *Session) Show(ctx context.Context, msg render.Message) error {
	return s.driver.Info(ctx, s.theme.ErrorPrefix+msg.FieldID+": "+msg.Text)
}

// Notify prints an informational line.
func (s *Session) Notify(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

// Run prompts, validates and re-prompts until the form validates or the
// attempt budget is spent. The returned outcome is the last submit outcome.
func (s *Session) Run(ctx context.Context, form Form) (controller.Outcome, error) {
	if ctx == nil {
		return controller.Outcome{}, fmt.Errorf("tui: context is required")
	}

	var (
		outcome controller.Outcome
		only    map[string]struct{}
	)
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := s.promptAll(ctx, form, only); err != nil {
			return outcome, err
		}

		var err error
		outcome, err = form.Submit(ctx)
		if err != nil {
			return outcome, err
		}
		if outcome.Result.OK {
			return outcome, nil
		}

		s.logger.Debug("tui: validation failed",
			zap.Int("attempt", attempt),
			zap.Strings("invalid", outcome.Result.InvalidFieldIDs),
		)
		only = make(map[string]struct{}, len(outcome.Result.InvalidFieldIDs))
		for _, id := range outcome.Result.InvalidFieldIDs {
			only[id] = struct{}{}
		}
	}
	return outcome, ErrTooManyAttempts
}

func (s *Session) promptAll(ctx context.Context, form Form, only map[string]struct{}) error {
	current := form.Form()
	for i := 0; i < len(current.Fields); i++ {
		field := current.Fields[i]
		if field.IsChoice() && field.Name != "" {
			members := groupAt(current, i)
			i += len(members) - 1
			if !selected(only, members[0].ID) {
				continue
			}
			if err := s.promptGroup(ctx, form, members); err != nil {
				return err
			}
			continue
		}
		if field.Type == model.FieldTypeHidden || field.ID == "" || !selected(only, field.ID) {
			continue
		}
		if err := s.promptField(ctx, form, field); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, form Form, field model.Field) error {
	var (
		value string
		err   error
	)
	prompt := Prompt{Message: promptLabel(field), Help: field.ValidationMessage, Default: field.Value}
	switch field.Type {
	case model.FieldTypePassword:
		value, err = s.driver.Secret(ctx, prompt)
	case model.FieldTypeTextArea:
		value, err = s.driver.Multiline(ctx, prompt)
	case model.FieldTypeSelect:
		prompt.Options = field.Options
		prompt.Selected = indicesOf(field.Options, []string{field.Value})
		var picked []int
		picked, err = s.driver.Choose(ctx, prompt, false)
		if err == nil && len(picked) > 0 && picked[0] < len(field.Options) {
			value = field.Options[picked[0]]
		}
	default:
		value, err = s.driver.Text(ctx, prompt)
	}
	if err != nil {
		return err
	}

	if err := form.Change(ctx, field.ID, value); err != nil {
		return err
	}
	suggestion, ok, err := form.Blur(ctx, field.ID)
	if err != nil || !ok {
		return err
	}
	accept, err := s.driver.Confirm(ctx, form.SuggestionText(suggestion), true)
	if err != nil {
		return err
	}
	if accept {
		return form.AcceptSuggestion(ctx, field.ID, suggestion)
	}
	return nil
}

// promptGroup asks a radio or checkbox group as one choice. Radios toggle
// only the picked member; checkboxes set every member.
func (s *Session) promptGroup(ctx context.Context, form Form, members []model.Field) error {
	first := members[0]
	prompt := Prompt{Message: promptLabel(first), Help: first.ValidationMessage}
	for i, member := range members {
		prompt.Options = append(prompt.Options, member.Value)
		if member.Checked {
			prompt.Selected = append(prompt.Selected, i)
		}
	}

	radio := first.Type == model.FieldTypeRadio
	picked, err := s.driver.Choose(ctx, prompt, !radio)
	if err != nil {
		return err
	}
	if radio {
		if len(picked) == 0 || picked[0] < 0 || picked[0] >= len(members) {
			return nil
		}
		return form.Toggle(ctx, members[picked[0]].ID, true)
	}

	chosen := make(map[int]struct{}, len(picked))
	for _, idx := range picked {
		chosen[idx] = struct{}{}
	}
	for i, member := range members {
		_, on := chosen[i]
		if err := form.Toggle(ctx, member.ID, on); err != nil {
			return err
		}
	}
	return nil
}

// Encode serializes the form values in the configured output format.
func (s *Session) Encode(form model.Form) ([]byte, error) {
	values := form.Values()
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(url.Values(values).Encode()), nil
	case OutputFormatPrettyText:
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var buf bytes.Buffer
		for _, key := range keys {
			fmt.Fprintf(&buf, "%s: %s\n", key, strings.Join(values[key], ", "))
		}
		return buf.Bytes(), nil
	default:
		return json.MarshalIndent(values, "", "  ")
	}
}

// ContentType reports the serialization format used by Encode.
func (s *Session) ContentType() string {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

func groupAt(form model.Form, start int) []model.Field {
	name := form.Fields[start].Name
	var out []model.Field
	for i := start; i < len(form.Fields); i++ {
		field := form.Fields[i]
		if !field.IsChoice() || field.Name != name {
			break
		}
		out = append(out, field)
	}
	return out
}

func promptLabel(field model.Field) string {
	for _, candidate := range []string{field.Label, field.Name, field.ID} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return "Value"
}

func selected(only map[string]struct{}, id string) bool {
	if only == nil {
		return true
	}
	_, ok := only[id]
	return ok
}
