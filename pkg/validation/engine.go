package validation

import (
	"strings"

	"github.com/goliatone/go-formval/pkg/config"
	"github.com/goliatone/go-formval/pkg/model"
	"github.com/goliatone/go-formval/pkg/rules"
)

// Validate evaluates rs against form. Rules are visited in order; once a field
// fails, its remaining rules are skipped, so each invalid field appears exactly
// once with the kind of its first failing rule. Rules pointing at fields that
// do not exist are ignored.
func Validate(form model.Form, rs []rules.FieldRule, cfg config.Config) Result {
	result := Result{}
	failed := make(map[string]struct{}, len(rs))

	for _, rule := range rs {
		if _, done := failed[rule.FieldID]; done {
			continue
		}
		failure, ok := evaluate(form, rule, cfg)
		if ok {
			continue
		}
		failed[rule.FieldID] = struct{}{}
		result.InvalidFieldIDs = append(result.InvalidFieldIDs, failure.FieldID)
		result.Failures = append(result.Failures, failure)
	}

	result.OK = len(result.InvalidFieldIDs) == 0
	if !result.OK {
		result.FirstInvalidMessage = result.Failures[0].Message
	}
	return result
}

// ValidateForm classifies the form with cfg and validates it.
func ValidateForm(form model.Form, cfg config.Config) Result {
	return Validate(form, rules.Classify(form, cfg), cfg)
}

// Check reports whether a single rule passes. Unknown fields pass.
func Check(form model.Form, rule rules.FieldRule, cfg config.Config) bool {
	_, ok := evaluate(form, rule, cfg)
	return ok
}

// MessageFor resolves the message displayed for a field: its validation
// message when set, else the text of the element matching
// cfg.ValidationMessageSelector in the field's container, else the
// configured default.
func MessageFor(field model.Field, cfg config.Config) string {
	if msg := strings.TrimSpace(field.ValidationMessage); msg != "" {
		return msg
	}
	if msg, ok := field.ScopedText(cfg.ValidationMessageSelector); ok {
		return msg
	}
	return cfg.ErrorMessage()
}

func evaluate(form model.Form, rule rules.FieldRule, cfg config.Config) (Failure, bool) {
	if rule.Kind == rules.KindGroup {
		return evaluateGroup(form, rule, cfg)
	}

	field, found := form.Field(rule.FieldID)
	if !found {
		return Failure{}, true
	}

	var pass bool
	switch rule.Kind {
	case rules.KindRequired:
		pass = len(field.Value) > 0
	case rules.KindEmail:
		pass = matches(cfg.EmailPattern, field.Value)
	case rules.KindPassword:
		pass = matches(cfg.PasswordPattern, field.Value)
	case rules.KindPasswordConfirm:
		source, ok := rules.PasswordSource(form, cfg)
		pass = ok && field.Value == source.Value
	default:
		pass = true
	}
	if pass {
		return Failure{}, true
	}
	return Failure{
		FieldID: field.ID,
		Kind:    rule.Kind,
		Message: MessageFor(field, cfg),
	}, false
}

func evaluateGroup(form model.Form, rule rules.FieldRule, cfg config.Config) (Failure, bool) {
	name := rule.GroupName
	if name == "" {
		if field, ok := form.Field(rule.FieldID); ok {
			name = field.Name
		}
	}
	if name == "" {
		return Failure{}, true
	}

	var (
		members []string
		first   model.Field
		found   bool
	)
	for _, field := range form.Fields {
		if field.Name != name || !field.IsChoice() {
			continue
		}
		if field.Checked {
			return Failure{}, true
		}
		if !found {
			first, found = field, true
		}
		members = append(members, field.ID)
	}
	if !found {
		return Failure{}, true
	}
	return Failure{
		FieldID:   rule.FieldID,
		Kind:      rules.KindGroup,
		GroupName: name,
		Members:   members,
		Message:   MessageFor(first, cfg),
	}, false
}

func matches(m config.Matcher, value string) bool {
	if m == nil {
		return false
	}
	return m.MatchString(value)
}
