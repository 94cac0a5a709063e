package render

import (
	"github.com/goliatone/go-formval/pkg/config"
	"github.com/goliatone/go-formval/pkg/model"
	"github.com/goliatone/go-formval/pkg/rules"
	"github.com/goliatone/go-formval/pkg/validation"
)

const labelSeparator = " - "

// Mark is one marker operation.
type Mark struct {
	Target Target    `json:"target"`
	Op     Operation `json:"op"`
}

// Message is one message box to display.
type Message struct {
	FieldID   string    `json:"fieldId"`
	Text      string    `json:"text"`
	Placement Placement `json:"placement"`
	Class     string    `json:"class"`
}

// Display returns the text as shown: label placement prefixes a separator.
func (m Message) Display() string {
	if m.Placement == PlacementLabel {
		return labelSeparator + m.Text
	}
	return m.Text
}

// Plan is the ordered set of UI effects derived from a validation run. It
// always starts from a clean slate: ClearMessages is set and every
// rule-bearing target is marked off before failures are marked on.
type Plan struct {
	ClearMessages bool      `json:"clearMessages"`
	Marks         []Mark    `json:"marks,omitempty"`
	Messages      []Message `json:"messages,omitempty"`
	Focus         string    `json:"focus,omitempty"`
}

// PlanEffects turns a validation result into UI effects according to the
// presentation policy in cfg. In consecutive mode only the first failure gets
// a box and focus; otherwise every failure gets its own box.
func PlanEffects(form model.Form, rs []rules.FieldRule, result validation.Result, cfg config.Config) Plan {
	plan := Plan{ClearMessages: true}

	for _, target := range targets(form, rs) {
		plan.Marks = append(plan.Marks, Mark{Target: target, Op: OpMarkOff})
	}

	placement := PlacementContainer
	if cfg.AppendErrorToTitle {
		placement = PlacementLabel
	}

	for i, failure := range result.Failures {
		plan.Marks = append(plan.Marks, Mark{Target: failureTarget(form, failure), Op: OpMarkOn})

		if cfg.ConsecutiveErrors && i > 0 {
			continue
		}
		plan.Messages = append(plan.Messages, Message{
			FieldID:   failure.FieldID,
			Text:      failure.Message,
			Placement: placement,
			Class:     cfg.ErrorBoxClass,
		})
	}

	if cfg.ConsecutiveErrors && len(result.Failures) > 0 {
		plan.Focus = result.Failures[0].FieldID
	}
	return plan
}

// ResetPlan clears every message box, unmarks every rule-bearing target and
// drops the persisted value of every named field.
func ResetPlan(form model.Form, rs []rules.FieldRule) Plan {
	plan := Plan{ClearMessages: true}
	for _, target := range targets(form, rs) {
		plan.Marks = append(plan.Marks, Mark{Target: target, Op: OpMarkOff})
	}
	seen := make(map[string]struct{})
	for _, field := range form.Fields {
		if field.Name == "" {
			continue
		}
		if _, dup := seen[field.Name]; dup {
			continue
		}
		seen[field.Name] = struct{}{}
		plan.Marks = append(plan.Marks, Mark{
			Target: Target{FieldID: field.ID, Name: field.Name},
			Op:     OpClearStored,
		})
	}
	return plan
}

func targets(form model.Form, rs []rules.FieldRule) []Target {
	var out []Target
	seen := make(map[string]struct{}, len(rs))
	for _, rule := range rs {
		if _, dup := seen[rule.FieldID]; dup {
			continue
		}
		seen[rule.FieldID] = struct{}{}
		if rule.Kind == rules.KindGroup {
			out = append(out, Target{
				FieldID:   rule.FieldID,
				GroupName: rule.GroupName,
				Members:   form.GroupMembers(rule.GroupName),
				Name:      rule.GroupName,
			})
			continue
		}
		target := Target{FieldID: rule.FieldID}
		if field, ok := form.Field(rule.FieldID); ok {
			target.Name = field.Name
		}
		out = append(out, target)
	}
	return out
}

func failureTarget(form model.Form, failure validation.Failure) Target {
	if failure.Kind == rules.KindGroup {
		members := failure.Members
		if len(members) == 0 {
			members = form.GroupMembers(failure.GroupName)
		}
		return Target{
			FieldID:   failure.FieldID,
			GroupName: failure.GroupName,
			Members:   append([]string(nil), members...),
			Name:      failure.GroupName,
		}
	}
	target := Target{FieldID: failure.FieldID}
	if field, ok := form.Field(failure.FieldID); ok {
		target.Name = field.Name
	}
	return target
}
