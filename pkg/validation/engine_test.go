package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formval/pkg/config"
	"github.com/goliatone/go-formval/pkg/model"
	"github.com/goliatone/go-formval/pkg/rules"
	"github.com/goliatone/go-formval/pkg/validation"
)

func signupForm() model.Form {
	return model.Form{
		ID:     "signup",
		Action: "/signup",
		Fields: []model.Field{
			{ID: "fullname", Name: "fullname", Type: model.FieldTypeText, Markers: []string{"required"}, Label: "Name"},
			{ID: "email", Name: "email", Type: model.FieldTypeEmail, Markers: []string{"required", "email"}, Label: "Email", ValidationMessage: "Enter a valid email"},
			{ID: "pass", Name: "pass", Type: model.FieldTypePassword, Markers: []string{"pass"}, Label: "Password"},
			{ID: "pass2", Name: "pass2", Type: model.FieldTypePassword, Markers: []string{"pass_confirm"}, Label: "Confirm"},
			{ID: "plan-free", Name: "plan", Type: model.FieldTypeRadio, Value: "free", Markers: []string{"required"}},
			{ID: "plan-pro", Name: "plan", Type: model.FieldTypeRadio, Value: "pro", Markers: []string{"required"}},
			{ID: "plan-team", Name: "plan", Type: model.FieldTypeRadio, Value: "team", Markers: []string{"required"}},
		},
	}
}

func validForm() model.Form {
	form := signupForm()
	form, _ = form.SetValue("fullname", "Ada")
	form, _ = form.SetValue("email", "ada@example.com")
	form, _ = form.SetValue("pass", "abcdefg1")
	form, _ = form.SetValue("pass2", "abcdefg1")
	form, _ = form.SetChecked("plan-pro", true)
	return form
}

func TestValidateValidForm(t *testing.T) {
	result := validation.ValidateForm(validForm(), config.Defaults())
	if !result.OK {
		t.Fatalf("expected valid form, got %+v", result)
	}
	if len(result.InvalidFieldIDs) != 0 || result.FirstInvalidMessage != "" {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestValidateEmptyFormReportsDocumentOrder(t *testing.T) {
	cfg := config.Defaults()
	form := signupForm()
	form, _ = form.SetValue("pass2", "mismatch")

	result := validation.ValidateForm(form, cfg)
	if result.OK {
		t.Fatalf("expected invalid form")
	}

	wantIDs := []string{"fullname", "email", "pass", "pass2", "plan-free"}
	if diff := cmp.Diff(wantIDs, result.InvalidFieldIDs); diff != "" {
		t.Fatalf("invalid ids mismatch (-want +got):\n%s", diff)
	}

	wantKinds := []rules.Kind{rules.KindRequired, rules.KindRequired, rules.KindPassword, rules.KindPasswordConfirm, rules.KindGroup}
	var gotKinds []rules.Kind
	for _, failure := range result.Failures {
		gotKinds = append(gotKinds, failure.Kind)
	}
	if diff := cmp.Diff(wantKinds, gotKinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if result.FirstInvalidMessage != cfg.ErrorMessage() {
		t.Fatalf("expected default message, got %q", result.FirstInvalidMessage)
	}

	group, ok := result.Failure("plan-free")
	if !ok {
		t.Fatalf("expected group failure")
	}
	if diff := cmp.Diff([]string{"plan-free", "plan-pro", "plan-team"}, group.Members); diff != "" {
		t.Fatalf("group members mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateRequiredWinsOverEmail(t *testing.T) {
	form := validForm()
	form, _ = form.SetValue("email", "")

	result := validation.ValidateForm(form, config.Defaults())
	failure, ok := result.Failure("email")
	if !ok {
		t.Fatalf("expected email failure")
	}
	if failure.Kind != rules.KindRequired {
		t.Fatalf("expected required failure, got %s", failure.Kind)
	}
	if failure.Message != "Enter a valid email" {
		t.Fatalf("expected scoped validation message, got %q", failure.Message)
	}

	form, _ = form.SetValue("email", "not-an-email")
	result = validation.ValidateForm(form, config.Defaults())
	failure, _ = result.Failure("email")
	if failure.Kind != rules.KindEmail {
		t.Fatalf("expected email failure once value present, got %s", failure.Kind)
	}
}

func TestValidateEmailOnlyEmptyFailsAsEmail(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "email", Name: "email", Type: model.FieldTypeEmail, Markers: []string{"email"}},
	}}
	result := validation.ValidateForm(form, config.Defaults())
	failure, ok := result.Failure("email")
	if !ok || failure.Kind != rules.KindEmail {
		t.Fatalf("expected email failure, got %+v", result)
	}
}

func TestValidatePasswordRule(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"abcdefg1", true},
		{"abcdefg", false},
		{"abc123", false},
	}
	for _, tc := range cases {
		form := model.Form{Fields: []model.Field{
			{ID: "pass", Type: model.FieldTypePassword, Value: tc.value, Markers: []string{"pass"}},
		}}
		result := validation.ValidateForm(form, config.Defaults())
		if result.OK != tc.valid {
			t.Errorf("password %q: want valid=%v, got %+v", tc.value, tc.valid, result)
		}
	}
}

func TestValidatePasswordConfirm(t *testing.T) {
	cases := []struct {
		name     string
		password string
		confirm  string
		valid    bool
	}{
		{"equal", "abcdefg1", "abcdefg1", true},
		{"different", "abcdefg1", "abcdefg2", false},
		{"case sensitive", "abcdefg1", "ABCDEFG1", false},
		{"empty vs empty", "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := model.Form{Fields: []model.Field{
				{ID: "pass", Type: model.FieldTypePassword, Value: tc.password, Markers: []string{"pass"}},
				{ID: "confirm", Type: model.FieldTypePassword, Value: tc.confirm, Markers: []string{"pass_confirm"}},
			}}
			rs := []rules.FieldRule{{FieldID: "confirm", Kind: rules.KindPasswordConfirm}}
			result := validation.Validate(form, rs, config.Defaults())
			if result.OK != tc.valid {
				t.Fatalf("want valid=%v, got %+v", tc.valid, result)
			}
		})
	}
}

func TestValidatePasswordConfirmWithoutPasswordFieldFails(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "confirm", Type: model.FieldTypePassword, Markers: []string{"pass_confirm"}},
	}}
	if result := validation.ValidateForm(form, config.Defaults()); result.OK {
		t.Fatalf("expected confirm without password field to fail")
	}
}

func TestValidateGroupReportedOnce(t *testing.T) {
	fields := make([]model.Field, 0, 6)
	for _, id := range []string{"t1", "t2", "t3", "t4", "t5", "t6"} {
		fields = append(fields, model.Field{ID: id, Name: "topics", Type: model.FieldTypeCheckbox, Value: id, Markers: []string{"required"}})
	}
	form := model.Form{Fields: fields}

	result := validation.ValidateForm(form, config.Defaults())
	if diff := cmp.Diff([]string{"t1"}, result.InvalidFieldIDs); diff != "" {
		t.Fatalf("invalid ids mismatch (-want +got):\n%s", diff)
	}

	form, _ = form.SetChecked("t4", true)
	if result := validation.ValidateForm(form, config.Defaults()); !result.OK {
		t.Fatalf("expected group satisfied by one checked member, got %+v", result)
	}
}

func TestValidateDuplicateRulesDoNotDuplicateIDs(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "x", Type: model.FieldTypeText},
	}}
	rs := []rules.FieldRule{
		{FieldID: "x", Kind: rules.KindRequired},
		{FieldID: "x", Kind: rules.KindEmail},
		{FieldID: "x", Kind: rules.KindRequired},
		{FieldID: "missing", Kind: rules.KindRequired},
	}
	result := validation.Validate(form, rs, config.Defaults())
	if diff := cmp.Diff([]string{"x"}, result.InvalidFieldIDs); diff != "" {
		t.Fatalf("invalid ids mismatch (-want +got):\n%s", diff)
	}
	if result.Failures[0].Kind != rules.KindRequired {
		t.Fatalf("expected first failing rule to win, got %s", result.Failures[0].Kind)
	}
}

func TestValidateDoesNotMutateForm(t *testing.T) {
	form := signupForm()
	before := form.Clone()
	validation.ValidateForm(form, config.Defaults())
	if diff := cmp.Diff(before, form); diff != "" {
		t.Fatalf("form mutated (-before +after):\n%s", diff)
	}
}

func TestValidateRepeatedRunsAreStable(t *testing.T) {
	form := signupForm()
	cfg := config.Defaults()
	first := validation.ValidateForm(form, cfg)
	second := validation.ValidateForm(form, cfg)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("results differ between runs (-first +second):\n%s", diff)
	}
}

func TestCheckSingleRule(t *testing.T) {
	form := validForm()
	cfg := config.Defaults()
	if !validation.Check(form, rules.FieldRule{FieldID: "email", Kind: rules.KindEmail}, cfg) {
		t.Fatalf("expected email rule to pass")
	}
	if !validation.Check(form, rules.FieldRule{FieldID: "ghost", Kind: rules.KindRequired}, cfg) {
		t.Fatalf("expected unknown field to pass")
	}
}

func TestMessageForUsesValidationMessageSelector(t *testing.T) {
	field := model.Field{
		ID:      "fullname",
		Type:    model.FieldTypeText,
		Markers: []string{"required"},
		Elements: []model.Element{
			{Classes: []string{"val-message"}, Text: "Default selector text"},
			{ID: "name-hint", Classes: []string{"hint"}, Text: "  Tell us your name  "},
		},
	}

	cases := []struct {
		name     string
		selector string
		field    model.Field
		want     string
	}{
		{"default selector", config.DefaultValidationMessageSelector, field, "Default selector text"},
		{"custom class selector", ".hint", field, "Tell us your name"},
		{"id selector", "#name-hint", field, "Tell us your name"},
		{"no match falls back", ".missing", field, config.DefaultErrorMessage},
		{"direct message wins", ".hint", func() model.Field {
			f := field.Clone()
			f.ValidationMessage = "Direct"
			return f
		}(), "Direct"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.MustNew(config.WithValidationMessageSelector(tc.selector))
			if got := validation.MessageFor(tc.field, cfg); got != tc.want {
				t.Fatalf("MessageFor = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidateReportsSelectedMessage(t *testing.T) {
	form := model.Form{Fields: []model.Field{{
		ID:       "fullname",
		Name:     "fullname",
		Type:     model.FieldTypeText,
		Markers:  []string{"required"},
		Elements: []model.Element{{Classes: []string{"hint"}, Text: "Name please"}},
	}}}
	cfg := config.MustNew(config.WithValidationMessageSelector(".hint"))

	result := validation.ValidateForm(form, cfg)
	if result.OK || result.FirstInvalidMessage != "Name please" {
		t.Fatalf("unexpected result %+v", result)
	}
}
