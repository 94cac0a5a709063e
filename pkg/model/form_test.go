package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formval/pkg/model"
)

func sample() model.Form {
	return model.Form{
		ID: "signup",
		Fields: []model.Field{
			{ID: "fullname", Name: "fullname", Type: model.FieldTypeText, Value: "Ada", Markers: []string{"required"}},
			{ID: "site", Name: "site", Type: model.FieldTypeURL, Value: "example.com"},
			{ID: "c1", Name: "colour", Type: model.FieldTypeRadio, Value: "red", Checked: true},
			{ID: "c2", Name: "colour", Type: model.FieldTypeRadio, Value: "blue"},
			{ID: "t1", Name: "topics", Type: model.FieldTypeCheckbox, Value: "go", Checked: true},
			{ID: "t2", Name: "topics", Type: model.FieldTypeCheckbox, Value: "js", Checked: true},
			{ID: "anon", Type: model.FieldTypeText, Value: "dropped"},
		},
	}
}

func TestCloneIsDeep(t *testing.T) {
	form := sample()
	clone := form.Clone()
	clone.Fields[0].Markers[0] = "changed"
	clone.Fields[0].Value = "Grace"

	if form.Fields[0].Markers[0] != "required" || form.Fields[0].Value != "Ada" {
		t.Fatalf("clone mutated the original: %+v", form.Fields[0])
	}
}

func TestHasMarkerIgnoresSelectorDot(t *testing.T) {
	field := model.Field{Markers: []string{".required", "email"}}
	for _, marker := range []string{"required", ".required", ".email", "email"} {
		if !field.HasMarker(marker) {
			t.Errorf("expected marker %q", marker)
		}
	}
	if field.HasMarker("pass") || field.HasMarker("") {
		t.Errorf("unexpected marker match")
	}
}

func TestLookup(t *testing.T) {
	form := sample()
	cases := []struct {
		selector string
		wantID   string
		found    bool
	}{
		{"#fullname", "fullname", true},
		{".required", "fullname", true},
		{"colour", "c1", true},
		{"site", "site", true},
		{"#missing", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		field, ok := form.Lookup(tc.selector)
		if ok != tc.found || field.ID != tc.wantID {
			t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tc.selector, field.ID, ok, tc.wantID, tc.found)
		}
	}
}

func TestValuesSerialisesLikeABrowser(t *testing.T) {
	want := map[string][]string{
		"fullname": {"Ada"},
		"site":     {"example.com"},
		"colour":   {"red"},
		"topics":   {"go", "js"},
	}
	if diff := cmp.Diff(want, sample().Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestSetCheckedRadioUnchecksSiblings(t *testing.T) {
	form, ok := sample().SetChecked("c2", true)
	if !ok {
		t.Fatalf("SetChecked: field not found")
	}
	c1, _ := form.Field("c1")
	c2, _ := form.Field("c2")
	if c1.Checked || !c2.Checked {
		t.Fatalf("unexpected radio state c1=%v c2=%v", c1.Checked, c2.Checked)
	}

	form, _ = form.SetChecked("t1", false)
	if got := form.Values()["topics"]; !cmp.Equal(got, []string{"js"}) {
		t.Fatalf("unexpected topics %v", got)
	}

	if _, ok := form.SetChecked("missing", true); ok {
		t.Fatalf("expected missing field")
	}
}

func TestSetValueReturnsCopy(t *testing.T) {
	original := sample()
	updated, ok := original.SetValue("fullname", "Grace")
	if !ok {
		t.Fatalf("SetValue: field not found")
	}
	if f, _ := original.Field("fullname"); f.Value != "Ada" {
		t.Fatalf("original mutated: %q", f.Value)
	}
	if f, _ := updated.Field("fullname"); f.Value != "Grace" {
		t.Fatalf("update lost: %q", f.Value)
	}
}

func TestGroupMembers(t *testing.T) {
	if diff := cmp.Diff([]string{"t1", "t2"}, sample().GroupMembers("topics")); diff != "" {
		t.Fatalf("members mismatch (-want +got):\n%s", diff)
	}
	if got := sample().GroupMembers(""); got != nil {
		t.Fatalf("expected nil for blank name, got %v", got)
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"":                    "",
		"example.com":         "http://example.com",
		"https://example.com": "https://example.com",
		"ftp://files":         "ftp://files",
	}
	for in, want := range cases {
		if got := model.NormalizeURL(in); got != want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", in, got, want)
		}
	}

	form := sample().NormalizeURLFields()
	if f, _ := form.Field("site"); f.Value != "http://example.com" {
		t.Fatalf("url field not normalised: %q", f.Value)
	}
	if f, _ := form.Field("fullname"); f.Value != "Ada" {
		t.Fatalf("text field changed: %q", f.Value)
	}
}

func TestDecodeYAML(t *testing.T) {
	raw := `
id: contact
method: post
fields:
  - id: email
    name: email
    type: email
    markers: [required, email]
    validationMessage: Enter your email
`
	var form model.Form
	if err := yaml.Unmarshal([]byte(raw), &form); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := model.Form{
		ID:     "contact",
		Method: "post",
		Fields: []model.Field{{
			ID: "email", Name: "email", Type: model.FieldTypeEmail,
			Markers:           []string{"required", "email"},
			ValidationMessage: "Enter your email",
		}},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestElementMatches(t *testing.T) {
	el := model.Element{ID: "hint", Classes: []string{"val-message", "muted"}, Text: "x"}
	cases := map[string]bool{
		".val-message":     true,
		"muted":            true,
		"#hint":            true,
		"#other":           false,
		".missing":         false,
		"":                 false,
		"div .val-message": false,
	}
	for selector, want := range cases {
		if got := el.Matches(selector); got != want {
			t.Errorf("Matches(%q) = %v, want %v", selector, got, want)
		}
	}
}

func TestCloneCopiesElements(t *testing.T) {
	field := model.Field{ID: "a", Elements: []model.Element{{Classes: []string{"hint"}, Text: "Hi"}}}
	clone := field.Clone()
	clone.Elements[0].Classes[0] = "changed"
	clone.Elements[0].Text = "Bye"
	if text, ok := field.ScopedText(".hint"); !ok || text != "Hi" {
		t.Fatalf("clone mutated the original: %+v", field.Elements)
	}
}
