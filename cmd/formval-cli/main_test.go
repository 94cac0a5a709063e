package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formval/pkg/model"
)

const formYAML = `
id: signup
action: /signup
method: post
fields:
  - id: fullname
    label: Name
    markers: [required]
  - id: email
    type: email
    value: ada@example
    markers: [email]
`

const openapiYAML = `
openapi: 3.0.3
info:
  title: Signup
  version: 1.0.0
paths:
  /signup:
    post:
      operationId: createAccount
      summary: Create an account
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [email]
              properties:
                email:
                  type: string
                  format: email
      responses:
        "201":
          description: created
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDecodeFormDefaults(t *testing.T) {
	form, err := decodeForm([]byte(formYAML))
	if err != nil {
		t.Fatalf("decodeForm: %v", err)
	}
	want := []model.Field{
		{ID: "fullname", Name: "fullname", Type: model.FieldTypeText, Label: "Name", Markers: []string{"required"}},
		{ID: "email", Name: "email", Type: model.FieldTypeEmail, Value: "ada@example", Markers: []string{"email"}},
	}
	if diff := cmp.Diff(want, form.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	if _, err := decodeForm([]byte("id: empty\n")); err == nil {
		t.Fatalf("expected error for a form without fields")
	}
}

func TestRunSuggest(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"--suggest", "john@gmial.com"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "Did you mean john@gmail.com?" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunHTMLValidates(t *testing.T) {
	path := writeFile(t, "form.yaml", formYAML)

	var stdout, stderr bytes.Buffer
	args := []string{"--env-file", "", "--form", path, "--html", "--validate"}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	html := stdout.String()
	for _, fragment := range []string{`id="signup"`, "Please check this field", "autofocus"} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestRunListOperations(t *testing.T) {
	path := writeFile(t, "openapi.yaml", openapiYAML)

	var stdout, stderr bytes.Buffer
	args := []string{"--env-file", "", "--openapi", path, "--list-operations"}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "createAccount\tPOST /signup\tCreate an account" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunHTMLFromOpenAPI(t *testing.T) {
	path := writeFile(t, "openapi.yaml", openapiYAML)

	var stdout, stderr bytes.Buffer
	args := []string{"--env-file", "", "--openapi", path, "--operation", "createAccount", "--html"}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), `name="email"`) {
		t.Fatalf("expected email input in output:\n%s", stdout.String())
	}
}

func TestRunRequiresForm(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"--env-file", "", "--html"}, &stdout, &stderr); err == nil {
		t.Fatalf("expected missing form error")
	}
}
