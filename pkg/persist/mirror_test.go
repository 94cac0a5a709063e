package persist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formval/pkg/model"
	"github.com/goliatone/go-formval/pkg/persist"
)

func preferencesForm() model.Form {
	return model.Form{Fields: []model.Field{
		{ID: "name", Name: "name", Type: model.FieldTypeText, Value: "Ada"},
		{ID: "pw", Name: "pw", Type: model.FieldTypePassword, Value: "secret123"},
		{ID: "plan", Name: "plan", Type: model.FieldTypeSelect, Value: "pro", Options: []string{"free", "pro"}},
		{ID: "r1", Name: "size", Type: model.FieldTypeRadio, Value: "s"},
		{ID: "r2", Name: "size", Type: model.FieldTypeRadio, Value: "m", Checked: true},
		{ID: "t1", Name: "topics", Type: model.FieldTypeCheckbox, Value: "go", Checked: true},
		{ID: "t2", Name: "topics", Type: model.FieldTypeCheckbox, Value: "rust"},
		{ID: "t3", Name: "topics", Type: model.FieldTypeCheckbox, Value: "zig", Checked: true},
	}}
}

func blank(form model.Form) model.Form {
	out := form.Clone()
	for i := range out.Fields {
		if out.Fields[i].IsChoice() {
			out.Fields[i].Checked = false
		} else {
			out.Fields[i].Value = ""
		}
	}
	return out
}

func TestEncode(t *testing.T) {
	form := preferencesForm()
	cases := []struct {
		name string
		want string
		ok   bool
	}{
		{name: "name", want: "Ada", ok: true},
		{name: "pw", ok: false},
		{name: "plan", want: "pro", ok: true},
		{name: "size", want: "m", ok: true},
		{name: "topics", want: "go,,zig", ok: true},
		{name: "missing", ok: false},
	}
	for _, tc := range cases {
		got, ok := persist.Encode(form, tc.name)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Encode(%q) = %q, %v; want %q, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMirrorRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemoryStore()
	mirror := persist.NewMirror(store, persist.WithNamespace("signup"))

	form := preferencesForm()
	mirror.SaveAll(ctx, form)
	if store.Len() != 4 {
		t.Fatalf("expected 4 stored keys, got %d", store.Len())
	}
	if v, ok, _ := store.Get(ctx, "signup:topics"); !ok || v != "go,,zig" {
		t.Fatalf("unexpected stored topics %q (%v)", v, ok)
	}

	restored := mirror.Restore(ctx, blank(form))
	want := form.Clone()
	want.Fields[1].Value = ""
	if diff := cmp.Diff(want, restored); diff != "" {
		t.Fatalf("restored form mismatch (-want +got):\n%s", diff)
	}

	mirror.Clear(ctx, form)
	if store.Len() != 0 {
		t.Fatalf("expected store to be empty after clear, got %d", store.Len())
	}
}

func TestRestoreSkipsEmptyValues(t *testing.T) {
	ctx := context.Background()
	store := persist.NewMemoryStore()
	_ = store.Set(ctx, "name", "")
	mirror := persist.NewMirror(store)

	form := model.Form{Fields: []model.Field{{ID: "name", Name: "name", Type: model.FieldTypeText, Value: "kept"}}}
	if got := mirror.Restore(ctx, form); got.Fields[0].Value != "kept" {
		t.Fatalf("empty stored value should be ignored, got %q", got.Fields[0].Value)
	}
}

func TestNilMirrorIsInert(t *testing.T) {
	ctx := context.Background()
	var mirror *persist.Mirror
	form := preferencesForm()

	mirror.Save(ctx, form, "name")
	mirror.Clear(ctx, form)
	if err := mirror.ClearField(ctx, "name"); err != nil {
		t.Fatalf("nil mirror ClearField: %v", err)
	}
	if diff := cmp.Diff(form, mirror.Restore(ctx, form)); diff != "" {
		t.Fatalf("nil mirror changed the form (-want +got):\n%s", diff)
	}

	empty := persist.NewMirror(nil)
	empty.SaveAll(ctx, form)
	if diff := cmp.Diff(form, empty.Restore(ctx, form)); diff != "" {
		t.Fatalf("nil store changed the form (-want +got):\n%s", diff)
	}
}

type brokenStore struct{}

var errBroken = errors.New("store offline")

func (brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (brokenStore) Set(context.Context, string, string) error         { return errBroken }
func (brokenStore) Delete(context.Context, string) error              { return errBroken }

func TestStoreErrorsDegradeToDebugLogs(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	mirror := persist.NewMirror(brokenStore{}, persist.WithLogger(zap.New(core)))
	form := preferencesForm()

	mirror.Save(ctx, form, "name")
	restored := mirror.Restore(ctx, form)
	if err := mirror.ClearField(ctx, "name"); err != nil {
		t.Fatalf("ClearField should swallow store errors, got %v", err)
	}

	if diff := cmp.Diff(form, restored); diff != "" {
		t.Fatalf("failed restore changed the form (-want +got):\n%s", diff)
	}
	if logs.FilterMessage("persist: save failed").Len() != 1 {
		t.Fatalf("expected one save failure log, got %v", logs.All())
	}
	if logs.FilterMessage("persist: restore failed").Len() != 5 {
		t.Fatalf("expected a restore failure log per field name, got %d", logs.FilterMessage("persist: restore failed").Len())
	}
	if logs.FilterMessage("persist: clear failed").Len() != 1 {
		t.Fatalf("expected one clear failure log")
	}
}
