package validation_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-formval/pkg/config"
	"github.com/goliatone/go-formval/pkg/model"
	"github.com/goliatone/go-formval/pkg/validation"
)

var propertyValues = []string{"", "ada@example.com", "abcdefg1", "nope", "ABCDEFGH"}

// formFromCodes decodes generator output into a form. Low bits pick markers,
// higher bits pick the value; codes with bit 4 set become checkboxes in one of
// two required groups.
func formFromCodes(codes []int) model.Form {
	form := model.Form{ID: "generated"}
	for i, code := range codes {
		id := fmt.Sprintf("f%d", i)
		if code&16 != 0 {
			form.Fields = append(form.Fields, model.Field{
				ID:      id,
				Name:    fmt.Sprintf("group%d", code&1),
				Type:    model.FieldTypeCheckbox,
				Value:   id,
				Checked: code&32 != 0,
				Markers: []string{"required"},
			})
			continue
		}
		var markers []string
		if code&1 != 0 {
			markers = append(markers, "required")
		}
		if code&2 != 0 {
			markers = append(markers, "email")
		}
		if code&4 != 0 {
			markers = append(markers, "pass")
		}
		if code&8 != 0 {
			markers = append(markers, "pass_confirm")
		}
		form.Fields = append(form.Fields, model.Field{
			ID:      id,
			Name:    id,
			Type:    model.FieldTypeText,
			Value:   propertyValues[(code>>5)%len(propertyValues)],
			Markers: markers,
		})
	}
	return form
}

func TestValidateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	cfg := config.Defaults()

	properties.Property("invalid ids are unique", prop.ForAll(
		func(codes []int) bool {
			result := validation.ValidateForm(formFromCodes(codes), cfg)
			seen := make(map[string]struct{}, len(result.InvalidFieldIDs))
			for _, id := range result.InvalidFieldIDs {
				if _, dup := seen[id]; dup {
					return false
				}
				seen[id] = struct{}{}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 255)),
	))

	properties.Property("invalid ids follow document order", prop.ForAll(
		func(codes []int) bool {
			form := formFromCodes(codes)
			result := validation.ValidateForm(form, cfg)
			last := -1
			for _, id := range result.InvalidFieldIDs {
				idx := form.Index(id)
				if idx <= last {
					return false
				}
				last = idx
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 255)),
	))

	properties.Property("ok iff no invalid ids", prop.ForAll(
		func(codes []int) bool {
			result := validation.ValidateForm(formFromCodes(codes), cfg)
			return result.OK == (len(result.InvalidFieldIDs) == 0) &&
				len(result.InvalidFieldIDs) == len(result.Failures)
		},
		gen.SliceOf(gen.IntRange(0, 255)),
	))

	properties.Property("repeated runs agree", prop.ForAll(
		func(codes []int) bool {
			form := formFromCodes(codes)
			return reflect.DeepEqual(validation.ValidateForm(form, cfg), validation.ValidateForm(form, cfg))
		},
		gen.SliceOf(gen.IntRange(0, 255)),
	))

	properties.TestingRun(t)
}
