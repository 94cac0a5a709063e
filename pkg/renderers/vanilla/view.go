package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formval/pkg/model"
	"github.com/goliatone/go-formval/pkg/render"
)

type box struct {
	Class string `json:"class"`
	Text  string `json:"text"`
}

type member struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Value      string   `json:"value"`
	Checked    bool     `json:"checked"`
	Focus      bool     `json:"focus"`
	InputClass []string `json:"input_class"`
}

type item struct {
	Group          bool     `json:"group"`
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Value          string   `json:"value"`
	Label          string   `json:"label"`
	Focus          bool     `json:"focus"`
	Options        []string `json:"options"`
	Members        []member `json:"members"`
	ContainerClass []string `json:"container_class"`
	LabelClass     []string `json:"label_class"`
	InputClass     []string `json:"input_class"`
	ContainerBoxes []box    `json:"container_boxes"`
	LabelBoxes     []box    `json:"label_boxes"`
}

func formView(form model.Form) map[string]any {
	method := strings.ToLower(strings.TrimSpace(form.Method))
	if method == "" {
		method = "post"
	}
	return map[string]any{
		"id":     form.ID,
		"action": form.Action,
		"method": method,
	}
}

func themeView(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"style":   cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if strings.TrimSpace(key) == "" || value == "" {
			continue
		}
		parts = append(parts, key+": "+value)
	}
	return strings.Join(parts, "; ")
}

// items groups consecutive choice inputs sharing a name into one fieldset and
// attaches the current marks and boxes. Callers hold r.mu.
func (r *Renderer) items(form model.Form) []item {
	var out []item
	for i := 0; i < len(form.Fields); i++ {
		field := form.Fields[i]
		if field.IsChoice() && field.Name != "" {
			grp := item{
				Group:          true,
				ID:             field.ID,
				Name:           field.Name,
				Type:           string(field.Type),
				Label:          field.Label,
				ContainerClass: []string{"formval-field", "formval-group"},
				LabelClass:     r.labelClasses(field, r.isMarked(groupKey(field.Name))),
			}
			for ; i < len(form.Fields); i++ {
				next := form.Fields[i]
				if !next.IsChoice() || next.Name != field.Name {
					break
				}
				m := member{
					ID:      next.ID,
					Name:    next.Name,
					Type:    string(next.Type),
					Value:   next.Value,
					Checked: next.Checked,
					Focus:   next.ID != "" && next.ID == r.focus,
				}
				if r.isMarked(next.ID) {
					m.InputClass = strings.Fields(r.errorClass)
				}
				grp.Members = append(grp.Members, m)
				r.attachBoxes(&grp, next.ID)
			}
			i--
			out = append(out, grp)
			continue
		}

		it := item{
			ID:             field.ID,
			Name:           field.Name,
			Type:           string(field.Type),
			Value:          field.Value,
			Label:          field.Label,
			Focus:          field.ID != "" && field.ID == r.focus,
			Options:        field.Options,
			ContainerClass: []string{"formval-field"},
			LabelClass:     r.labelClasses(field, r.isMarked(field.ID)),
		}
		if r.isMarked(field.ID) {
			it.InputClass = strings.Fields(r.errorClass)
		}
		r.attachBoxes(&it, field.ID)
		out = append(out, it)
	}
	return out
}

func (r *Renderer) labelClasses(field model.Field, invalid bool) []string {
	var classes []string
	if field.HasMarker(r.cfg.RequiredMarker) {
		classes = append(classes, r.requiredClass)
	}
	if invalid {
		classes = append(classes, strings.Fields(r.errorClass)...)
	}
	return classes
}

func (r *Renderer) attachBoxes(it *item, fieldID string) {
	if fieldID == "" {
		return
	}
	for _, msg := range r.boxes {
		if msg.FieldID != fieldID {
			continue
		}
		b := box{Class: msg.Class, Text: msg.Display()}
		if msg.Placement == render.PlacementLabel && it.Label != "" {
			it.LabelBoxes = append(it.LabelBoxes, b)
			continue
		}
		b.Text = msg.Text
		it.ContainerBoxes = append(it.ContainerBoxes, b)
	}
}

func (r *Renderer) isMarked(key string) bool {
	_, ok := r.marked[key]
	return ok
}
