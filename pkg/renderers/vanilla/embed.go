package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// FormTemplate is the template path rendered by Renderer.Render.
const FormTemplate = "templates/form"

// TemplatesFS exposes the embedded template bundle so hosts can extend or
// copy it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
