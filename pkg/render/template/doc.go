// Package template defines the template engine seam used by the HTML
// renderers. Engines render named templates or inline template strings with
// arbitrary data and may expose custom filters.
package template
