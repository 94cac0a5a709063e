// Package formval validates forms on submit. Declarative markers on fields
// drive required, email, password and confirmation checks; the first failing
// rule per field wins and a pure result is turned into marker, message and
// focus effects.
//
// The root package wires the pieces together. Lower level packages can be
// used directly:
//
//   - pkg/config: immutable options, YAML and FORMVAL_* env loading
//   - pkg/rules, pkg/validation: marker classification and the engine
//   - pkg/suggest: email domain suggestions
//   - pkg/render: effect planning and sinks
//   - pkg/controller: event handling, persistence and async submission
//   - pkg/openapi: forms derived from OpenAPI request bodies
package formval
