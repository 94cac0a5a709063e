// Package model defines the flat form representation the validation engine,
// suggester and renderers operate on. A Form is an ordered list of Fields in
// document order; each Field carries its current value (or check state for
// radios and checkboxes), the marker tags that declare which rules apply, its
// label text and the text of the validation-message element scoped to it.
//
// Forms are plain values. Handlers that change field state (persistence
// restore, URL normalisation, accepting a suggestion) return updated copies via
// Clone so callers never observe partial mutation.
package model
