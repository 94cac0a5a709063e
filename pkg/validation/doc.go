// Package validation implements the decision half of form validation: given a
// form, its classified rules and a configuration it reports which fields are
// invalid, in document order and without duplicates. It never mutates the
// form and never drives UI effects; see package render for turning a Result
// into marker and message-box operations.
package validation
