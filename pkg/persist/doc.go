// Package persist mirrors form field values into a key/value store so they
// survive reloads. Values are keyed by field name; checkbox groups are stored
// as a positional comma separated list with blanks for unchecked members and
// radio groups as the checked member's value.
package persist
