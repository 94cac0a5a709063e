// Package config holds the immutable per-form configuration shared by the
// validation engine, the suggester and the controller. A Config is built once
// from Defaults with functional options (New) or decoded from YAML and
// FORMVAL_* environment variables (Load, LoadFile) and is then passed by value.
package config
