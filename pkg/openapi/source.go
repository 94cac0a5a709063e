package openapi

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies where an OpenAPI document lives.
type Source interface {
	Kind() SourceKind
	Location() string
}

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceFromURL validates raw and returns a Source for it.
func SourceFromURL(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("openapi: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("openapi: invalid URL %q: %w", raw, err)
	}
	return source{kind: SourceKindURL, location: raw}, nil
}

// SourceFromLocation picks a URL source for http(s) locations and a file
// source otherwise.
func SourceFromLocation(location string) (Source, error) {
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return SourceFromURL(location)
	}
	return SourceFromFile(location), nil
}
