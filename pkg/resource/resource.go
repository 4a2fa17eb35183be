package resource

import (
	"bytes"
	"io"
	"path/filepath"
	"slices"
	"strings"

	perrors "github.com/matzehuels/pseudoloc/pkg/errors"
)

// Format names a resource document format.
type Format string

// Supported formats.
const (
	ResX Format = "resx"
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

var formats = []Format{ResX, JSON, YAML, TOML}

var extensions = map[string]Format{
	".resx": ResX,
	".json": JSON,
	".yaml": YAML,
	".yml":  YAML,
	".toml": TOML,
}

// Entry is one localizable value found while walking a document.
type Entry struct {
	Name  string // resource name or dotted key path
	Value string
}

// Func returns the replacement for an entry's value.
type Func func(Entry) string

// Values adapts a plain string transform to a Func.
func Values(fn func(string) string) Func {
	return func(e Entry) string { return fn(e.Value) }
}

// Walker rewrites the localizable values of one document format.
type Walker interface {
	// Format reports the format handled by the walker.
	Format() Format

	// Walk reads a document from r, replaces every localizable value with
	// fn's result and writes the document to w. It returns the number of
	// values visited.
	Walk(r io.Reader, w io.Writer, fn Func) (int, error)
}

// Formats returns all supported formats.
func Formats() []Format {
	return slices.Clone(formats)
}

// String implements fmt.Stringer.
func (f Format) String() string { return string(f) }

// ParseFormat resolves a format name. A leading dot and "yml" are accepted.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if f, ok := extensions["."+name]; ok {
		return f, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidFormat,
		"unknown format %q (must be one of: resx, json, yaml, toml)", s)
}

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	if ext == "" {
		return "", perrors.New(perrors.ErrCodeInvalidFormat, "cannot detect format of %s: no extension", path)
	}
	return "", perrors.New(perrors.ErrCodeInvalidFormat, "cannot detect format of %s: unsupported extension %s", path, ext)
}

// NewWalker returns the walker for a format.
func NewWalker(f Format) (Walker, error) {
	switch f {
	case ResX:
		return resxWalker{}, nil
	case JSON:
		return jsonWalker{}, nil
	case YAML:
		return yamlWalker{}, nil
	case TOML:
		return tomlWalker{}, nil
	}
	return nil, perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format %q", f)
}

// Localize is a convenience wrapper around Walk for in-memory documents.
func Localize(w Walker, src []byte, fn Func) ([]byte, int, error) {
	var buf bytes.Buffer
	buf.Grow(len(src) + len(src)/2)
	n, err := w.Walk(bytes.NewReader(src), &buf, fn)
	if err != nil {
		return nil, n, err
	}
	return buf.Bytes(), n, nil
}

func invalid(f Format, err error) error {
	return perrors.Wrap(perrors.ErrCodeInvalidDocument, err, "parse %s document", f)
}
