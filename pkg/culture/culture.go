// Package culture names pseudo-localized output files.
//
// An input file Strings.resx produces Strings.qps-ploc.resx next to it. When
// the input name already carries a culture suffix (Strings.en.resx,
// Strings.es-MX.resx) that suffix is replaced instead of stacked. Culture
// suffixes are recognized with golang.org/x/text/language, so only
// well-formed, registered BCP 47 tags count; Strings.Designer.resx keeps its
// ".Designer" part. A bare three-letter language such as "min" is taken as
// part of the name (app.min.json), unlike "en" or "haw-US".
package culture

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	perrors "github.com/matzehuels/pseudoloc/pkg/errors"
)

// Default is the culture used for output files when none is configured.
const Default = "qps-ploc"

// pseudoLocales are the reserved pseudo-locale names. They are not
// registered subtags, so the language parser does not know them.
var pseudoLocales = map[string]bool{
	"qps-ploc":  true,
	"qps-ploca": true,
	"qps-plocm": true,
}

// IsCulture reports whether s names a known culture or pseudo-locale.
func IsCulture(s string) bool {
	if s == "" {
		return false
	}
	if pseudoLocales[strings.ToLower(s)] {
		return true
	}
	tag, err := language.Parse(s)
	if err != nil {
		return false
	}
	return tag != language.Und
}

// Validate checks that c can be used as an output culture.
func Validate(c string) error {
	if err := perrors.ValidateCultureName(c); err != nil {
		return err
	}
	if !IsCulture(c) {
		return perrors.New(perrors.ErrCodeInvalidCulture, "unknown culture %q", c)
	}
	return nil
}

// OutputPath returns the pseudo-localized file name for input, placed in the
// same directory.
func OutputPath(input, culture string) string {
	return OutputPathIn(filepath.Dir(input), input, culture)
}

// OutputPathIn returns the pseudo-localized file name for input, placed in dir.
func OutputPathIn(dir, input, culture string) string {
	if culture == "" {
		culture = Default
	}
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(dir, StripSuffix(base)+"."+culture+ext)
}

// StripSuffix removes a trailing ".<culture>" from a base file name. The
// suffix is kept when it is the whole name or the name starts with it, so
// "en" and "en.en" are left for the caller to extend.
func StripSuffix(base string) string {
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return base
	}
	suffix := base[i+1:]
	if suffix == "" || strings.HasPrefix(base, suffix) || !isCultureSuffix(suffix) {
		return base
	}
	return base[:i]
}

// isCultureSuffix is IsCulture restricted to names that read as cultures in
// a file name: a two-letter language, or a language with further subtags.
func isCultureSuffix(s string) bool {
	if pseudoLocales[strings.ToLower(s)] {
		return true
	}
	if !IsCulture(s) {
		return false
	}
	primary, rest, _ := strings.Cut(strings.ReplaceAll(s, "_", "-"), "-")
	switch len(primary) {
	case 2:
		return true
	case 3:
		return rest != ""
	}
	return false
}
