package transform

import (
	"slices"
	"strings"

	perrors "github.com/matzehuels/pseudoloc/pkg/errors"
)

// Func is a pseudo-localization transform. Implementations must be total,
// deterministic and free of side effects.
type Func func(string) string

// ID identifies a transform in configuration, flags and API requests.
type ID string

// Transform identifiers, listed in registration order.
const (
	ExtraLengthID ID = "extralength"
	AccentsID     ID = "accents"
	BracketsID    ID = "brackets"
	MirrorID      ID = "mirror"
	UnderscoresID ID = "underscores"
)

// Info describes a registered transform.
type Info struct {
	ID      ID
	Flag    string // single-letter shorthand used by the CLI
	Name    string // long flag name
	Summary string
	Func    Func
}

// registry holds every transform in registration order. The order is the one
// used when transforms are enabled by individual flags.
var registry = []Info{
	{
		ID:      ExtraLengthID,
		Flag:    "l",
		Name:    "extra-length",
		Summary: "Make all words 30% longer, to ensure that there is room for translations",
		Func:    ExtraLength,
	},
	{
		ID:      AccentsID,
		Flag:    "a",
		Name:    "accents",
		Summary: "Add accents on all letters so that non-localized text can be spotted",
		Func:    Accents,
	},
	{
		ID:      BracketsID,
		Flag:    "b",
		Name:    "brackets",
		Summary: "Add brackets to show the start and end of each localized string",
		Func:    Brackets,
	},
	{
		ID:      MirrorID,
		Flag:    "m",
		Name:    "mirror",
		Summary: "Reverse all characters (\"mirror\")",
		Func:    Mirror,
	},
	{
		ID:      UnderscoresID,
		Flag:    "u",
		Name:    "underscores",
		Summary: "Replace all characters with underscores, keeping placeholders",
		Func:    Underscores,
	},
}

// All returns every registered transform in registration order.
func All() []Info {
	return slices.Clone(registry)
}

// Defaults returns the transforms applied when none are selected.
func Defaults() []ID {
	return []ID{ExtraLengthID, AccentsID, BracketsID}
}

// Lookup returns the transform registered under id.
func Lookup(id ID) (Func, bool) {
	for _, info := range registry {
		if info.ID == id {
			return info.Func, true
		}
	}
	return nil, false
}

// ParseID resolves a user-supplied name to a transform identifier.
// Matching is case-insensitive and accepts the identifier, the long flag name
// and the single-letter shorthand ("extralength", "extra-length", "l").
func ParseID(s string) (ID, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimLeft(name, "-/")
	for _, info := range registry {
		if name == string(info.ID) || name == info.Name || name == info.Flag {
			return info.ID, nil
		}
	}
	return "", perrors.New(perrors.ErrCodeInvalidTransform,
		"unknown transform %q (must be one of: %s)", s, strings.Join(Names(), ", "))
}

// ParseIDs resolves a list of names, preserving their order. Entries may
// themselves be comma-separated; blank entries are skipped.
func ParseIDs(names []string) ([]ID, error) {
	var ids []ID
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := ParseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Names returns the identifiers of all registered transforms as strings.
func Names() []string {
	names := make([]string, len(registry))
	for i, info := range registry {
		names[i] = string(info.ID)
	}
	return names
}

// Canonical returns ids deduplicated and sorted into registration order.
// It mirrors how individually enabled flags are applied: the position of a
// flag on the command line does not matter.
func Canonical(ids []ID) []ID {
	out := make([]ID, 0, len(ids))
	for _, info := range registry {
		if slices.Contains(ids, info.ID) {
			out = append(out, info.ID)
		}
	}
	return out
}

// Strings converts ids to plain strings.
func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
