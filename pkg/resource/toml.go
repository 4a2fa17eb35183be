package resource

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"
)

// tomlWalker decodes into generic maps and re-encodes. Comments do not
// survive the round trip; the encoder writes keys in sorted order.
type tomlWalker struct{}

func (tomlWalker) Format() Format { return TOML }

func (tomlWalker) Walk(r io.Reader, w io.Writer, fn Func) (int, error) {
	var doc map[string]any
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return 0, invalid(TOML, err)
	}
	n := walkTOMLTable(doc, "", fn)
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return n, err
	}
	return n, nil
}

func walkTOMLTable(t map[string]any, path string, fn Func) int {
	n := 0
	for _, k := range slices.Sorted(maps.Keys(t)) {
		var c int
		t[k], c = walkTOML(t[k], joinKey(path, k), fn)
		n += c
	}
	return n
}

func walkTOML(v any, path string, fn Func) (any, int) {
	switch v := v.(type) {
	case string:
		return fn(Entry{Name: path, Value: v}), 1
	case map[string]any:
		return v, walkTOMLTable(v, path, fn)
	case []map[string]any:
		n := 0
		for i, t := range v {
			n += walkTOMLTable(t, fmt.Sprintf("%s[%d]", path, i), fn)
		}
		return v, n
	case []any:
		n := 0
		for i := range v {
			var c int
			v[i], c = walkTOML(v[i], fmt.Sprintf("%s[%d]", path, i), fn)
			n += c
		}
		return v, n
	}
	return v, 0
}
