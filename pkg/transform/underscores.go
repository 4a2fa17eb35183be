package transform

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/pseudoloc/pkg/placeholder"
)

// Underscores replaces every character with '_' except complete placeholder
// tokens, which are copied verbatim. A brace that does not open a complete
// token is blanked like any other character, so "hello, world{0" becomes
// fourteen underscores.
func Underscores(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for seg := range placeholder.Segments(s) {
		if seg.Placeholder {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(strings.Repeat("_", utf8.RuneCountInString(seg.Text)))
	}
	return b.String()
}
