package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/pseudoloc/pkg/placeholder"
)

// ExtraLength makes every word about 30% longer.
//
// Words are the pieces between ASCII spaces. A word with n letters gains
// ceil(0.3*n) letters, taken cyclically from its own letters and inserted
// right after its last letter (so trailing punctuation and placeholders stay
// at the end). Words without letters, placeholders included, are left alone.
// No whitespace is ever inserted, so the word count is unchanged.
func ExtraLength(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = lengthen(w)
	}
	return strings.Join(words, " ")
}

// lengthen pads a single word.
func lengthen(word string) string {
	var letters []rune
	insertAt := -1

	offset := 0
	for seg := range placeholder.Segments(word) {
		if !seg.Placeholder {
			for i, r := range seg.Text {
				if unicode.IsLetter(r) {
					letters = append(letters, r)
					insertAt = offset + i + utf8.RuneLen(r)
				}
			}
		}
		offset += len(seg.Text)
	}
	if len(letters) == 0 {
		return word
	}

	// ceil(0.3 * n) without floating point rounding surprises
	extra := (len(letters)*3 + 9) / 10

	var b strings.Builder
	b.Grow(len(word) + extra*utf8.UTFMax)
	b.WriteString(word[:insertAt])
	for i := range extra {
		b.WriteRune(letters[i%len(letters)])
	}
	b.WriteString(word[insertAt:])
	return b.String()
}
