package transform

import (
	"strings"

	"github.com/matzehuels/pseudoloc/pkg/placeholder"
)

const (
	plainLetters    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	accentedLetters = "åƀçðéƒĝĥîĵķļɱñöþǫŕšţûṽŵẋýžÅƁÇÐÉƑĜĤÎĴĶĻṀÑÖÞǪŔŠŢÛṼŴẊÝŽ"
)

// accentTable maps each ASCII letter to an accented look-alike of the same case.
var accentTable = func() map[rune]rune {
	plain := []rune(plainLetters)
	accented := []rune(accentedLetters)
	if len(plain) != len(accented) {
		panic("transform: accent table length mismatch")
	}
	m := make(map[rune]rune, len(plain))
	for i, r := range plain {
		m[r] = accented[i]
	}
	return m
}()

// Accents replaces every ASCII letter with an accented variant of the same
// case. Digits, punctuation, other scripts and placeholders are copied as is.
func Accents(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for seg := range placeholder.Segments(s) {
		if seg.Placeholder {
			b.WriteString(seg.Text)
			continue
		}
		for _, r := range seg.Text {
			if a, ok := accentTable[r]; ok {
				r = a
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
