package transform

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Mirror reverses the characters of s.
//
// Mirror is not placeholder-aware: "{12}" becomes "}21{". Apply it after
// transforms that need to see placeholders, or not at all on strings that
// will be formatted at runtime.
//
// A run of bytes that is not valid UTF-8 moves as one unit and keeps its
// byte order, so Mirror(Mirror(s)) == s for any s.
func Mirror(s string) string {
	var units []string
	for i := 0; i < len(s); {
		start := i
		if r, w := utf8.DecodeRuneInString(s[i:]); r != utf8.RuneError || w != 1 {
			i += w
		} else {
			for i < len(s) {
				if r, w := utf8.DecodeRuneInString(s[i:]); r != utf8.RuneError || w != 1 {
					break
				}
				i++
			}
		}
		units = append(units, s[start:i])
	}
	slices.Reverse(units)
	return strings.Join(units, "")
}
