package placeholder

import "iter"

// Span locates a placeholder token inside a string by byte offset.
type Span struct {
	Start int // byte offset of the opening brace
	Len   int // byte length including both braces
}

// End returns the byte offset just past the closing brace.
func (s Span) End() int { return s.Start + s.Len }

// Segment is a contiguous piece of a string that is either a placeholder
// token or a run of ordinary text.
type Segment struct {
	Text        string
	Placeholder bool
}

// Match reports whether a placeholder token starts at byte offset i of s and
// returns its length. A token is '{', at least one ASCII digit, then '}'.
// Out-of-range offsets never match.
func Match(s string, i int) (n int, ok bool) {
	if i < 0 || i >= len(s) || s[i] != '{' {
		return 0, false
	}
	j := i + 1
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == i+1 || j >= len(s) || s[j] != '}' {
		return 0, false
	}
	return j - i + 1, true
}

// Spans yields the placeholder tokens of s from left to right.
func Spans(s string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for i := 0; i < len(s); i++ {
			n, ok := Match(s, i)
			if !ok {
				continue
			}
			if !yield(Span{Start: i, Len: n}) {
				return
			}
			i += n - 1
		}
	}
}

// Segments splits s into alternating text and placeholder segments.
// Concatenating every yielded Text reproduces s exactly; empty text runs are
// never yielded.
func Segments(s string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		last := 0
		for sp := range Spans(s) {
			if sp.Start > last {
				if !yield(Segment{Text: s[last:sp.Start]}) {
					return
				}
			}
			if !yield(Segment{Text: s[sp.Start:sp.End()], Placeholder: true}) {
				return
			}
			last = sp.End()
		}
		if last < len(s) {
			yield(Segment{Text: s[last:]})
		}
	}
}

// Tokens returns the placeholder tokens of s in order of appearance.
func Tokens(s string) []string {
	var out []string
	for sp := range Spans(s) {
		out = append(out, s[sp.Start:sp.End()])
	}
	return out
}

// Count returns the number of placeholder tokens in s.
func Count(s string) int {
	n := 0
	for range Spans(s) {
		n++
	}
	return n
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
