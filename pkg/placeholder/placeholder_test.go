package placeholder

import (
	"slices"
	"strings"
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		i      int
		wantN  int
		wantOK bool
	}{
		{"single digit", "{0}", 0, 3, true},
		{"multi digit", "{42}", 0, 4, true},
		{"mid string", "ab{7}cd", 2, 3, true},
		{"not at brace", "ab{7}cd", 1, 0, false},
		{"no digits", "{}", 0, 0, false},
		{"unterminated", "{0", 0, 0, false},
		{"letter inside", "{a}", 0, 0, false},
		{"digit then letter", "{1a}", 0, 0, false},
		{"space inside", "{ 1}", 0, 0, false},
		{"nested brace", "{{0}}", 0, 0, false},
		{"nested brace inner", "{{0}}", 1, 3, true},
		{"negative offset", "{0}", -1, 0, false},
		{"offset past end", "{0}", 3, 0, false},
		{"empty", "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := Match(tt.s, tt.i)
			if n != tt.wantN || ok != tt.wantOK {
				t.Errorf("Match(%q, %d) = (%d, %v), want (%d, %v)", tt.s, tt.i, n, ok, tt.wantN, tt.wantOK)
			}
		})
	}
}

func TestSpans(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want []Span
	}{
		{"none", "hello, world", nil},
		{"leading", "{0}hello", []Span{{0, 3}}},
		{"trailing", "hello{99}", []Span{{5, 4}}},
		{"adjacent", "{0}{1}", []Span{{0, 3}, {3, 3}}},
		{"unterminated then valid", "{0 {1}", []Span{{3, 3}}},
		{"brace run", "{{{12}}}", []Span{{2, 4}}},
		{"multibyte text", "héllo {0}", []Span{{7, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Spans(tt.s))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Spans(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestSpansEarlyStop(t *testing.T) {
	n := 0
	for range Spans("{0}{1}{2}") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iteration did not stop: n = %d", n)
	}
}

func TestSegmentsRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"{0}",
		"{0}hello, world",
		"hello, {1} world",
		"hello, world{99}",
		"hello, world{0",
		"{0}{1}{}{a}{2",
	}

	for _, s := range inputs {
		var b strings.Builder
		for seg := range Segments(s) {
			if seg.Text == "" {
				t.Errorf("Segments(%q) yielded an empty segment", s)
			}
			if seg.Placeholder {
				if n, ok := Match(seg.Text, 0); !ok || n != len(seg.Text) {
					t.Errorf("Segments(%q) marked %q as placeholder", s, seg.Text)
				}
			}
			b.WriteString(seg.Text)
		}
		if b.String() != s {
			t.Errorf("Segments(%q) concatenation = %q", s, b.String())
		}
	}
}

func TestSegments(t *testing.T) {
	got := slices.Collect(Segments("a{0}{1}b"))
	want := []Segment{
		{Text: "a"},
		{Text: "{0}", Placeholder: true},
		{Text: "{1}", Placeholder: true},
		{Text: "b"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Segments = %v, want %v", got, want)
	}
}

func TestTokensAndCount(t *testing.T) {
	s := "{0} of {12} items, {x} ignored, {3"
	if got, want := Tokens(s), []string{"{0}", "{12}"}; !slices.Equal(got, want) {
		t.Errorf("Tokens = %v, want %v", got, want)
	}
	if got := Count(s); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
	if got := Tokens("none"); got != nil {
		t.Errorf("Tokens(none) = %v, want nil", got)
	}
}
