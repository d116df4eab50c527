package serene

import "testing"

func TestMatcherMatches(t *testing.T) {
	matcher := NewMatcher()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "exact keyword",
			input: "suicide",
			want:  true,
		},
		{
			name:  "keyword mid-sentence",
			input: "I want to kill myself",
			want:  true,
		},
		{
			name:  "mixed case",
			input: "I Want To KILL MYSELF",
			want:  true,
		},
		{
			name:  "keyword at end",
			input: "lately I have been feeling suicidal",
			want:  true,
		},
		{
			name: "negation still matches",
			// Known false-positive bias: substring matching only.
			input: "I do not want to kill myself",
			want:  true,
		},
		{
			name:  "empty input",
			input: "",
			want:  false,
		},
		{
			name:  "non-crisis input",
			input: "I feel anxious about work",
			want:  false,
		},
		{
			name:  "partial word does not invent matches",
			input: "the suit case is heavy",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matcher.Matches(tt.input); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatcherCustomKeywords(t *testing.T) {
	matcher := NewMatcher("emergency")

	if !matcher.Matches("this is an EMERGENCY") {
		t.Error("custom keyword did not match")
	}
	if matcher.Matches("suicide") {
		t.Error("default keywords should not apply with a custom set")
	}
}
