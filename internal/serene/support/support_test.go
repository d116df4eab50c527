package support

import (
	"strings"
	"testing"
)

func TestSuggestions(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantContains string
	}{
		{
			name:         "sad bucket",
			input:        "I have felt so hopeless lately",
			wantContains: "grounding exercise",
		},
		{
			name:         "anxiety bucket",
			input:        "I keep having panic attacks",
			wantContains: "4-4-4 breathing",
		},
		{
			name:         "sleep bucket",
			input:        "I can't sleep at night",
			wantContains: "wind-down routine",
		},
		{
			name:         "work stress bucket",
			input:        "work is overwhelming",
			wantContains: "Pomodoro",
		},
		{
			name:         "no bucket falls back to defaults",
			input:        "just checking in",
			wantContains: "breathing or grounding exercise",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggestions(tt.input)
			joined := strings.Join(got, "\n")
			if !strings.Contains(joined, tt.wantContains) {
				t.Errorf("Suggestions(%q) = %v, want mention of %q", tt.input, got, tt.wantContains)
			}
			last := got[len(got)-1]
			if !strings.Contains(last, "mental health professional") {
				t.Errorf("last suggestion = %q, want the professional-help reminder", last)
			}
		})
	}
}

func TestSuggestionsMultipleBuckets(t *testing.T) {
	got := Suggestions("I'm sad and anxious about work")
	joined := strings.Join(got, "\n")

	for _, want := range []string{"grounding exercise", "4-4-4 breathing", "Pomodoro"} {
		if !strings.Contains(joined, want) {
			t.Errorf("combined suggestions missing %q: %v", want, got)
		}
	}
}

func TestBreathingExercise(t *testing.T) {
	text := BreathingExercise()
	if !strings.Contains(text, "repeat 5 times") {
		t.Errorf("breathing text = %q", text)
	}
}
