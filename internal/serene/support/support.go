// Package support holds the static self-help content: rule-based coping
// suggestions and the guided breathing exercise. Everything here is
// non-clinical and deliberately simple.
package support

import "strings"

type suggestionRule struct {
	triggers    []string
	suggestions []string
}

var rules = []suggestionRule{
	{
		triggers: []string{"sad", "depressed", "down", "hopeless"},
		suggestions: []string{
			"Try a 5-minute grounding exercise (name 5 things you can see).",
			"Consider reaching out to one trusted person and telling them you need support.",
		},
	},
	{
		triggers: []string{"anx", "anxiety", "panic", "worried", "nervous"},
		suggestions: []string{
			"Do 4-4-4 breathing for 1-2 minutes: inhale 4s, hold 4s, exhale 4s.",
			"If you're having a panic episode and feel unsafe, contact emergency services.",
		},
	},
	{
		triggers: []string{"sleep"},
		suggestions: []string{
			"Try a wind-down routine: no screens 1 hour before bed, dim lights, read a book.",
		},
	},
	{
		triggers: []string{"work", "stress"},
		suggestions: []string{
			"Break tasks into 15-25 minute focused sessions (Pomodoro-style) and take short breaks.",
		},
	},
}

var defaultSuggestions = []string{
	"Try a short breathing or grounding exercise for 2-5 minutes.",
	"Write down one small step you can take in the next hour to feel a bit better.",
}

const closingSuggestion = "If these feelings are persistent or worsening, consider contacting a mental health professional."

// Suggestions returns supportive, non-clinical suggestions matched to
// keywords in the text, always ending with the professional-help reminder.
func Suggestions(text string) []string {
	lower := strings.ToLower(text)

	var out []string
	for _, rule := range rules {
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				out = append(out, rule.suggestions...)
				break
			}
		}
	}
	if len(out) == 0 {
		out = append(out, defaultSuggestions...)
	}
	return append(out, closingSuggestion)
}

// BreathingExercise returns the static guided-breathing text.
func BreathingExercise() string {
	return `1. Sit comfortably with both feet on the floor.
2. Close your eyes if that feels safe.

Cycle (repeat 5 times):
- Breathe in slowly for 4 seconds.
- Hold for 4 seconds.
- Breathe out slowly for 6 seconds.

When finished, open your eyes and notice how your body feels.`
}
