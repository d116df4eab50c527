package serene

import "strings"

// defaultCrisisKeywords is the canonical crisis phrase set. Matching is
// plain substring containment with no stemming and no negation handling:
// "I do not want to kill myself" still matches. Over-triggering the safety
// path is preferred to under-triggering it.
var defaultCrisisKeywords = []string{
	"kill myself", "suicide", "end it all", "want to die",
	"harm myself", "self harm", "hurt myself", "not want to live",
	"i'm going to kill myself", "i want to die", "suicidal",
}

// Matcher checks user input against a fixed set of lowercase crisis
// phrases. The set is read-only for the process lifetime.
type Matcher struct {
	keywords []string
}

// NewMatcher returns a matcher over the given lowercase phrases. With no
// phrases the canonical default set is used.
func NewMatcher(keywords ...string) *Matcher {
	if len(keywords) == 0 {
		keywords = defaultCrisisKeywords
	}
	return &Matcher{keywords: keywords}
}

// Matches reports whether text contains any crisis phrase,
// case-insensitively, at any position. Empty input never matches.
func (m *Matcher) Matches(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, keyword := range m.keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
