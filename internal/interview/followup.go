package interview

import "strings"

// Answers shorter than this many words are treated as too thin to move on from.
const minSubstantiveWords = 15

var hedgePhrases = []string{"don't know", "not sure", "no idea", "can't say"}

// NeedsFollowup decides whether the most recent answer warrants a deeper
// follow-up question instead of advancing to a new topic. Deterministic, no
// model call, so it can be tested without a network dependency.
func NeedsFollowup(answer string) bool {
	if len(strings.Fields(answer)) < minSubstantiveWords {
		return true
	}
	lowered := strings.ToLower(answer)
	for _, phrase := range hedgePhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
