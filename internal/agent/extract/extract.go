// Package extract turns a raw user utterance into candidate profile facts.
// It is a fixed chain of independent regex rules: every rule runs on every
// call, each may fire at most once, and no rule can fail. The heuristics are
// deliberately shallow; anything a rule misses is simply asked for on a
// later turn.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/coach-core-poc/server/internal/agent/model"
)

var (
	genderRe  = regexp.MustCompile(`\b(male|female|man|woman|non[-\s]?binary|nb)\b`)
	ageRe     = regexp.MustCompile(`\b(\d{2,3})\s*(?:years?|yo|yrs?)?\b`)
	fitnessRe = regexp.MustCompile(`\b(beginner|intermediate|advanced)\b`)
	goalRe    = regexp.MustCompile(`goals?\s*:?\s*(.+)`)
)

// genderCanonical collapses lexicon variants onto the stored vocabulary.
var genderCanonical = map[string]string{
	"man":        "male",
	"male":       "male",
	"woman":      "female",
	"female":     "female",
	"non-binary": "non-binary",
	"non binary": "non-binary",
	"nonbinary":  "non-binary",
	"nb":         "non-binary",
}

// Plausible human age range; out-of-range matches are dropped, not clamped.
const (
	ageMin = 10
	ageMax = 100
)

// goalKeywords trigger the broad fallback that captures the whole utterance
// as the goal when no explicit "goal:" marker is present.
var goalKeywords = []string{"lose", "gain", "endurance"}

// Extract runs every rule against the utterance and returns whichever facts
// fired. It never fails; an utterance matching nothing yields zero facts.
func Extract(utterance string) model.Facts {
	lowered := strings.ToLower(utterance)
	var facts model.Facts

	if m := genderRe.FindStringSubmatch(lowered); m != nil {
		if canonical, ok := genderCanonical[m[1]]; ok {
			facts.Gender = canonical
		} else {
			facts.Gender = m[1]
		}
	}

	if m := ageRe.FindStringSubmatch(lowered); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= ageMin && n <= ageMax {
			facts.Age = m[1]
		}
	}

	if m := fitnessRe.FindStringSubmatch(lowered); m != nil {
		facts.FitnessLevel = m[1]
	}

	if m := goalRe.FindStringSubmatch(lowered); m != nil {
		facts.Goals = strings.TrimSpace(m[1])
	} else if containsAny(lowered, goalKeywords) {
		// No explicit marker: keep the original casing of the whole utterance.
		facts.Goals = strings.TrimSpace(utterance)
	}

	return facts
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
