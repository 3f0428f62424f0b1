// Package profile implements the merge and missing-field rules over a
// session profile snapshot.
package profile

import (
	"strings"

	"github.com/coach-core-poc/server/internal/agent/model"
)

const (
	// UnknownValue is rendered in prompts for a field that is still unset.
	UnknownValue = "unknown"
	// NoneMissing is rendered in prompts when every field is known.
	NoneMissing = "none"
)

// Merge combines the stored profile with one turn's extracted facts. An
// incoming value overwrites only when non-empty; absence never erases a fact
// that is already known. The result is a new complete profile.
func Merge(current model.Profile, facts model.Facts) model.Profile {
	merged := current
	if facts.Gender != "" {
		merged.Gender = facts.Gender
	}
	if facts.Age != "" {
		merged.Age = facts.Age
	}
	if facts.FitnessLevel != "" {
		merged.FitnessLevel = facts.FitnessLevel
	}
	if facts.Goals != "" {
		merged.Goals = facts.Goals
	}
	return merged
}

// Missing returns the unset fields of the profile in canonical field order.
// It is recomputed from scratch on every call; the result must never be
// cached across turns because a later utterance can complete a field.
func Missing(p model.Profile) []model.Field {
	var missing []model.Field
	for _, f := range model.FieldOrder {
		if p.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// FormatMissing renders the missing-field list for prompt interpolation,
// with an explicit "none" placeholder when the profile is complete.
func FormatMissing(missing []model.Field) string {
	if len(missing) == 0 {
		return NoneMissing
	}
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// ValueOrUnknown renders a field value for prompt interpolation, taking the
// "unknown" placeholder for an unset field rather than omitting it.
func ValueOrUnknown(v string) string {
	if v == "" {
		return UnknownValue
	}
	return v
}
