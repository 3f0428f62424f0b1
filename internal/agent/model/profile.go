package model

import "context"

// Field names a profile attribute. The declared order below is the order
// missing fields are reported in, which keeps prompt phrasing deterministic.
type Field string

const (
	FieldGender       Field = "gender"
	FieldAge          Field = "age"
	FieldFitnessLevel Field = "fitness_level"
	FieldGoals        Field = "goals"
)

// FieldOrder is the canonical ordering of profile fields.
var FieldOrder = []Field{FieldGender, FieldAge, FieldFitnessLevel, FieldGoals}

// Profile is the persisted set of known facts about a session's user.
// An empty string means the field is still unknown; the store never
// distinguishes between absent and empty.
type Profile struct {
	SessionID    string
	Gender       string
	Age          string
	FitnessLevel string
	Goals        string
}

// Facts is one turn's worth of extracted candidate values. A field present
// here is this turn's evidence only; it has not been merged yet. Empty
// string means the rule did not fire.
type Facts struct {
	Gender       string
	Age          string
	FitnessLevel string
	Goals        string
}

// Empty reports whether no rule fired for this turn.
func (f Facts) Empty() bool {
	return f.Gender == "" && f.Age == "" && f.FitnessLevel == "" && f.Goals == ""
}

// Get returns the value of the named field.
func (p Profile) Get(f Field) string {
	switch f {
	case FieldGender:
		return p.Gender
	case FieldAge:
		return p.Age
	case FieldFitnessLevel:
		return p.FitnessLevel
	case FieldGoals:
		return p.Goals
	}
	return ""
}

// ProfileRepository persists one Profile per session.
type ProfileRepository interface {
	// Get retrieves the profile for a session. An unknown session is not an
	// error: it yields a profile with every field unset.
	Get(ctx context.Context, sessionID string) (Profile, error)

	// Upsert writes the profile for its session, creating the record on
	// first write. Writing identical content is a no-op.
	Upsert(ctx context.Context, profile Profile) error
}
