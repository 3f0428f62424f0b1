package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coach-core-poc/server/internal/agent/model"
)

func TestExtractGenderCanonicalization(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{name: "man", utterance: "I'm a man in my thirties", want: "male"},
		{name: "male", utterance: "male here", want: "male"},
		{name: "woman", utterance: "I am a woman", want: "female"},
		{name: "female", utterance: "Female, thanks for asking", want: "female"},
		{name: "non binary with space", utterance: "I'm non binary", want: "non-binary"},
		{name: "non-binary with hyphen", utterance: "non-binary", want: "non-binary"},
		{name: "nb abbreviation", utterance: "nb, 30s", want: "non-binary"},
		{name: "no match", utterance: "I like lifting", want: ""},
		{name: "woman does not leak man", utterance: "a woman", want: "female"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := Extract(tt.utterance)
			assert.Equal(t, tt.want, facts.Gender)
		})
	}
}

func TestExtractAgeRange(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{name: "below range rejected", utterance: "I am 9 years old", want: ""},
		{name: "lower bound accepted", utterance: "I am 10 years old", want: "10"},
		{name: "upper bound accepted", utterance: "I am 100 years old", want: "100"},
		{name: "above range rejected", utterance: "I am 101 years old", want: ""},
		{name: "bare number", utterance: "I'm 45", want: "45"},
		{name: "yo suffix", utterance: "28yo and ready to train", want: "28"},
		{name: "yrs suffix", utterance: "34 yrs", want: "34"},
		{name: "no digits", utterance: "forty-five", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := Extract(tt.utterance)
			assert.Equal(t, tt.want, facts.Age)
		})
	}
}

func TestExtractFitnessLevel(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
	}{
		{utterance: "total beginner over here", want: "beginner"},
		{utterance: "I'd say Intermediate", want: "intermediate"},
		{utterance: "advanced lifter", want: "advanced"},
		{utterance: "pretty fit", want: ""},
	}

	for _, tt := range tests {
		facts := Extract(tt.utterance)
		assert.Equal(t, tt.want, facts.FitnessLevel, "utterance: %s", tt.utterance)
	}
}

func TestExtractGoals(t *testing.T) {
	t.Run("explicit marker with colon", func(t *testing.T) {
		facts := Extract("goal: lose weight")
		assert.Equal(t, "lose weight", facts.Goals)
	})

	t.Run("plural marker without colon", func(t *testing.T) {
		facts := Extract("goals build muscle")
		assert.Equal(t, "build muscle", facts.Goals)
	})

	t.Run("keyword fallback captures whole utterance verbatim", func(t *testing.T) {
		facts := Extract("I want to Gain muscle this year")
		assert.Equal(t, "I want to Gain muscle this year", facts.Goals)
	})

	t.Run("endurance keyword", func(t *testing.T) {
		facts := Extract("training for endurance")
		assert.Equal(t, "training for endurance", facts.Goals)
	})

	t.Run("no marker and no keyword", func(t *testing.T) {
		facts := Extract("what should I do today?")
		assert.Equal(t, "", facts.Goals)
	})
}

func TestExtractEmptyUtterance(t *testing.T) {
	assert.True(t, Extract("").Empty())
	assert.True(t, Extract("   ").Empty())
}

func TestExtractPopulatesMultipleFieldsInOneCall(t *testing.T) {
	facts := Extract("I'm a 28 year old beginner, goal: lose weight")

	assert.Equal(t, model.Facts{
		Gender:       "",
		Age:          "28",
		FitnessLevel: "beginner",
		Goals:        "lose weight",
	}, facts)
}
