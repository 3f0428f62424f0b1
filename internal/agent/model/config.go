package model

// ================ Config ================
type ConversationConfig struct {
	// TTL of the history list; "0" keeps conversations until cleared.
	TTL string `envconfig:"CONVERSATION_TTL" default:"0"`
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.6"`
}

type CoachPromptConfig struct {
	CoachName string `envconfig:"PROMPT_COACH_NAME" default:"Coach"`
}
