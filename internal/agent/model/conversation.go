package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

type ConversationRepository interface {
	// AddExchange appends a user message and the assistant reply as one
	// atomic unit, so two concurrent turns can never interleave their
	// history entries for the same session.
	AddExchange(ctx context.Context, sessionID string, user, assistant *schema.Message) error

	// LoadHistory retrieves the conversation history for a session.
	LoadHistory(ctx context.Context, sessionID string) (*ConversationHistory, error)

	// ClearHistory removes all conversation history for a session.
	ClearHistory(ctx context.Context, sessionID string) error

	// MessageCount returns the number of messages in the conversation.
	MessageCount(ctx context.Context, sessionID string) (int, error)
}

// ConversationHistory represents loaded conversation data with metadata.
type ConversationHistory struct {
	SessionID string
	Messages  []*schema.Message
}

// TurnInput represents one incoming utterance for a session.
type TurnInput struct {
	SessionID string `json:"session_id"`
	Utterance string `json:"utterance"`
}
