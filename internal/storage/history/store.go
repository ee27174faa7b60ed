// Package history persists conversation turns and durable user preferences.
// The core treats it as an opaque key-value store: a write failure is never
// allowed to block returning a dialogue or search result.
package history

import (
	"context"
	"time"
)

// Turn is one recorded conversation turn.
type Turn struct {
	// ConversationID identifies the conversation this turn belongs to.
	ConversationID string `json:"conversation_id"`

	// UserID identifies the user, for preference derivation.
	UserID string `json:"user_id,omitempty"`

	// Message is the raw user utterance.
	Message string `json:"message"`

	// Fields are the criteria values the reasoner extracted this turn.
	Fields map[string]string `json:"fields,omitempty"`

	// State is the session state after the turn was applied.
	State string `json:"state"`

	// ResultCount is the envelope size when a search ran this turn.
	ResultCount *int `json:"result_count,omitempty"`

	// Timestamp records when the turn was processed.
	Timestamp time.Time `json:"timestamp"`
}

// Preferences are durable per-user defaults derived from completed searches,
// reusable across later, unrelated conversations.
type Preferences struct {
	// Adults is the user's usual party size.
	Adults int `json:"adults,omitempty"`

	// Rooms is the user's usual room count.
	Rooms int `json:"rooms,omitempty"`
}

// Store persists turns per conversation and preferences per user.
// Implementations must serialize writes within one conversation; writes
// across distinct conversations may interleave freely.
type Store interface {
	// AppendTurn appends a turn to the conversation's ordered history.
	AppendTurn(ctx context.Context, conversationID string, turn Turn) error

	// Turns returns up to limit most recent turns, oldest first.
	Turns(ctx context.Context, conversationID string, limit int) ([]Turn, error)

	// SavePreferences stores the user's durable preferences.
	SavePreferences(ctx context.Context, userID string, prefs Preferences) error

	// Preferences returns the user's stored preferences, or nil when the
	// user has none yet.
	Preferences(ctx context.Context, userID string) (*Preferences, error)
}
