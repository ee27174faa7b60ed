// Package reasoner defines the boundary to the natural-language reasoning
// engine that drives the conversation. The core never depends on how the
// reasoner thinks, only on the instruction it returns for each turn.
package reasoner

import "context"

//go:generate mockgen -source=reasoner.go -destination=mock_reasoner.go -package=reasoner

// Instruction is a single structured decision for one conversation turn.
type Instruction struct {
	// Fields holds criteria values extracted from the user's message, keyed
	// by the session field names (location, check_in_date, ...).
	Fields map[string]string `json:"fields,omitempty"`

	// InvokeSearch is true when the reasoner decided all required
	// information is present and the search should run now.
	InvokeSearch bool `json:"invoke_search"`

	// Reply is the reasoner's message back to the user, typically asking
	// for a missing field or acknowledging the search.
	Reply string `json:"reply,omitempty"`
}

// Exchange carries everything the reasoner may consider for one turn.
type Exchange struct {
	// Message is the user's utterance for this turn.
	Message string

	// Known are the criteria fields already collected in the session.
	Known map[string]string

	// History holds prior turns of this conversation, oldest first,
	// rendered as plain text lines.
	History []string
}

// Reasoner decides, per turn, which fields to update and whether to invoke
// the search. Implementations must be safe for concurrent use across
// conversations.
type Reasoner interface {
	Decide(ctx context.Context, exchange Exchange) (*Instruction, error)
}
