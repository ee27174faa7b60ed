package mock

import (
	"context"
	"sync"

	"github.com/hotel-search/hotel-search-assistant/internal/reasoner"
)

// Reasoner is a scripted mock implementation of reasoner.Reasoner.
// Each Decide call consumes the next queued instruction, which makes
// multi-turn conversation tests deterministic.
type Reasoner struct {
	instructions []*reasoner.Instruction
	err          error
	exchanges    []reasoner.Exchange
	mu           sync.Mutex
}

// NewReasoner creates a new scripted reasoner.
func NewReasoner() *Reasoner {
	return &Reasoner{}
}

// WithInstructions queues the instructions to return, one per turn.
// The last instruction repeats once the queue is exhausted.
func (r *Reasoner) WithInstructions(instructions ...*reasoner.Instruction) *Reasoner {
	r.instructions = instructions
	return r
}

// WithError configures the reasoner to fail every turn with err.
func (r *Reasoner) WithError(err error) *Reasoner {
	r.err = err
	return r
}

// Decide implements reasoner.Reasoner.
func (r *Reasoner) Decide(ctx context.Context, exchange reasoner.Exchange) (*reasoner.Instruction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.exchanges = append(r.exchanges, exchange)

	if r.err != nil {
		return nil, r.err
	}
	if len(r.instructions) == 0 {
		return &reasoner.Instruction{Reply: "Tell me more."}, nil
	}

	idx := len(r.exchanges) - 1
	if idx >= len(r.instructions) {
		idx = len(r.instructions) - 1
	}
	return r.instructions[idx], nil
}

// Exchanges returns every exchange Decide has observed, oldest first.
func (r *Reasoner) Exchanges() []reasoner.Exchange {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]reasoner.Exchange, len(r.exchanges))
	copy(out, r.exchanges)
	return out
}

// Ensure Reasoner implements reasoner.Reasoner at compile time.
var _ reasoner.Reasoner = (*Reasoner)(nil)
