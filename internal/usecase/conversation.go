package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hotel-search/hotel-search-assistant/internal/domain"
	"github.com/hotel-search/hotel-search-assistant/internal/infrastructure/retry"
	"github.com/hotel-search/hotel-search-assistant/internal/infrastructure/timeutil"
	"github.com/hotel-search/hotel-search-assistant/internal/reasoner"
	"github.com/hotel-search/hotel-search-assistant/internal/storage/history"
)

// historyTurns is how many past turns are replayed to the reasoner.
const historyTurns = 3

// TurnRequest is one user utterance addressed to a conversation.
type TurnRequest struct {
	// ConversationID identifies the conversation; empty starts a new one.
	ConversationID string

	// UserID identifies the user for preference persistence (optional).
	UserID string

	// Message is the raw user utterance.
	Message string
}

// TurnResult is the structured outcome of a processed turn. The adapter
// returns structure, never free text of its own; Reply is the reasoner's.
type TurnResult struct {
	// ConversationID echoes (or introduces) the conversation identity.
	ConversationID string `json:"conversation_id"`

	// State is the session state after the turn.
	State domain.SessionState `json:"state"`

	// Missing lists required fields still unknown.
	Missing []string `json:"missing,omitempty"`

	// Reply is the reasoner's message for the user.
	Reply string `json:"reply,omitempty"`

	// Envelope carries the search results when a search ran this turn.
	Envelope *domain.SearchResponse `json:"envelope,omitempty"`
}

// ConversationUseCase bridges the reasoner's turn cycle to the slot-filling
// session and the search pipeline.
type ConversationUseCase interface {
	// HandleTurn processes one instruction cycle for a conversation.
	HandleTurn(ctx context.Context, req TurnRequest) (*TurnResult, error)

	// EndConversation discards the conversation's session.
	EndConversation(ctx context.Context, conversationID string) error
}

// sessionEntry pairs a session with its per-conversation lock and owner.
type sessionEntry struct {
	mu      sync.Mutex
	session *domain.SlotFillingSession
	userID  string
}

// conversationUseCase implements ConversationUseCase.
type conversationUseCase struct {
	reasoner reasoner.Reasoner
	search   HotelSearchUseCase
	store    history.Store
	clock    timeutil.Clock
	log      zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewConversationUseCase creates a ConversationUseCase. The store may be nil
// for storeless deployments; a nil clock defaults to the system clock.
func NewConversationUseCase(r reasoner.Reasoner, search HotelSearchUseCase, store history.Store, clock timeutil.Clock, log zerolog.Logger) ConversationUseCase {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &conversationUseCase{
		reasoner: r,
		search:   search,
		store:    store,
		clock:    clock,
		log:      log,
		sessions: make(map[string]*sessionEntry),
	}
}

// HandleTurn implements ConversationUseCase. Turns of one conversation are
// processed strictly sequentially; distinct conversations proceed in parallel.
func (uc *conversationUseCase) HandleTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	entry := uc.entryFor(ctx, conversationID, req.UserID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	instruction, err := uc.reasoner.Decide(ctx, reasoner.Exchange{
		Message: req.Message,
		Known:   entry.session.Known(),
		History: uc.historyLines(ctx, conversationID),
	})
	if err != nil {
		return nil, err
	}

	if len(instruction.Fields) > 0 {
		if _, err := entry.session.Update(instruction.Fields); err != nil {
			return nil, err
		}
	}

	result := &TurnResult{
		ConversationID: conversationID,
		Reply:          instruction.Reply,
	}

	if instruction.InvokeSearch && entry.session.ShouldSearch() {
		envelope, err := uc.search.Search(ctx, entry.session.Criteria())
		if err != nil {
			uc.recordTurn(ctx, conversationID, req, instruction.Fields, string(entry.session.State()), nil)
			return nil, err
		}
		entry.session.MarkSearched()
		result.Envelope = envelope
		uc.savePreferences(ctx, req.UserID, envelope.SearchCriteria)
	}

	result.State = entry.session.State()
	result.Missing = entry.session.Missing()

	var resultCount *int
	if result.Envelope != nil {
		n := result.Envelope.Metadata.TotalResults
		resultCount = &n
	}
	uc.recordTurn(ctx, conversationID, req, instruction.Fields, string(result.State), resultCount)

	return result, nil
}

// EndConversation implements ConversationUseCase.
func (uc *conversationUseCase) EndConversation(_ context.Context, conversationID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.sessions[conversationID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrConversationNotFound, conversationID)
	}
	delete(uc.sessions, conversationID)
	return nil
}

// entryFor returns the conversation's session entry, creating and seeding it
// from stored preferences on first use. The registry lock covers only the map
// access; the store lookup runs under the entry's own lock so a slow store
// cannot stall other conversations.
func (uc *conversationUseCase) entryFor(ctx context.Context, conversationID, userID string) *sessionEntry {
	uc.mu.Lock()
	if entry, ok := uc.sessions[conversationID]; ok {
		uc.mu.Unlock()
		return entry
	}

	entry := &sessionEntry{
		session: domain.NewSlotFillingSession(),
		userID:  userID,
	}
	entry.mu.Lock()
	uc.sessions[conversationID] = entry
	uc.mu.Unlock()

	uc.seedFromPreferences(ctx, entry.session, userID)
	entry.mu.Unlock()
	return entry
}

// seedFromPreferences pre-fills party-size defaults the user established in
// earlier conversations. Lookup failures only cost the seeding.
func (uc *conversationUseCase) seedFromPreferences(ctx context.Context, session *domain.SlotFillingSession, userID string) {
	if uc.store == nil || userID == "" {
		return
	}

	prefs, err := uc.store.Preferences(ctx, userID)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("Preference lookup failed")
		return
	}
	if prefs == nil {
		return
	}

	fields := make(map[string]string)
	if prefs.Adults > 0 {
		fields[domain.FieldAdults] = strconv.Itoa(prefs.Adults)
	}
	if prefs.Rooms > 0 {
		fields[domain.FieldRooms] = strconv.Itoa(prefs.Rooms)
	}
	if len(fields) == 0 {
		return
	}
	if _, err := session.Update(fields); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("Preference seeding failed")
	}
}

// historyLines renders recent turns for the reasoner prompt.
func (uc *conversationUseCase) historyLines(ctx context.Context, conversationID string) []string {
	if uc.store == nil {
		return nil
	}

	turns, err := uc.store.Turns(ctx, conversationID, historyTurns)
	if err != nil {
		uc.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("History lookup failed")
		return nil
	}

	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		lines = append(lines, "user: "+turn.Message)
	}
	return lines
}

// recordTurn appends the turn to the history store. Failures are retried
// briefly, then logged and swallowed; persistence never blocks the result.
func (uc *conversationUseCase) recordTurn(ctx context.Context, conversationID string, req TurnRequest, fields map[string]string, state string, resultCount *int) {
	if uc.store == nil {
		return
	}

	turn := history.Turn{
		ConversationID: conversationID,
		UserID:         req.UserID,
		Message:        req.Message,
		Fields:         fields,
		State:          state,
		ResultCount:    resultCount,
		Timestamp:      uc.clock.Now(),
	}

	err := retry.Do(ctx, func() error {
		return uc.store.AppendTurn(ctx, conversationID, turn)
	}, retry.DefaultConfig)
	if err != nil {
		uc.log.Error().
			Err(err).
			Str("conversation_id", conversationID).
			Msg("History write failed, turn not persisted")
	}
}

// savePreferences derives durable defaults from a completed search.
func (uc *conversationUseCase) savePreferences(ctx context.Context, userID string, criteria domain.SearchCriteria) {
	if uc.store == nil || userID == "" {
		return
	}

	err := uc.store.SavePreferences(ctx, userID, history.Preferences{
		Adults: criteria.Adults,
		Rooms:  criteria.Rooms,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("Preference write failed")
	}
}

// Ensure conversationUseCase implements ConversationUseCase at compile time.
var _ ConversationUseCase = (*conversationUseCase)(nil)
