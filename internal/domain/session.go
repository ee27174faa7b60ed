package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SessionState describes how far a slot-filling session has progressed.
type SessionState string

// Session states. A session moves Empty -> PartiallyFilled -> Complete as
// required fields become known; a later update that changes a value moves a
// Complete session back to PartiallyFilled search-wise (see ShouldSearch).
const (
	StateEmpty           SessionState = "empty"
	StatePartiallyFilled SessionState = "partially_filled"
	StateComplete        SessionState = "complete"
)

// Field names accepted by SlotFillingSession.Update. They match the JSON
// field names of SearchCriteria so the reasoner can use one vocabulary.
const (
	FieldLocation     = "location"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldAdults       = "adults"
	FieldChildren     = "children"
	FieldChildrenAges = "children_ages"
	FieldRooms        = "rooms"
)

// requiredFields are the fields that must be known before a search can run.
var requiredFields = []string{FieldLocation, FieldCheckInDate, FieldCheckOutDate}

// SlotFillingSession tracks which fields of a SearchCriteria are known across
// conversation turns. Each field is either unknown or carries its last
// written value; the reasoner is the sole writer and last write wins.
//
// The session is not safe for concurrent use. The conversation layer
// serializes all access per conversation.
type SlotFillingSession struct {
	location     *string
	checkInDate  *string
	checkOutDate *string
	adults       *int
	children     *int
	childrenAges []int // nil means unknown, empty slice means explicitly none
	rooms        *int

	// searched is armed after a search runs for the current completion.
	// Any update that actually changes a value disarms it, so idempotent
	// repeated confirmations never re-trigger a search.
	searched bool
}

// NewSlotFillingSession creates an empty session.
func NewSlotFillingSession() *SlotFillingSession {
	return &SlotFillingSession{}
}

// Update applies the given field values to the session. Values are parsed
// per field; an unparseable value aborts the update with a wrapped
// ErrInvalidFormat and leaves the remaining fields unapplied.
// It returns true when at least one field value actually changed.
func (s *SlotFillingSession) Update(fields map[string]string) (bool, error) {
	changed := false

	for name, value := range fields {
		fieldChanged, err := s.set(name, value)
		if err != nil {
			return changed, err
		}
		if fieldChanged {
			changed = true
		}
	}

	if changed {
		s.searched = false
	}
	return changed, nil
}

// set applies a single field value, reporting whether it changed.
func (s *SlotFillingSession) set(name, value string) (bool, error) {
	switch name {
	case FieldLocation:
		return setString(&s.location, value), nil
	case FieldCheckInDate:
		if err := validateDate(FieldCheckInDate, value); err != nil {
			return false, err
		}
		return setString(&s.checkInDate, value), nil
	case FieldCheckOutDate:
		if err := validateDate(FieldCheckOutDate, value); err != nil {
			return false, err
		}
		return setString(&s.checkOutDate, value), nil
	case FieldAdults:
		return setInt(&s.adults, name, value)
	case FieldChildren:
		return setInt(&s.children, name, value)
	case FieldRooms:
		return setInt(&s.rooms, name, value)
	case FieldChildrenAges:
		ages, err := parseAges(value)
		if err != nil {
			return false, err
		}
		if agesEqual(s.childrenAges, ages) && s.childrenAges != nil {
			return false, nil
		}
		s.childrenAges = ages
		return true, nil
	default:
		return false, fmt.Errorf("%w: unknown field %q", ErrInvalidFormat, name)
	}
}

// State derives the session state from the known fields. It is recomputed on
// every call rather than cached.
func (s *SlotFillingSession) State() SessionState {
	if s.location == nil && s.checkInDate == nil && s.checkOutDate == nil &&
		s.adults == nil && s.children == nil && s.childrenAges == nil && s.rooms == nil {
		return StateEmpty
	}
	if s.IsComplete() {
		return StateComplete
	}
	return StatePartiallyFilled
}

// IsComplete reports whether all required fields are known and, when a
// positive children count is known, the ages list matches it.
func (s *SlotFillingSession) IsComplete() bool {
	if s.location == nil || s.checkInDate == nil || s.checkOutDate == nil {
		return false
	}
	if s.children != nil && *s.children > 0 {
		return len(s.childrenAges) == *s.children
	}
	return true
}

// Missing returns the names of required fields that are still unknown,
// including children_ages when a positive children count awaits its ages.
func (s *SlotFillingSession) Missing() []string {
	var missing []string
	if s.location == nil {
		missing = append(missing, FieldLocation)
	}
	if s.checkInDate == nil {
		missing = append(missing, FieldCheckInDate)
	}
	if s.checkOutDate == nil {
		missing = append(missing, FieldCheckOutDate)
	}
	if s.children != nil && *s.children > 0 && len(s.childrenAges) != *s.children {
		missing = append(missing, FieldChildrenAges)
	}
	return missing
}

// ShouldSearch reports whether a search should run now: the session is
// complete and no search has run since the last real change.
func (s *SlotFillingSession) ShouldSearch() bool {
	return s.IsComplete() && !s.searched
}

// MarkSearched records that a search ran for the current field values.
func (s *SlotFillingSession) MarkSearched() {
	s.searched = true
}

// Criteria materializes a SearchCriteria from the known fields with defaults
// applied. Callers should check IsComplete first; an incomplete session
// yields criteria that will fail validation.
func (s *SlotFillingSession) Criteria() SearchCriteria {
	criteria := SearchCriteria{}
	if s.location != nil {
		criteria.Location = *s.location
	}
	if s.checkInDate != nil {
		criteria.CheckInDate = *s.checkInDate
	}
	if s.checkOutDate != nil {
		criteria.CheckOutDate = *s.checkOutDate
	}
	if s.adults != nil {
		criteria.Adults = *s.adults
	}
	if s.children != nil {
		criteria.Children = *s.children
	}
	if s.childrenAges != nil {
		criteria.ChildrenAges = append([]int(nil), s.childrenAges...)
	}
	if s.rooms != nil {
		criteria.Rooms = *s.rooms
	}
	criteria.SetDefaults()
	return criteria
}

// Known returns the currently known fields as a string map, in the same
// vocabulary Update accepts. Used to brief the reasoner each turn.
func (s *SlotFillingSession) Known() map[string]string {
	known := make(map[string]string)
	if s.location != nil {
		known[FieldLocation] = *s.location
	}
	if s.checkInDate != nil {
		known[FieldCheckInDate] = *s.checkInDate
	}
	if s.checkOutDate != nil {
		known[FieldCheckOutDate] = *s.checkOutDate
	}
	if s.adults != nil {
		known[FieldAdults] = strconv.Itoa(*s.adults)
	}
	if s.children != nil {
		known[FieldChildren] = strconv.Itoa(*s.children)
	}
	if s.childrenAges != nil {
		known[FieldChildrenAges] = formatAges(s.childrenAges)
	}
	if s.rooms != nil {
		known[FieldRooms] = strconv.Itoa(*s.rooms)
	}
	return known
}

func setString(target **string, value string) bool {
	if *target != nil && **target == value {
		return false
	}
	v := value
	*target = &v
	return true
}

func setInt(target **int, name, value string) (bool, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidFormat, name, value)
	}
	if *target != nil && **target == n {
		return false, nil
	}
	*target = &n
	return true, nil
}

// parseAges parses a comma-separated list of ages. An empty string yields an
// empty (known) list, meaning the user confirmed there are no ages to give.
func parseAges(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return []int{}, nil
	}
	parts := strings.Split(value, ",")
	ages := make([]int, 0, len(parts))
	for _, part := range parts {
		age, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: children_ages must be comma-separated integers, got %q", ErrInvalidFormat, value)
		}
		ages = append(ages, age)
	}
	return ages, nil
}

func formatAges(ages []int) string {
	parts := make([]string, len(ages))
	for i, age := range ages {
		parts[i] = strconv.Itoa(age)
	}
	return strings.Join(parts, ",")
}

func agesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
