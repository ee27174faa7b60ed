// Package domain contains the core business entities and rules for the hotel
// search assistant. These entities are provider-agnostic and form the
// foundation upon which all other components are built.
package domain

import (
	"fmt"
	"regexp"
	"time"
)

// SearchCriteria defines the parameters for a hotel search request.
// A criteria value is constructed fresh per search (directly or by a
// SlotFillingSession across turns) and is never mutated once handed to
// the search pipeline.
type SearchCriteria struct {
	// Location is the city or region to search in (e.g., "Paris")
	Location string `json:"location"`

	// CheckInDate is the check-in date in YYYY-MM-DD format
	CheckInDate string `json:"check_in_date"`

	// CheckOutDate is the check-out date in YYYY-MM-DD format
	CheckOutDate string `json:"check_out_date"`

	// Adults is the number of adults (default: 1)
	Adults int `json:"adults"`

	// Children is the number of children (default: 0)
	Children int `json:"children"`

	// ChildrenAges lists the age of each child; its length must equal Children
	ChildrenAges []int `json:"children_ages,omitempty"`

	// Rooms is the number of rooms requested (default: 1)
	Rooms int `json:"rooms"`
}

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate checks the criteria in stages: field formats first, then numeric
// ranges, then cross-field consistency. The cross-field check runs last so
// an error always reports the single most specific cause.
func (s *SearchCriteria) Validate() error {
	// Format stage
	if s.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidFormat)
	}
	if err := validateDate("check_in_date", s.CheckInDate); err != nil {
		return err
	}
	if err := validateDate("check_out_date", s.CheckOutDate); err != nil {
		return err
	}

	// Range stage
	if s.Adults < 1 {
		return fmt.Errorf("%w: adults must be at least 1, got %d", ErrOutOfRange, s.Adults)
	}
	if s.Children < 0 {
		return fmt.Errorf("%w: children cannot be negative, got %d", ErrOutOfRange, s.Children)
	}
	if s.Rooms < 1 {
		return fmt.Errorf("%w: rooms must be at least 1, got %d", ErrOutOfRange, s.Rooms)
	}
	for i, age := range s.ChildrenAges {
		if age < 0 {
			return fmt.Errorf("%w: children_ages[%d] cannot be negative, got %d", ErrOutOfRange, i, age)
		}
	}

	// Consistency stage: runs only after every field passed on its own.
	if len(s.ChildrenAges) != s.Children {
		return fmt.Errorf("%w: children_ages must have exactly %d entries, got %d",
			ErrInconsistent, s.Children, len(s.ChildrenAges))
	}

	return nil
}

// validateDate checks a single date field for format and calendar validity.
func validateDate(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidFormat, field)
	}
	if !dateRegex.MatchString(value) {
		return fmt.Errorf("%w: %s must be in YYYY-MM-DD format, got %q", ErrInvalidFormat, field, value)
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("%w: %s is not a valid calendar date: %s", ErrInvalidFormat, field, value)
	}
	return nil
}

// SetDefaults applies default values to zero-valued optional fields.
func (s *SearchCriteria) SetDefaults() {
	if s.Adults == 0 {
		s.Adults = 1
	}
	if s.Rooms == 0 {
		s.Rooms = 1
	}
}

// DatesOrdered reports whether the check-in date falls strictly before the
// check-out date. Both dates must already be format-valid.
func (s *SearchCriteria) DatesOrdered() bool {
	in, err := time.Parse("2006-01-02", s.CheckInDate)
	if err != nil {
		return false
	}
	out, err := time.Parse("2006-01-02", s.CheckOutDate)
	if err != nil {
		return false
	}
	return in.Before(out)
}
