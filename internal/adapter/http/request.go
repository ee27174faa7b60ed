// Package http provides the HTTP handler layer for the hotel search API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// maxMessageLength caps the size of a single conversational message.
const maxMessageLength = 4096

// SearchHotelsRequest represents the request body for a direct hotel search.
type SearchHotelsRequest struct {
	// Location is the city or region to search in (e.g., "Paris")
	Location string `json:"location"`

	// CheckInDate is the check-in date in YYYY-MM-DD format
	CheckInDate string `json:"check_in_date"`

	// CheckOutDate is the check-out date in YYYY-MM-DD format
	CheckOutDate string `json:"check_out_date"`

	// Adults is the number of adults (defaults to 1 when omitted)
	Adults int `json:"adults,omitempty"`

	// Children is the number of children (defaults to 0)
	Children int `json:"children,omitempty"`

	// ChildrenAges lists the age of each child; length must equal children
	ChildrenAges []int `json:"children_ages,omitempty"`

	// Rooms is the number of rooms requested (defaults to 1 when omitted)
	Rooms int `json:"rooms,omitempty"`
}

// MessageRequest represents one user message addressed to a conversation.
type MessageRequest struct {
	// Message is the raw user utterance
	Message string `json:"message"`

	// UserID identifies the user for preference persistence (optional)
	UserID string `json:"user_id,omitempty"`
}

// datePattern matches dates in YYYY-MM-DD format.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the search request and returns any validation errors.
func (r *SearchHotelsRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateLocation(errs)
	r.validateDate(errs, "check_in_date", r.CheckInDate)
	r.validateDate(errs, "check_out_date", r.CheckOutDate)
	r.validateDateOrder(errs)
	r.validateOccupancy(errs)
	r.validateChildrenAges(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchHotelsRequest) validateLocation(errs *ValidationErrors) {
	location := strings.TrimSpace(r.Location)
	if location == "" {
		errs.Add("location", "location is required")
		return
	}
	r.Location = location
}

func (r *SearchHotelsRequest) validateDate(errs *ValidationErrors, field, value string) {
	if value == "" {
		errs.Add(field, field+" is required")
		return
	}
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errs.Add(field, field+" is not a valid date")
	}
}

func (r *SearchHotelsRequest) validateDateOrder(errs *ValidationErrors) {
	in, errIn := time.Parse("2006-01-02", r.CheckInDate)
	out, errOut := time.Parse("2006-01-02", r.CheckOutDate)
	if errIn != nil || errOut != nil {
		return // field-level errors already recorded
	}
	if !in.Before(out) {
		errs.Add("check_out_date", "check_out_date must be after check_in_date")
	}
}

func (r *SearchHotelsRequest) validateOccupancy(errs *ValidationErrors) {
	if r.Adults < 0 {
		errs.Add("adults", "adults must be a non-negative number")
	}
	if r.Children < 0 {
		errs.Add("children", "children must be a non-negative number")
	}
	if r.Rooms < 0 {
		errs.Add("rooms", "rooms must be a non-negative number")
	}
}

func (r *SearchHotelsRequest) validateChildrenAges(errs *ValidationErrors) {
	for i, age := range r.ChildrenAges {
		if age < 0 {
			errs.Add(fmt.Sprintf("children_ages[%d]", i), "age must be a non-negative number")
		}
	}
	if r.Children >= 0 && len(r.ChildrenAges) != r.Children {
		errs.Add("children_ages",
			fmt.Sprintf("children_ages must have exactly %d entries", r.Children))
	}
}

// Validate validates the message request and returns any validation errors.
func (r *MessageRequest) Validate() error {
	errs := &ValidationErrors{}

	message := strings.TrimSpace(r.Message)
	if message == "" {
		errs.Add("message", "message is required")
	} else if len(message) > maxMessageLength {
		errs.Add("message", fmt.Sprintf("message cannot exceed %d characters", maxMessageLength))
	}
	r.Message = message

	if errs.HasErrors() {
		return errs
	}
	return nil
}
