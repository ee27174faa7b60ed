// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"testing"
	"time"

	"github.com/hotel-search/hotel-search-assistant/internal/domain"
)

// ValidCriteria returns fully specified search criteria for tests.
func ValidCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Location:     "Paris",
		CheckInDate:  "2026-09-10",
		CheckOutDate: "2026-09-12",
		Adults:       2,
		Rooms:        1,
	}
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// FloatPtr returns a pointer to a float64.
// Convenience function for rating assertions.
func FloatPtr(f float64) *float64 {
	return &f
}

// IntPtr returns a pointer to an int.
func IntPtr(i int) *int {
	return &i
}
