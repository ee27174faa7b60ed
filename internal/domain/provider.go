package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_domain.go -package=domain

// HotelProvider is the port for an upstream hotel search provider.
// Implementations build the provider query from the criteria, execute the
// call(s), and return normalized Hotel records in provider order, already
// capped and enriched. The criteria is never mutated.
type HotelProvider interface {
	// Name returns the provider's unique identifier for logging and errors.
	Name() string

	// Search executes the provider call(s) for the given criteria.
	// A primary-call failure returns an error and no records; per-record
	// enrichment failures degrade only the affected record.
	Search(ctx context.Context, criteria SearchCriteria) ([]Hotel, SearchMetadata, error)
}
