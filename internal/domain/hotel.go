package domain

// DefaultResultLimit is the default cap on hotel records retained per search.
// It is an operational choice, not a domain invariant, so it stays configurable.
const DefaultResultLimit = 5

// Hotel represents a single normalized hotel search result.
// Only the name is always present (possibly empty); the remaining fields are
// nil when the provider omitted them or when enrichment failed for the record.
type Hotel struct {
	// Name is the hotel name, trimmed of surrounding whitespace
	Name string `json:"name"`

	// Address is the street address, if known
	Address *string `json:"address"`

	// Price is the displayed rate, preferring the total stay rate over the
	// first per-night rate
	Price *string `json:"price"`

	// Rating is the numeric guest rating, if present and parseable
	Rating *float64 `json:"rating"`

	// Link points to the hotel's page or the provider's details endpoint
	Link *string `json:"link"`
}

// SearchResponse is the envelope returned for a completed hotel search.
// Hotels appear in provider-returned order; an empty list is a valid
// no-matches outcome, not an error.
type SearchResponse struct {
	// SearchCriteria echoes the criteria the search ran with
	SearchCriteria SearchCriteria `json:"search_criteria"`

	// Metadata describes how the search executed
	Metadata SearchMetadata `json:"metadata"`

	// Hotels is the capped, ordered list of normalized results
	Hotels []Hotel `json:"hotels"`
}

// SearchMetadata contains metadata about the search execution.
type SearchMetadata struct {
	// TotalResults is the number of hotels in the envelope
	TotalResults int `json:"total_results"`

	// AddressLookups is the number of per-record address follow-up calls issued
	AddressLookups int `json:"address_lookups"`

	// AddressFailures is the number of follow-up calls that failed or came
	// back empty; those records carry a nil address
	AddressFailures int `json:"address_failures"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"search_time_ms"`
}

// NewSearchResponse builds a SearchResponse, guaranteeing a non-nil hotel
// slice and a consistent result count.
func NewSearchResponse(criteria SearchCriteria, hotels []Hotel, metadata SearchMetadata) *SearchResponse {
	if hotels == nil {
		hotels = []Hotel{}
	}
	metadata.TotalResults = len(hotels)

	return &SearchResponse{
		SearchCriteria: criteria,
		Metadata:       metadata,
		Hotels:         hotels,
	}
}

// StringPtr returns a pointer to s, or nil when s is empty. Provider fields
// that are absent or blank normalize to nil rather than an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
