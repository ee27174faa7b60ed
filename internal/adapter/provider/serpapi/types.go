package serpapi

// searchResponse is the shape of a SerpAPI Google Hotels search payload.
// Only the fields the normalizer reads are declared.
type searchResponse struct {
	// Error carries the provider's error message on failed searches.
	Error string `json:"error,omitempty"`

	// Properties is the raw list of hotel records in provider order.
	Properties []rawProperty `json:"properties"`
}

// rawProperty is a single raw hotel record from the provider.
type rawProperty struct {
	Name    string `json:"name"`
	Address string `json:"address"`

	// TotalRate holds the rate for the whole stay.
	TotalRate *rate `json:"total_rate,omitempty"`

	// Prices lists per-source nightly rates; only the first entry's
	// rate_per_night is consulted as a fallback.
	Prices []priceEntry `json:"prices,omitempty"`

	// OverallRating is usually a JSON number but some payloads carry a
	// string, including non-numeric sentinels like "n/a".
	OverallRating any `json:"overall_rating,omitempty"`

	// Link is the hotel's direct website link, when present.
	Link string `json:"link,omitempty"`

	// DetailsLink is the provider's own details endpoint for this record.
	DetailsLink string `json:"serpapi_property_details_link,omitempty"`

	// PropertyToken keys the per-record details follow-up call.
	PropertyToken string `json:"property_token,omitempty"`
}

// rate holds a displayed rate; Lowest is a formatted string such as "$150".
type rate struct {
	Lowest string `json:"lowest"`
}

// priceEntry is an entry of a property's prices list.
type priceEntry struct {
	RatePerNight *rate `json:"rate_per_night,omitempty"`
}

// detailResponse is the shape of a property-details payload. The address may
// appear under either key depending on the property.
type detailResponse struct {
	Error            string `json:"error,omitempty"`
	Address          string `json:"address,omitempty"`
	FormattedAddress string `json:"formatted_address,omitempty"`
}
