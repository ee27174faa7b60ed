package serpapi

import (
	"strconv"
	"strings"

	"github.com/hotel-search/hotel-search-assistant/internal/domain"
)

// normalize converts a raw provider record to a domain Hotel.
// The address is left to the enrichment stage when the base payload lacks one.
func normalize(raw rawProperty) domain.Hotel {
	return domain.Hotel{
		Name:    strings.TrimSpace(raw.Name),
		Address: domain.StringPtr(strings.TrimSpace(raw.Address)),
		Price:   normalizePrice(raw),
		Rating:  coerceRating(raw.OverallRating),
		Link:    normalizeLink(raw),
	}
}

// normalizePrice picks the total stay rate when present, falling back to the
// first nightly rate. The two tiers must be evaluated in that order.
func normalizePrice(raw rawProperty) *string {
	if raw.TotalRate != nil && raw.TotalRate.Lowest != "" {
		return domain.StringPtr(raw.TotalRate.Lowest)
	}
	if len(raw.Prices) > 0 && raw.Prices[0].RatePerNight != nil {
		return domain.StringPtr(raw.Prices[0].RatePerNight.Lowest)
	}
	return nil
}

// coerceRating converts the provider's rating value to a float.
// Payloads carry a JSON number or a string; non-numeric values such as "n/a"
// normalize to an absent rating, never an error.
func coerceRating(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

// normalizeLink prefers the hotel's direct link over the provider's details
// endpoint.
func normalizeLink(raw rawProperty) *string {
	if raw.Link != "" {
		return domain.StringPtr(raw.Link)
	}
	return domain.StringPtr(raw.DetailsLink)
}
