// Package mock provides test doubles for the hotel search system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hotel-search/hotel-search-assistant/internal/domain"
)

// Provider is a configurable mock implementation of domain.HotelProvider.
// It supports configurable delays, errors, and responses for testing
// various scenarios including timeouts and provider failures.
type Provider struct {
	name      string
	hotels    []domain.Hotel
	metadata  domain.SearchMetadata
	err       error
	delay     time.Duration
	callCount int
	mu        sync.Mutex
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{
		name:   name,
		hotels: nil,
		err:    nil,
		delay:  0,
	}
}

// WithHotels configures the provider to return the given hotels.
func (p *Provider) WithHotels(hotels []domain.Hotel) *Provider {
	p.hotels = hotels
	return p
}

// WithMetadata configures the metadata returned alongside the hotels.
func (p *Provider) WithMetadata(metadata domain.SearchMetadata) *Provider {
	p.metadata = metadata
	return p
}

// WithError configures the provider to return the given error.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait the given duration before responding.
// This is useful for testing timeout behavior.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name returns the provider's unique identifier.
func (p *Provider) Name() string {
	return p.name
}

// Search implements domain.HotelProvider.Search.
// It respects context cancellation, applies configured delay,
// and returns configured hotels or error.
func (p *Provider) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Hotel, domain.SearchMetadata, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	// Apply delay if configured
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, domain.SearchMetadata{}, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	// Check context after delay
	if ctx.Err() != nil {
		return nil, domain.SearchMetadata{}, ctx.Err()
	}

	// Return configured error if set
	if p.err != nil {
		return nil, domain.SearchMetadata{}, p.err
	}

	// Return configured hotels
	return p.hotels, p.metadata, nil
}

// CallCount returns the number of times Search was called.
// This is useful for verifying provider interactions.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Reset resets the call count to zero.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
}

// Ensure Provider implements domain.HotelProvider at compile time.
var _ domain.HotelProvider = (*Provider)(nil)

// SampleHotels returns a slice of sample hotels for testing.
// The hotels have all fields populated with realistic values.
func SampleHotels(count int) []domain.Hotel {
	hotels := make([]domain.Hotel, count)

	names := []string{
		"Grand Palace Hotel",
		"Riverside Boutique Inn",
		"Central Station Suites",
		"Old Town Courtyard",
		"Harbor View Residence",
	}

	for i := 0; i < count; i++ {
		name := names[i%len(names)]
		if i >= len(names) {
			name = fmt.Sprintf("%s %d", name, i/len(names)+1)
		}

		rating := 3.5 + 0.3*float64(i%5)
		hotels[i] = domain.Hotel{
			Name:    name,
			Address: domain.StringPtr(fmt.Sprintf("%d Main Street", 10+i)),
			Price:   domain.StringPtr(fmt.Sprintf("$%d", 120+20*i)),
			Rating:  &rating,
			Link:    domain.StringPtr(fmt.Sprintf("https://example.com/hotels/%d", i+1)),
		}
	}

	return hotels
}
