// Package usecase contains the application services that orchestrate the
// hotel search pipeline and the slot-filling conversation flow.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotel-search/hotel-search-assistant/internal/domain"
)

// DefaultSearchTimeout bounds the whole search including address follow-ups.
const DefaultSearchTimeout = 10 * time.Second

// HotelSearchUseCase defines the interface for hotel search operations.
type HotelSearchUseCase interface {
	// Search validates the criteria and runs the provider pipeline.
	// It returns either a complete envelope (possibly empty, possibly with
	// some null addresses) or a single error, never a partial envelope.
	Search(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResponse, error)
}

// hotelSearchUseCase implements HotelSearchUseCase.
type hotelSearchUseCase struct {
	provider domain.HotelProvider
	timeout  time.Duration
	log      zerolog.Logger
}

// SearchConfig contains configuration options for the search use case.
type SearchConfig struct {
	// SearchTimeout bounds the whole search call.
	SearchTimeout time.Duration
}

// NewHotelSearchUseCase creates a HotelSearchUseCase over the given provider.
// If config is nil, default timeout values are used.
func NewHotelSearchUseCase(provider domain.HotelProvider, config *SearchConfig, log zerolog.Logger) HotelSearchUseCase {
	timeout := DefaultSearchTimeout
	if config != nil && config.SearchTimeout > 0 {
		timeout = config.SearchTimeout
	}

	return &hotelSearchUseCase{
		provider: provider,
		timeout:  timeout,
		log:      log,
	}
}

// Search implements HotelSearchUseCase.Search.
func (uc *hotelSearchUseCase) Search(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResponse, error) {
	startTime := time.Now()

	criteria.SetDefaults()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	// Dispatch precondition, deliberately outside Validate: the model keeps
	// the original staged taxonomy, the pipeline refuses inverted ranges.
	if !criteria.DatesOrdered() {
		return nil, fmt.Errorf("%w: check_out_date must be after check_in_date", domain.ErrInconsistent)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	uc.log.Debug().
		Str("provider", uc.provider.Name()).
		Str("location", criteria.Location).
		Str("check_in", criteria.CheckInDate).
		Str("check_out", criteria.CheckOutDate).
		Msg("Dispatching hotel search")

	hotels, metadata, err := uc.provider.Search(ctx, criteria)
	if err != nil {
		uc.log.Error().
			Err(err).
			Str("provider", uc.provider.Name()).
			Msg("Hotel search failed")

		// Timeouts and any provider failure surface as a single
		// unavailable error; no partial envelope accompanies it.
		if errors.Is(err, domain.ErrSearchUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}

	metadata.SearchTimeMs = time.Since(startTime).Milliseconds()
	response := domain.NewSearchResponse(criteria, hotels, metadata)

	uc.log.Info().
		Str("provider", uc.provider.Name()).
		Int("results", response.Metadata.TotalResults).
		Int("address_failures", response.Metadata.AddressFailures).
		Int64("duration_ms", response.Metadata.SearchTimeMs).
		Msg("Hotel search completed")

	return response, nil
}

// Ensure hotelSearchUseCase implements HotelSearchUseCase at compile time.
var _ HotelSearchUseCase = (*hotelSearchUseCase)(nil)
