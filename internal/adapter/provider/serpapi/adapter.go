package serpapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotel-search/hotel-search-assistant/internal/domain"
)

// ProviderName is the unique identifier for this provider.
const ProviderName = "serpapi_google_hotels"

// engine is the SerpAPI engine identifier for the hotel search mode.
const engine = "google_hotels"

// Default adapter settings.
const (
	DefaultLookupTimeout = 2 * time.Second
)

// Config contains configuration options for the adapter.
type Config struct {
	// ResultLimit caps how many raw records are retained per search.
	ResultLimit int

	// LookupTimeout bounds each per-record address follow-up call.
	LookupTimeout time.Duration
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		ResultLimit:   domain.DefaultResultLimit,
		LookupTimeout: DefaultLookupTimeout,
	}
}

// Adapter implements domain.HotelProvider using the SerpAPI Google Hotels
// engine. A primary search call produces the capped record set; records
// without a usable address get an independent follow-up call each.
type Adapter struct {
	client        *Client
	resultLimit   int
	lookupTimeout time.Duration
	log           zerolog.Logger
}

// NewAdapter creates an Adapter around the given client.
// If config is nil, default values are used.
func NewAdapter(client *Client, config *Config, log zerolog.Logger) *Adapter {
	cfg := DefaultConfig()
	if config != nil {
		if config.ResultLimit > 0 {
			cfg.ResultLimit = config.ResultLimit
		}
		if config.LookupTimeout > 0 {
			cfg.LookupTimeout = config.LookupTimeout
		}
	}

	return &Adapter{
		client:        client,
		resultLimit:   cfg.ResultLimit,
		lookupTimeout: cfg.LookupTimeout,
		log:           log,
	}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Search implements domain.HotelProvider.
// A primary-call failure aborts the whole search; address follow-up failures
// degrade only the affected record.
func (a *Adapter) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Hotel, domain.SearchMetadata, error) {
	params := buildParams(criteria)

	resp, err := a.client.Search(ctx, params)
	if err != nil {
		return nil, domain.SearchMetadata{}, domain.NewProviderError(ProviderName,
			fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err))
	}

	raw := resp.Properties
	if len(raw) > a.resultLimit {
		raw = raw[:a.resultLimit]
	}

	hotels := make([]domain.Hotel, len(raw))
	for i, record := range raw {
		hotels[i] = normalize(record)
	}

	metadata := a.enrichAddresses(ctx, params, raw, hotels)
	return hotels, metadata, nil
}

// enrichAddresses issues one details call per record whose base payload
// lacked a usable address. The calls run concurrently across the capped set;
// each writes only its own index so provider order is preserved regardless of
// completion order. Failures nil out only that record's address.
func (a *Adapter) enrichAddresses(ctx context.Context, params url.Values, raw []rawProperty, hotels []domain.Hotel) domain.SearchMetadata {
	type lookup struct {
		index int
		token string
	}

	var pending []lookup
	for i, record := range raw {
		if hotels[i].Address != nil || record.PropertyToken == "" {
			continue
		}
		pending = append(pending, lookup{index: i, token: record.PropertyToken})
	}

	metadata := domain.SearchMetadata{AddressLookups: len(pending)}
	if len(pending) == 0 {
		return metadata
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures int
	)

	for _, l := range pending {
		wg.Add(1)
		go func(l lookup) {
			defer wg.Done()

			address, err := a.lookupAddress(ctx, params, l.token)
			if err != nil || address == "" {
				if err != nil {
					a.log.Warn().
						Err(err).
						Int("result_index", l.index).
						Msg("Address lookup failed, record degrades to null address")
				}
				mu.Lock()
				failures++
				mu.Unlock()
				return
			}
			hotels[l.index].Address = &address
		}(l)
	}

	wg.Wait()
	metadata.AddressFailures = failures
	return metadata
}

// lookupAddress runs a single details call for the given property token.
func (a *Adapter) lookupAddress(ctx context.Context, base url.Values, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()

	params := url.Values{}
	for key, values := range base {
		params[key] = values
	}
	params.Set("property_token", token)

	detail, err := a.client.PropertyDetails(ctx, params)
	if err != nil {
		return "", err
	}
	if detail.Address != "" {
		return detail.Address, nil
	}
	return detail.FormattedAddress, nil
}

// buildParams constructs the provider query from the criteria.
// children_ages is included only when children were requested and ages are
// known; otherwise the provider falls back to its own defaults.
func buildParams(criteria domain.SearchCriteria) url.Values {
	params := url.Values{}
	params.Set("engine", engine)
	params.Set("q", "hotels in "+criteria.Location)
	params.Set("check_in_date", criteria.CheckInDate)
	params.Set("check_out_date", criteria.CheckOutDate)
	params.Set("adults", strconv.Itoa(criteria.Adults))
	params.Set("children", strconv.Itoa(criteria.Children))
	params.Set("rooms", strconv.Itoa(criteria.Rooms))

	if criteria.Children > 0 && len(criteria.ChildrenAges) > 0 {
		ages := make([]string, len(criteria.ChildrenAges))
		for i, age := range criteria.ChildrenAges {
			ages[i] = strconv.Itoa(age)
		}
		params.Set("children_ages", strings.Join(ages, ","))
	}

	return params
}

// Ensure Adapter implements the provider port at compile time.
var _ domain.HotelProvider = (*Adapter)(nil)
