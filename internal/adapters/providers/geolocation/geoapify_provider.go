package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/zatekoja/tripwise/internal/domain/providers"
	"github.com/zatekoja/tripwise/internal/infrastructure/observability"
	"github.com/zatekoja/tripwise/pkg/geo"
)

const (
	geoapifyPlacesURL     = "https://api.geoapify.com/v2/places"
	defaultPlacesCacheTTL = 60 * 60 * 24
	defaultHTTPTimeout    = 8 * time.Second
	maxGeoapifyLimit      = 500
)

// ErrMissingAPIKey is returned when the provider is used without credentials
var ErrMissingAPIKey = errors.New("geoapify api key is required")

// GeoapifyOptions overrides defaults, mostly for tests
type GeoapifyOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	CacheTTL   int
	Breaker    *gobreaker.Settings
}

// GeoapifyPlacesProvider implements PlacesProvider using the Geoapify
// Places API. Responses are cached and calls go through a circuit breaker.
type GeoapifyPlacesProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      providers.CacheProvider
	cacheTTL   int
	cb         *gobreaker.CircuitBreaker[[]*providers.Place]
}

// NewGeoapifyPlacesProvider creates a new Geoapify places provider. cache may
// be nil.
func NewGeoapifyPlacesProvider(apiKey string, cache providers.CacheProvider, opts GeoapifyOptions) *GeoapifyPlacesProvider {
	if strings.TrimSpace(opts.BaseURL) == "" {
		opts.BaseURL = geoapifyPlacesURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultPlacesCacheTTL
	}

	settings := defaultBreakerSettings()
	if opts.Breaker != nil {
		settings = *opts.Breaker
	}

	return &GeoapifyPlacesProvider{
		apiKey:     apiKey,
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		cache:      cache,
		cacheTTL:   opts.CacheTTL,
		cb:         gobreaker.NewCircuitBreaker[[]*providers.Place](settings),
	}
}

// defaultBreakerSettings opens after five consecutive failures and probes
// again after thirty seconds.
func defaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "geoapify-places",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			observability.GetLogger().Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
		},
	}
}

// GetNearbyPlaces finds places of the requested categories around the center
func (g *GeoapifyPlacesProvider) GetNearbyPlaces(ctx context.Context, query providers.NearbyQuery) ([]*providers.Place, error) {
	if g.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if query.RadiusKm <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %g", query.RadiusKm)
	}

	cacheKey := placesCacheKey(query)
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var places []*providers.Place
			if err := json.Unmarshal(cached, &places); err == nil {
				return places, nil
			}
		}
	}

	places, err := g.cb.Execute(func() ([]*providers.Place, error) {
		return g.fetch(ctx, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("geoapify places lookup rejected: %w", err)
		}
		return nil, err
	}

	if g.cache != nil {
		if payload, err := json.Marshal(places); err == nil {
			if err := g.cache.Set(ctx, cacheKey, payload, g.cacheTTL); err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache geoapify response")
			}
		}
	}

	return places, nil
}

// State reports the circuit breaker state
func (g *GeoapifyPlacesProvider) State() gobreaker.State {
	return g.cb.State()
}

func (g *GeoapifyPlacesProvider) fetch(ctx context.Context, query providers.NearbyQuery) ([]*providers.Place, error) {
	reqURL := fmt.Sprintf("%s?%s", g.baseURL, g.params(query).Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build places request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr geoapifyError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("places request returned status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("places request returned status %d", resp.StatusCode)
	}

	var payload geoapifyFeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}

	places := make([]*providers.Place, 0, len(payload.Features))
	for _, feature := range payload.Features {
		if place := feature.toPlace(); place != nil {
			places = append(places, place)
		}
	}
	return places, nil
}

func (g *GeoapifyPlacesProvider) params(query providers.NearbyQuery) url.Values {
	lon := query.Center.Longitude
	lat := query.Center.Latitude
	radiusM := int(query.RadiusKm * 1000)

	limit := query.Limit
	if limit <= 0 || limit > maxGeoapifyLimit {
		limit = maxGeoapifyLimit
	}

	categories := query.Categories
	if len(categories) == 0 {
		categories = []string{"tourism"}
	}

	params := url.Values{}
	params.Set("categories", strings.Join(categories, ","))
	params.Set("filter", fmt.Sprintf("circle:%f,%f,%d", lon, lat, radiusM))
	params.Set("bias", fmt.Sprintf("proximity:%f,%f", lon, lat))
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("apiKey", g.apiKey)
	return params
}

func placesCacheKey(query providers.NearbyQuery) string {
	categories := append([]string(nil), query.Categories...)
	sort.Strings(categories)
	raw := fmt.Sprintf("%.4f,%.4f|%.3f|%s|%d",
		query.Center.Latitude, query.Center.Longitude, query.RadiusKm,
		strings.Join(categories, ","), query.Limit)
	return "geoapify:v1:places:" + hashKey(raw)
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// CategoryTags turns Geoapify dotted categories into the plain tags users
// pick as preferences: the leaf of each category plus its root group.
// "tourism.sights.place_of_worship.temple" yields "temple" and "tourism".
func CategoryTags(categories []string) []string {
	tags := make([]string, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, category := range categories {
		parts := strings.Split(category, ".")
		add(parts[len(parts)-1])
		add(parts[0])
	}
	return tags
}

type geoapifyError struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

type geoapifyFeatureCollection struct {
	Type     string            `json:"type"`
	Features []geoapifyFeature `json:"features"`
}

type geoapifyFeature struct {
	Properties geoapifyProperties `json:"properties"`
	Geometry   geoapifyGeometry   `json:"geometry"`
}

type geoapifyGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type geoapifyProperties struct {
	PlaceID      string   `json:"place_id"`
	Name         string   `json:"name"`
	Formatted    string   `json:"formatted"`
	AddressLine2 string   `json:"address_line2"`
	City         string   `json:"city"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	Categories   []string `json:"categories"`
}

func (f geoapifyFeature) toPlace() *providers.Place {
	props := f.Properties
	if strings.TrimSpace(props.Name) == "" {
		return nil
	}

	lat, lon := props.Lat, props.Lon
	if lat == 0 && lon == 0 && len(f.Geometry.Coordinates) >= 2 {
		lon, lat = f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
	}

	address := props.AddressLine2
	if address == "" {
		address = props.Formatted
	}

	return &providers.Place{
		ID:          props.PlaceID,
		Name:        props.Name,
		Address:     address,
		City:        props.City,
		Coordinates: geo.Coordinates{Latitude: lat, Longitude: lon},
		Categories:  CategoryTags(props.Categories),
	}
}
