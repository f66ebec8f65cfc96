// README: PlaceResolver normalizes Google geocoding/places responses into PlaceDetails.
package places

import (
	"context"
	"errors"
	"net"
	"net/url"
	"sync"

	"googlemaps.github.io/maps"

	"trailbook/internal/types"
)

const (
	// defaultAutocompleteRadiusMeters weights autocomplete results around an
	// optional bias point.
	defaultAutocompleteRadiusMeters = 50000
	// defaultNearbyRadiusMeters bounds nearby searches.
	defaultNearbyRadiusMeters = 5000
)

// mapsAPI is the subset of the Google Maps client the resolver uses.
// *maps.Client satisfies it; tests substitute a fake.
type mapsAPI interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
	PlaceAutocomplete(ctx context.Context, r *maps.PlaceAutocompleteRequest) (maps.AutocompleteResponse, error)
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// Resolver turns heterogeneous provider responses into the single
// PlaceDetails shape. All provider interactions are single-shot; retries are
// the caller's responsibility.
type Resolver struct {
	apiKey string

	mu        sync.Mutex
	client    mapsAPI
	newClient func() (mapsAPI, error)
}

// NewResolver creates a Resolver for the given API key. The underlying
// client is created lazily on first use and shared once created; a failed
// creation is not memoized and is retried on the next call.
func NewResolver(apiKey string) *Resolver {
	r := &Resolver{apiKey: apiKey}
	r.newClient = func() (mapsAPI, error) {
		return maps.NewClient(maps.WithAPIKey(apiKey))
	}
	return r
}

func (r *Resolver) api() (mapsAPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil {
		return r.client, nil
	}
	c, err := r.newClient()
	if err != nil {
		return nil, &ProviderError{Status: "client: " + err.Error()}
	}
	r.client = c
	return c, nil
}

// wrapProviderErr classifies a client error: transport-level failures map to
// status "transport", everything else carries the provider's status text.
func wrapProviderErr(err error) error {
	var netErr net.Error
	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return &ProviderError{Status: "transport"}
	}
	return &ProviderError{Status: err.Error()}
}

// ResolveByCoordinates reverse-geocodes a coordinate pair.
func (r *Resolver) ResolveByCoordinates(ctx context.Context, lat, lng float64) (*PlaceDetails, error) {
	if !IsValidCoordinates(lat, lng) {
		return nil, ErrInvalidCoordinates
	}
	client, err := r.api()
	if err != nil {
		return nil, err
	}
	results, err := client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return nil, wrapProviderErr(err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	d := fromGeocodingResult(results[0])
	return &d, nil
}

// ResolveByPlaceID fetches full place details by the provider's stable id,
// requesting a fixed field set.
func (r *Resolver) ResolveByPlaceID(ctx context.Context, placeID string) (*PlaceDetails, error) {
	if placeID == "" {
		return nil, ErrNotFound
	}
	client, err := r.api()
	if err != nil {
		return nil, err
	}
	res, err := client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskName,
			maps.PlaceDetailsFieldMaskFormattedAddress,
			maps.PlaceDetailsFieldMaskGeometry,
			maps.PlaceDetailsFieldMaskPlaceID,
			maps.PlaceDetailsFieldMaskTypes,
			maps.PlaceDetailsFieldMaskBusinessStatus,
			maps.PlaceDetailsFieldMaskRatings,
			maps.PlaceDetailsFieldMaskPhotos,
			maps.PlaceDetailsFieldMaskAddressComponent,
		},
	})
	if err != nil {
		return nil, wrapProviderErr(err)
	}
	if res.PlaceID == "" && res.Name == "" && res.FormattedAddress == "" {
		return nil, ErrNotFound
	}
	d := fromPlaceFields(r.apiKey, placeFields{
		Name:             res.Name,
		FormattedAddress: res.FormattedAddress,
		Location:         res.Geometry.Location,
		PlaceID:          res.PlaceID,
		Types:            res.Types,
		BusinessStatus:   res.BusinessStatus,
		Rating:           res.Rating,
		Photos:           res.Photos,
		Components:       res.AddressComponents,
	})
	if d.PlaceID == "" {
		d.PlaceID = placeID
	}
	return &d, nil
}

// SearchByText returns autocomplete predictions for a free-text query.
// Each call is an independent search session with a fresh session token.
// Zero results is not an error.
func (r *Resolver) SearchByText(ctx context.Context, query string, bias *Bias) ([]AutocompletePrediction, error) {
	client, err := r.api()
	if err != nil {
		return nil, err
	}
	req := &maps.PlaceAutocompleteRequest{
		Input:        query,
		SessionToken: maps.NewPlaceAutocompleteSessionToken(),
	}
	if bias != nil {
		if !IsValidCoordinates(bias.Center.Lat, bias.Center.Lng) {
			return nil, ErrInvalidCoordinates
		}
		req.Location = &maps.LatLng{Lat: bias.Center.Lat, Lng: bias.Center.Lng}
		req.Radius = bias.RadiusMeters
		if req.Radius == 0 {
			req.Radius = defaultAutocompleteRadiusMeters
		}
	}
	resp, err := client.PlaceAutocomplete(ctx, req)
	if err != nil {
		return nil, wrapProviderErr(err)
	}
	predictions := make([]AutocompletePrediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		predictions = append(predictions, AutocompletePrediction{
			Description: p.Description,
			PlaceID:     p.PlaceID,
			StructuredFormatting: StructuredFormatting{
				MainText:      p.StructuredFormatting.MainText,
				SecondaryText: p.StructuredFormatting.SecondaryText,
			},
			Types: p.Types,
		})
	}
	return predictions, nil
}

// SearchNearby returns normalized details for places around a point, closest
// first. radiusMeters defaults to 5000 when zero; category optionally
// restricts results to one provider place type. Zero results is not an error.
func (r *Resolver) SearchNearby(ctx context.Context, lat, lng float64, radiusMeters uint, category string) ([]PlaceDetails, error) {
	if !IsValidCoordinates(lat, lng) {
		return nil, ErrInvalidCoordinates
	}
	client, err := r.api()
	if err != nil {
		return nil, err
	}
	if radiusMeters == 0 {
		radiusMeters = defaultNearbyRadiusMeters
	}
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lng},
		Radius:   radiusMeters,
	}
	if category != "" {
		req.Type = maps.PlaceType(category)
	}
	resp, err := client.NearbySearch(ctx, req)
	if err != nil {
		return nil, wrapProviderErr(err)
	}

	origin := types.Point{Lat: lat, Lng: lng}
	details := make([]PlaceDetails, 0, len(resp.Results))
	for _, res := range resp.Results {
		address := res.FormattedAddress
		if address == "" {
			address = res.Vicinity
		}
		details = append(details, fromPlaceFields(r.apiKey, placeFields{
			Name:             res.Name,
			FormattedAddress: address,
			Location:         res.Geometry.Location,
			PlaceID:          res.PlaceID,
			Types:            res.Types,
			BusinessStatus:   res.BusinessStatus,
			Rating:           res.Rating,
			Photos:           res.Photos,
		}))
	}
	sortByDistance(details, func(d PlaceDetails) float64 {
		return HaversineKm(origin, d.Coordinates)
	})
	return details, nil
}
