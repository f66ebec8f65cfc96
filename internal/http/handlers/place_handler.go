// README: HTTP endpoints for place lookup (geocoding, details, autocomplete, nearby).
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"trailbook/internal/places"
	"trailbook/internal/types"
)

// PlaceResolver is the slice of the resolver the handler needs.
type PlaceResolver interface {
	ResolveByCoordinates(ctx context.Context, lat, lng float64) (*places.PlaceDetails, error)
	ResolveByPlaceID(ctx context.Context, placeID string) (*places.PlaceDetails, error)
	SearchByText(ctx context.Context, query string, bias *places.Bias) ([]places.AutocompletePrediction, error)
	SearchNearby(ctx context.Context, lat, lng float64, radiusMeters uint, category string) ([]places.PlaceDetails, error)
}

type PlaceHandler struct {
	resolver PlaceResolver
}

// NewPlaceHandler wires the place lookup endpoints. A nil resolver means the
// maps credential is absent.
func NewPlaceHandler(resolver PlaceResolver) *PlaceHandler {
	return &PlaceHandler{resolver: resolver}
}

func (h *PlaceHandler) requireEnabled(c *gin.Context) bool {
	if h.resolver != nil {
		return true
	}
	writeError(c, http.StatusInternalServerError, "place lookup is disabled: maps credential not configured")
	return false
}

func parseCoordinateQuery(c *gin.Context) (float64, float64, bool) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(c, http.StatusBadRequest, "lat and lng must be numbers")
		return 0, 0, false
	}
	return lat, lng, true
}

// ReverseGeocode handles GET /api/places/reverse-geocode?lat=&lng=.
func (h *PlaceHandler) ReverseGeocode(c *gin.Context) {
	lat, lng, ok := parseCoordinateQuery(c)
	if !ok {
		return
	}
	if !h.requireEnabled(c) {
		return
	}
	details, err := h.resolver.ResolveByCoordinates(c.Request.Context(), lat, lng)
	if err != nil {
		writePlacesError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, details)
}

// Details handles GET /api/places/:placeId.
func (h *PlaceHandler) Details(c *gin.Context) {
	placeID := c.Param("placeId")
	if strings.TrimSpace(placeID) == "" {
		writeError(c, http.StatusBadRequest, "placeId is required")
		return
	}
	if !h.requireEnabled(c) {
		return
	}
	details, err := h.resolver.ResolveByPlaceID(c.Request.Context(), placeID)
	if err != nil {
		writePlacesError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, details)
}

// Autocomplete handles GET /api/places/autocomplete?q=&lat=&lng=&radius=.
// Location bias is optional; it only applies when both coordinates parse.
func (h *PlaceHandler) Autocomplete(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		writeError(c, http.StatusBadRequest, "q is required")
		return
	}
	if !h.requireEnabled(c) {
		return
	}

	var bias *places.Bias
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat == nil && errLng == nil {
		bias = &places.Bias{Center: types.Point{Lat: lat, Lng: lng}}
		if radius, err := strconv.ParseUint(c.Query("radius"), 10, 32); err == nil {
			bias.RadiusMeters = uint(radius)
		}
	}

	predictions, err := h.resolver.SearchByText(c.Request.Context(), query, bias)
	if err != nil {
		writePlacesError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"predictions": predictions})
}

// Nearby handles GET /api/places/nearby?lat=&lng=&radius=&category=.
func (h *PlaceHandler) Nearby(c *gin.Context) {
	lat, lng, ok := parseCoordinateQuery(c)
	if !ok {
		return
	}
	if !h.requireEnabled(c) {
		return
	}
	var radius uint
	if parsed, err := strconv.ParseUint(c.Query("radius"), 10, 32); err == nil {
		radius = uint(parsed)
	}
	results, err := h.resolver.SearchNearby(c.Request.Context(), lat, lng, radius, c.Query("category"))
	if err != nil {
		writePlacesError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"places": results})
}
