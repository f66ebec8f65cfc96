// README: Normalized place shapes and resolver error taxonomy.
package places

import (
	"errors"

	"trailbook/internal/types"
)

var (
	// ErrInvalidCoordinates is returned before any network call when a
	// latitude/longitude pair is outside the valid WGS84 range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrNotFound is returned when the provider answered successfully but
	// had no result for the query.
	ErrNotFound = errors.New("place not found")
)

// ProviderError carries a non-success status from the places provider.
// Transport-level failures use the status "transport".
type ProviderError struct {
	Status string
}

func (e *ProviderError) Error() string {
	return "places provider error: " + e.Status
}

// PlaceDetails is the single normalized shape every provider response is
// reduced to. Coordinates are always populated when the source data could
// supply them; string fields degrade to "" and Photos to an empty slice.
// PlaceID, EstablishmentName, BusinessStatus and Rating may be legitimately
// absent.
type PlaceDetails struct {
	Name              string      `json:"name"`
	Address           string      `json:"address"`
	City              string      `json:"city"`
	Country           string      `json:"country"`
	Coordinates       types.Point `json:"coordinates"`
	PlaceID           string      `json:"placeId,omitempty"`
	Types             []string    `json:"types"`
	EstablishmentName string      `json:"establishmentName,omitempty"`
	BusinessStatus    string      `json:"businessStatus,omitempty"`
	Rating            float32     `json:"rating,omitempty"`
	Photos            []string    `json:"photos"`
}

// StructuredFormatting splits an autocomplete description into its primary
// and secondary display lines.
type StructuredFormatting struct {
	MainText      string `json:"mainText"`
	SecondaryText string `json:"secondaryText"`
}

// AutocompletePrediction is an ephemeral, UI-facing search suggestion.
type AutocompletePrediction struct {
	Description          string               `json:"description"`
	PlaceID              string               `json:"placeId"`
	StructuredFormatting StructuredFormatting `json:"structuredFormatting"`
	Types                []string             `json:"types"`
}

// Bias weights autocomplete results towards a center point.
type Bias struct {
	Center types.Point
	// RadiusMeters defaults to 50000 when zero.
	RadiusMeters uint
}
