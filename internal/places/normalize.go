package places

import (
	"fmt"
	"net/url"
	"strings"

	"googlemaps.github.io/maps"

	"trailbook/internal/types"
)

// photoBound is the logical size bound requested for provider photo URLs.
const photoBound = 400

// nameFromAddress derives a short human label from a formatted address:
// the portion before the first comma, or "Unknown location" when empty.
func nameFromAddress(formatted string) string {
	formatted = strings.TrimSpace(formatted)
	if formatted == "" {
		return "Unknown location"
	}
	if i := strings.Index(formatted, ","); i >= 0 {
		return strings.TrimSpace(formatted[:i])
	}
	return formatted
}

// cityCountry extracts the city and country from provider address components.
// City prefers the "locality" component, falling back to
// "administrative_area_level_1"; both degrade to "".
func cityCountry(comps []maps.AddressComponent) (city, country string) {
	var adminArea string
	for _, c := range comps {
		for _, t := range c.Types {
			switch t {
			case "locality":
				city = c.LongName
			case "administrative_area_level_1":
				adminArea = c.LongName
			case "country":
				country = c.LongName
			}
		}
	}
	if city == "" {
		city = adminArea
	}
	return city, country
}

func hasType(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

// photoURL builds a provider photo URL bounded to photoBound on both axes.
func photoURL(apiKey, photoReference string) string {
	return fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/place/photo?maxwidth=%d&maxheight=%d&photo_reference=%s&key=%s",
		photoBound, photoBound, url.QueryEscape(photoReference), url.QueryEscape(apiKey),
	)
}

// fromGeocodingResult normalizes a reverse-geocoding result. The provider has
// no name field here, so the label is derived from the formatted address.
func fromGeocodingResult(res maps.GeocodingResult) PlaceDetails {
	city, country := cityCountry(res.AddressComponents)
	d := PlaceDetails{
		Name:    nameFromAddress(res.FormattedAddress),
		Address: res.FormattedAddress,
		City:    city,
		Country: country,
		Coordinates: types.Point{
			Lat: res.Geometry.Location.Lat,
			Lng: res.Geometry.Location.Lng,
		},
		PlaceID: res.PlaceID,
		Types:   res.Types,
		Photos:  []string{},
	}
	if hasType(res.Types, "establishment") {
		d.EstablishmentName = d.Name
	}
	return d
}

// placeFields is the provider-independent subset shared by place-details and
// nearby-search results.
type placeFields struct {
	Name             string
	FormattedAddress string
	Location         maps.LatLng
	PlaceID          string
	Types            []string
	BusinessStatus   string
	Rating           float32
	Photos           []maps.Photo
	Components       []maps.AddressComponent
}

// fromPlaceFields mirrors reverse-geocoding normalization but prefers the
// provider's own name over the derived-from-address one, and surfaces
// business status, rating and bounded photo URLs.
func fromPlaceFields(apiKey string, f placeFields) PlaceDetails {
	city, country := cityCountry(f.Components)
	name := f.Name
	if name == "" {
		name = nameFromAddress(f.FormattedAddress)
	}
	d := PlaceDetails{
		Name:           name,
		Address:        f.FormattedAddress,
		City:           city,
		Country:        country,
		Coordinates:    types.Point{Lat: f.Location.Lat, Lng: f.Location.Lng},
		PlaceID:        f.PlaceID,
		Types:          f.Types,
		BusinessStatus: f.BusinessStatus,
		Rating:         f.Rating,
		Photos:         []string{},
	}
	for _, p := range f.Photos {
		d.Photos = append(d.Photos, photoURL(apiKey, p.PhotoReference))
	}
	if hasType(f.Types, "establishment") {
		d.EstablishmentName = name
	}
	return d
}
