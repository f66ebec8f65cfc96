package places

import (
	"math"
	"testing"

	"trailbook/internal/types"
)

func TestIsValidCoordinates(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lng  float64
		want bool
	}{
		{"origin", 0, 0, true},
		{"lat boundary high", 90, 0, true},
		{"lat boundary low", -90, 0, true},
		{"lng boundary high", 0, 180, true},
		{"lng boundary low", 0, -180, true},
		{"lat too high", 91, 0, false},
		{"lat too low", -90.0001, 0, false},
		{"lng too high", 0, 181, false},
		{"lng too low", 0, -180.5, false},
		{"nan lat", math.NaN(), 0, false},
		{"inf lng", 0, math.Inf(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCoordinates(tt.lat, tt.lng); got != tt.want {
				t.Errorf("IsValidCoordinates(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		p1, p2    types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			p1:        types.Point{Lat: 35.0116, Lng: 135.7681},
			p2:        types.Point{Lat: 35.0116, Lng: 135.7681},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Kyoto to Osaka (~43km)",
			p1:        types.Point{Lat: 35.0116, Lng: 135.7681},
			p2:        types.Point{Lat: 34.6937, Lng: 135.5023},
			wantKm:    43,
			tolerance: 3,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			p1:        types.Point{Lat: 40.7128, Lng: -74.0060},
			p2:        types.Point{Lat: 34.0522, Lng: -118.2437},
			wantKm:    3944,
			tolerance: 50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.p1, tt.p2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	p1 := types.Point{Lat: 25.0, Lng: 121.0}
	p2 := types.Point{Lat: 26.0, Lng: 122.0}
	d1 := HaversineKm(p1, p2)
	d2 := HaversineKm(p2, p1)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestSortByDistance(t *testing.T) {
	details := []PlaceDetails{
		{Name: "far", Coordinates: types.Point{Lat: 10}},
		{Name: "near", Coordinates: types.Point{Lat: 1}},
		{Name: "mid", Coordinates: types.Point{Lat: 5}},
	}
	origin := types.Point{}
	sortByDistance(details, func(d PlaceDetails) float64 { return HaversineKm(origin, d.Coordinates) })

	if details[0].Name != "near" || details[1].Name != "mid" || details[2].Name != "far" {
		t.Errorf("unexpected sort order: %v", details)
	}
}
