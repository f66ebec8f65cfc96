// README: Typed model outputs and intelligence error sentinels.
package intelligence

import "errors"

var (
	// ErrModelUnavailable covers auth, quota and transport failures of the
	// model call itself.
	ErrModelUnavailable = errors.New("language model unavailable")

	// ErrModelOutputUnparsable means the model replied but the content did
	// not match the requested schema. Fatal for recommendations and
	// itineraries; trip summaries degrade instead.
	ErrModelOutputUnparsable = errors.New("model output did not match requested schema")
)

// TripSummary is the structured result of summarising one trip.
// Recommendations here are advice strings, not destinations.
type TripSummary struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	Highlights      []string `json:"highlights"`
	Recommendations []string `json:"recommendations"`
}

// RecommendationItem is one suggested destination.
type RecommendationItem struct {
	Destination string   `json:"destination"`
	Country     string   `json:"country"`
	Reason      string   `json:"reason"`
	BestTime    string   `json:"bestTime"`
	Highlights  []string `json:"highlights"`
}

// CachedRecommendationSet is the only persisted, mutable core state: one
// record per user, overwritten on refresh, last writer wins.
type CachedRecommendationSet struct {
	Recommendations []RecommendationItem `json:"recommendations"`
	// GeneratedAt is epoch milliseconds.
	GeneratedAt int64  `json:"generatedAt"`
	UserID      string `json:"userId"`
}

// ItineraryRequest describes one itinerary generation.
// DurationDays must already be validated to [1, 30] by the caller; this
// component checks shape only.
type ItineraryRequest struct {
	Destination  string
	Country      string
	DurationDays int
	StartDate    string
	Interests    []string
	BudgetTier   string
}

type ItineraryActivity struct {
	Time        string `json:"time"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type ItineraryDay struct {
	Day        int                 `json:"day"`
	Title      string              `json:"title"`
	Activities []ItineraryActivity `json:"activities"`
}

// Itinerary is the day-by-day plan the model returns in the requested schema.
type Itinerary struct {
	Destination     string         `json:"destination"`
	Country         string         `json:"country"`
	DurationDays    int            `json:"durationDays"`
	Days            []ItineraryDay `json:"days"`
	Tips            []string       `json:"tips"`
	EstimatedBudget string         `json:"estimatedBudget"`
}
