// README: TripIntelligenceService — prompt building, one model call, typed parse.
package intelligence

import (
	"context"
	"fmt"
	"log"
	"time"

	"trailbook/internal/ai"
	"trailbook/internal/modules/trip"
)

const (
	// Temperature per task: low for factual summarisation, higher for
	// creative recommendation.
	summaryTemperature   = 0.3
	itineraryTemperature = 0.7
	recommendTemperature = 0.9

	summaryMaxTokens   = 2048
	itineraryMaxTokens = 8192
	recommendMaxTokens = 4096

	// recommendationHistoryCap bounds how many recent trips are serialized
	// into the recommendation prompt.
	recommendationHistoryCap = 10

	// DefaultRecommendationLimit is used when the caller passes no limit.
	DefaultRecommendationLimit = 5

	defaultBudgetTier = "moderate"
)

// Service shapes user data into model prompts and parses semi-structured
// model output back into typed records. Stateless between calls except for
// the recommendation cache. Failed model calls are never retried.
type Service struct {
	model    ai.TextGenerator
	cache    Cache
	freshFor time.Duration
}

// NewService wires a model provider and a recommendation cache. freshFor is
// the cache validity window; zero means 24 hours.
func NewService(model ai.TextGenerator, cache Cache, freshFor time.Duration) *Service {
	if freshFor <= 0 {
		freshFor = 24 * time.Hour
	}
	return &Service{model: model, cache: cache, freshFor: freshFor}
}

func (s *Service) ModelName() string {
	return s.model.ModelName()
}

// GenerateTripSummary summarises one trip from its entries. The caller is
// responsible for ensuring entries is non-empty. An unparsable reply is never
// fatal here: it degrades to the raw reply text with empty lists.
func (s *Service) GenerateTripSummary(ctx context.Context, t *trip.Trip, entries []trip.Entry) (*TripSummary, error) {
	reply, err := s.model.GenerateText(ctx, ai.GenerateRequest{
		System:          summarySystemPrompt,
		Prompt:          buildSummaryPrompt(t, entries),
		Temperature:     summaryTemperature,
		MaxOutputTokens: summaryMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModelUnavailable, err)
	}

	var summary TripSummary
	if err := ai.DecodeJSON(reply, &summary); err != nil {
		log.Printf("trip summary parse failed, serving degraded reply: %v", err)
		return &TripSummary{
			Title:           t.Name,
			Summary:         reply,
			Highlights:      []string{},
			Recommendations: []string{},
		}, nil
	}
	if summary.Highlights == nil {
		summary.Highlights = []string{}
	}
	if summary.Recommendations == nil {
		summary.Recommendations = []string{}
	}
	return &summary, nil
}

// GenerateItinerary produces a day-by-day plan. DurationDays range is the
// caller's validation responsibility; only shape is checked here.
func (s *Service) GenerateItinerary(ctx context.Context, req ItineraryRequest) (*Itinerary, error) {
	if req.BudgetTier == "" {
		req.BudgetTier = defaultBudgetTier
	}
	if req.Interests == nil {
		req.Interests = []string{}
	}

	reply, err := s.model.GenerateText(ctx, ai.GenerateRequest{
		System:          itinerarySystemPrompt,
		Prompt:          buildItineraryPrompt(req),
		Temperature:     itineraryTemperature,
		MaxOutputTokens: itineraryMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModelUnavailable, err)
	}

	var itinerary Itinerary
	if err := ai.DecodeJSON(reply, &itinerary); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModelOutputUnparsable, err)
	}
	if itinerary.Destination == "" {
		itinerary.Destination = req.Destination
	}
	if itinerary.Country == "" {
		itinerary.Country = req.Country
	}
	if itinerary.DurationDays == 0 {
		itinerary.DurationDays = req.DurationDays
	}
	return &itinerary, nil
}

// GenerateRecommendations suggests destinations from the user's history.
//
// Empty entries short-circuits with an explanatory message and zero model
// calls. A fresh cache entry (younger than the validity window) is returned
// unmodified, bypassing the model; on miss or staleness the model is called
// and the cache entry is unconditionally overwritten. The cache is per-user,
// not per-(user, limit): concurrent stale readers may both regenerate, which
// costs a duplicate model call but is never a correctness hazard.
func (s *Service) GenerateRecommendations(ctx context.Context, profile *trip.UserProfile, trips []trip.Trip, entries []trip.Entry, limit int) ([]RecommendationItem, string, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if len(entries) == 0 {
		return []RecommendationItem{}, "Add a few journal entries first; recommendations are based on your travel history.", nil
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, profile.UserID); err != nil {
			log.Printf("recommendation cache read failed: %v", err)
		} else if cached != nil && s.isFresh(cached.GeneratedAt) {
			return cached.Recommendations, "", nil
		}
	}

	reply, err := s.model.GenerateText(ctx, ai.GenerateRequest{
		System:          recommendSystemPrompt,
		Prompt:          buildRecommendPrompt(profile, trips, entries),
		Temperature:     recommendTemperature,
		MaxOutputTokens: recommendMaxTokens,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrModelUnavailable, err)
	}

	var parsed struct {
		Recommendations []RecommendationItem `json:"recommendations"`
	}
	if err := ai.DecodeJSON(reply, &parsed); err != nil || parsed.Recommendations == nil {
		// No safe degraded shape for a list of structured destinations.
		return nil, "", fmt.Errorf("%w: invalid recommendation payload", ErrModelOutputUnparsable)
	}

	// Cache the full parsed set; the model is asked for 5 to 7 items, so the
	// cache may hold more than the caller's limit.
	set := &CachedRecommendationSet{
		Recommendations: parsed.Recommendations,
		GeneratedAt:     time.Now().UnixMilli(),
		UserID:          string(profile.UserID),
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, profile.UserID, set); err != nil {
			log.Printf("recommendation cache write failed: %v", err)
		}
	}

	items := parsed.Recommendations
	if len(items) > limit {
		items = items[:limit]
	}
	return items, "", nil
}

func (s *Service) isFresh(generatedAtMillis int64) bool {
	generated := time.UnixMilli(generatedAtMillis)
	return time.Since(generated) < s.freshFor
}
