// README: HTTP endpoints for trip summaries, itinerary planning, and recommendations.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"trailbook/internal/modules/intelligence"
	"trailbook/internal/modules/trip"
	"trailbook/internal/types"
)

const (
	minItineraryDays = 1
	maxItineraryDays = 30

	// recommendTripWindow bounds how much history feeds a recommendation
	// prompt; the service trims further.
	recommendTripWindow  = 10
	recommendEntryWindow = 100
)

// Intelligence is the slice of the intelligence service the handler needs.
type Intelligence interface {
	GenerateTripSummary(ctx context.Context, t *trip.Trip, entries []trip.Entry) (*intelligence.TripSummary, error)
	GenerateItinerary(ctx context.Context, req intelligence.ItineraryRequest) (*intelligence.Itinerary, error)
	GenerateRecommendations(ctx context.Context, profile *trip.UserProfile, trips []trip.Trip, entries []trip.Entry, limit int) ([]intelligence.RecommendationItem, string, error)
	ModelName() string
}

// TripReader loads the records AI endpoints reason over.
type TripReader interface {
	GetTrip(ctx context.Context, userID, tripID types.ID) (*trip.Trip, error)
	ListTrips(ctx context.Context, userID types.ID, limit int) ([]trip.Trip, error)
	ListTripEntries(ctx context.Context, userID, tripID types.ID) ([]trip.Entry, error)
	ListRecentEntries(ctx context.Context, userID types.ID, limit int) ([]trip.Entry, error)
	Profile(ctx context.Context, userID types.ID) (*trip.UserProfile, error)
}

type AIHandler struct {
	intel Intelligence
	trips TripReader
}

// NewAIHandler wires the AI endpoints. A nil intel means the model credential
// is absent; endpoints then report the feature as disabled.
func NewAIHandler(intel Intelligence, trips TripReader) *AIHandler {
	return &AIHandler{intel: intel, trips: trips}
}

func (h *AIHandler) enabled() bool {
	return h.intel != nil
}

func (h *AIHandler) requireEnabled(c *gin.Context) bool {
	if h.enabled() {
		return true
	}
	writeError(c, http.StatusInternalServerError, "ai features are disabled: model credential not configured")
	return false
}

type analyzeTripRequest struct {
	TripID string `json:"tripId"`
	UserID string `json:"userId"`
}

// AnalyzeTrip handles POST /ai/analyze-trip. Record lookups and the ownership
// check run before any model call.
func (h *AIHandler) AnalyzeTrip(c *gin.Context) {
	var req analyzeTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.TripID) == "" || strings.TrimSpace(req.UserID) == "" {
		writeError(c, http.StatusBadRequest, "tripId and userId are required")
		return
	}

	ctx := c.Request.Context()
	t, err := h.trips.GetTrip(ctx, types.ID(req.UserID), types.ID(req.TripID))
	if err != nil {
		writeTripError(c, err)
		return
	}
	entries, err := h.trips.ListTripEntries(ctx, types.ID(req.UserID), types.ID(req.TripID))
	if err != nil {
		writeTripError(c, err)
		return
	}
	if len(entries) == 0 {
		writeError(c, http.StatusBadRequest, "trip has no entries to analyze")
		return
	}
	if !h.requireEnabled(c) {
		return
	}

	summary, err := h.intel.GenerateTripSummary(ctx, t, entries)
	if err != nil {
		writeIntelligenceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"summary": summary,
		"meta": gin.H{
			"entriesAnalyzed": len(entries),
			"model":           h.intel.ModelName(),
			"cached":          false,
		},
	})
}

type planTripRequest struct {
	Destination string   `json:"destination"`
	Country     string   `json:"country"`
	Duration    int      `json:"duration"`
	StartDate   string   `json:"startDate"`
	Interests   []string `json:"interests"`
	Budget      string   `json:"budget"`
}

// PlanTrip handles POST /ai/plan-trip. Duration outside [1, 30] is rejected
// before the model is touched.
func (h *AIHandler) PlanTrip(c *gin.Context) {
	var req planTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Destination) == "" || strings.TrimSpace(req.Country) == "" {
		writeError(c, http.StatusBadRequest, "destination and country are required")
		return
	}
	if req.Duration < minItineraryDays || req.Duration > maxItineraryDays {
		writeError(c, http.StatusBadRequest, "duration must be between 1 and 30 days")
		return
	}
	if !h.requireEnabled(c) {
		return
	}

	itin, err := h.intel.GenerateItinerary(c.Request.Context(), intelligence.ItineraryRequest{
		Destination:  req.Destination,
		Country:      req.Country,
		DurationDays: req.Duration,
		StartDate:    req.StartDate,
		Interests:    req.Interests,
		BudgetTier:   req.Budget,
	})
	if err != nil {
		writeIntelligenceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"itinerary": itin,
		"meta": gin.H{
			"model":     h.intel.ModelName(),
			"generated": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

type recommendRequest struct {
	UserID string `json:"userId"`
	Limit  int    `json:"limit"`
}

// Recommend handles POST /ai/recommend.
func (h *AIHandler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(c, http.StatusBadRequest, "userId is required")
		return
	}

	ctx := c.Request.Context()
	userID := types.ID(req.UserID)
	profile, err := h.trips.Profile(ctx, userID)
	if err != nil {
		writeTripError(c, err)
		return
	}
	tripsList, err := h.trips.ListTrips(ctx, userID, recommendTripWindow)
	if err != nil {
		writeTripError(c, err)
		return
	}
	entries, err := h.trips.ListRecentEntries(ctx, userID, recommendEntryWindow)
	if err != nil {
		writeTripError(c, err)
		return
	}
	if len(entries) == 0 {
		// Cold-start is an ordinary answer, not an error; no model call.
		writeJSON(c, http.StatusOK, gin.H{
			"recommendations": []intelligence.RecommendationItem{},
			"message":         "add some journal entries to get personalized recommendations",
		})
		return
	}
	if !h.requireEnabled(c) {
		return
	}

	items, message, err := h.intel.GenerateRecommendations(ctx, profile, tripsList, entries, req.Limit)
	if err != nil {
		writeIntelligenceError(c, err)
		return
	}
	if message != "" {
		writeJSON(c, http.StatusOK, gin.H{
			"recommendations": []intelligence.RecommendationItem{},
			"message":         message,
		})
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"recommendations": items,
		"meta": gin.H{
			"basedOnTrips":   len(tripsList),
			"basedOnEntries": len(entries),
			"model":          h.intel.ModelName(),
		},
	})
}

// Health handles GET /ai/health. It always answers 200 so probes can tell a
// disabled feature from a dead process.
func (h *AIHandler) Health(c *gin.Context) {
	model := ""
	if h.enabled() {
		model = h.intel.ModelName()
	}
	writeJSON(c, http.StatusOK, gin.H{
		"status": "ok",
		"model":  model,
		"features": gin.H{
			"tripSummaries":   h.enabled(),
			"itineraries":     h.enabled(),
			"recommendations": h.enabled(),
		},
	})
}
