package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailbook/internal/modules/intelligence"
	"trailbook/internal/modules/trip"
	"trailbook/internal/types"
)

type stubIntel struct {
	summaryCalls   int
	itineraryCalls int
	recommendCalls int

	summary   *intelligence.TripSummary
	itinerary *intelligence.Itinerary
	items     []intelligence.RecommendationItem
	message   string
	err       error
}

func (s *stubIntel) GenerateTripSummary(_ context.Context, _ *trip.Trip, _ []trip.Entry) (*intelligence.TripSummary, error) {
	s.summaryCalls++
	return s.summary, s.err
}

func (s *stubIntel) GenerateItinerary(_ context.Context, _ intelligence.ItineraryRequest) (*intelligence.Itinerary, error) {
	s.itineraryCalls++
	return s.itinerary, s.err
}

func (s *stubIntel) GenerateRecommendations(_ context.Context, _ *trip.UserProfile, _ []trip.Trip, _ []trip.Entry, _ int) ([]intelligence.RecommendationItem, string, error) {
	s.recommendCalls++
	return s.items, s.message, s.err
}

func (s *stubIntel) ModelName() string { return "test-model" }

type stubTrips struct {
	trips    map[types.ID]*trip.Trip
	entries  map[types.ID][]trip.Entry
	profiles map[types.ID]*trip.UserProfile
}

func newStubTrips() *stubTrips {
	return &stubTrips{
		trips:    map[types.ID]*trip.Trip{},
		entries:  map[types.ID][]trip.Entry{},
		profiles: map[types.ID]*trip.UserProfile{},
	}
}

func (s *stubTrips) GetTrip(_ context.Context, userID, tripID types.ID) (*trip.Trip, error) {
	t, ok := s.trips[tripID]
	if !ok {
		return nil, trip.ErrNotFound
	}
	if t.OwnerID != userID {
		return nil, trip.ErrUnauthorized
	}
	return t, nil
}

func (s *stubTrips) ListTrips(_ context.Context, userID types.ID, _ int) ([]trip.Trip, error) {
	var out []trip.Trip
	for _, t := range s.trips {
		if t.OwnerID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *stubTrips) ListTripEntries(_ context.Context, _ types.ID, tripID types.ID) ([]trip.Entry, error) {
	return s.entries[tripID], nil
}

func (s *stubTrips) ListRecentEntries(_ context.Context, userID types.ID, _ int) ([]trip.Entry, error) {
	var out []trip.Entry
	for _, list := range s.entries {
		for _, e := range list {
			if e.OwnerID == userID {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (s *stubTrips) Profile(_ context.Context, userID types.ID) (*trip.UserProfile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, trip.ErrNotFound
	}
	return p, nil
}

func newAIRouter(h *AIHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ai/analyze-trip", h.AnalyzeTrip)
	r.POST("/ai/plan-trip", h.PlanTrip)
	r.POST("/ai/recommend", h.Recommend)
	r.GET("/ai/health", h.Health)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func seedTrip(store *stubTrips, owner types.ID, entryCount int) types.ID {
	id := types.ID("trip-1")
	store.trips[id] = &trip.Trip{ID: id, OwnerID: owner, Name: "Kansai"}
	for i := 0; i < entryCount; i++ {
		store.entries[id] = append(store.entries[id], trip.Entry{
			ID: types.ID("entry"), OwnerID: owner, TripID: id,
			Title: "Fushimi Inari", Content: "hiked the gates", Country: "Japan",
		})
	}
	return id
}

func TestAnalyzeTrip_TripNotFound(t *testing.T) {
	intel := &stubIntel{}
	r := newAIRouter(NewAIHandler(intel, newStubTrips()))

	w := postJSON(t, r, "/ai/analyze-trip", gin.H{"tripId": "ghost", "userId": "u1"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, intel.summaryCalls)
}

func TestAnalyzeTrip_OwnerMismatch(t *testing.T) {
	intel := &stubIntel{}
	store := newStubTrips()
	tripID := seedTrip(store, "owner", 2)
	r := newAIRouter(NewAIHandler(intel, store))

	w := postJSON(t, r, "/ai/analyze-trip", gin.H{"tripId": string(tripID), "userId": "intruder"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, intel.summaryCalls)
}

func TestAnalyzeTrip_EmptyTrip(t *testing.T) {
	intel := &stubIntel{}
	store := newStubTrips()
	tripID := seedTrip(store, "u1", 0)
	r := newAIRouter(NewAIHandler(intel, store))

	w := postJSON(t, r, "/ai/analyze-trip", gin.H{"tripId": string(tripID), "userId": "u1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, intel.summaryCalls)
}

func TestAnalyzeTrip_Success(t *testing.T) {
	intel := &stubIntel{summary: &intelligence.TripSummary{Title: "Kansai days", Summary: "a week of shrines"}}
	store := newStubTrips()
	tripID := seedTrip(store, "u1", 3)
	r := newAIRouter(NewAIHandler(intel, store))

	w := postJSON(t, r, "/ai/analyze-trip", gin.H{"tripId": string(tripID), "userId": "u1"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, intel.summaryCalls)

	var resp struct {
		Summary intelligence.TripSummary `json:"summary"`
		Meta    struct {
			EntriesAnalyzed int    `json:"entriesAnalyzed"`
			Model           string `json:"model"`
			Cached          bool   `json:"cached"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Kansai days", resp.Summary.Title)
	assert.Equal(t, 3, resp.Meta.EntriesAnalyzed)
	assert.Equal(t, "test-model", resp.Meta.Model)
	assert.False(t, resp.Meta.Cached)
}

func TestPlanTrip_DurationBounds(t *testing.T) {
	cases := []struct {
		name       string
		duration   int
		wantStatus int
		wantCalls  int
	}{
		{"too long", 31, http.StatusBadRequest, 0},
		{"too short", 0, http.StatusBadRequest, 0},
		{"minimum", 1, http.StatusOK, 1},
		{"maximum", 30, http.StatusOK, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			intel := &stubIntel{itinerary: &intelligence.Itinerary{Destination: "Kyoto"}}
			r := newAIRouter(NewAIHandler(intel, newStubTrips()))

			w := postJSON(t, r, "/ai/plan-trip", gin.H{
				"destination": "Kyoto", "country": "Japan", "duration": tc.duration,
			})

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantCalls, intel.itineraryCalls)
		})
	}
}

func TestPlanTrip_MissingDestination(t *testing.T) {
	intel := &stubIntel{}
	r := newAIRouter(NewAIHandler(intel, newStubTrips()))

	w := postJSON(t, r, "/ai/plan-trip", gin.H{"country": "Japan", "duration": 5})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, intel.itineraryCalls)
}

func TestPlanTrip_UnparsableModelReply(t *testing.T) {
	intel := &stubIntel{err: intelligence.ErrModelOutputUnparsable}
	r := newAIRouter(NewAIHandler(intel, newStubTrips()))

	w := postJSON(t, r, "/ai/plan-trip", gin.H{"destination": "Kyoto", "country": "Japan", "duration": 5})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecommend_MissingUserID(t *testing.T) {
	r := newAIRouter(NewAIHandler(&stubIntel{}, newStubTrips()))

	w := postJSON(t, r, "/ai/recommend", gin.H{"limit": 5})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommend_ProfileNotFound(t *testing.T) {
	r := newAIRouter(NewAIHandler(&stubIntel{}, newStubTrips()))

	w := postJSON(t, r, "/ai/recommend", gin.H{"userId": "nobody"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommend_NoEntries(t *testing.T) {
	intel := &stubIntel{}
	store := newStubTrips()
	store.profiles["u1"] = &trip.UserProfile{UserID: "u1", DisplayName: "Aiko"}
	r := newAIRouter(NewAIHandler(intel, store))

	w := postJSON(t, r, "/ai/recommend", gin.H{"userId": "u1"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, intel.recommendCalls)

	var resp struct {
		Recommendations []intelligence.RecommendationItem `json:"recommendations"`
		Message         string                            `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Recommendations)
	assert.NotEmpty(t, resp.Message)
}

func TestRecommend_Success(t *testing.T) {
	intel := &stubIntel{items: []intelligence.RecommendationItem{
		{Destination: "Taipei", Country: "Taiwan"},
		{Destination: "Seoul", Country: "South Korea"},
	}}
	store := newStubTrips()
	store.profiles["u1"] = &trip.UserProfile{UserID: "u1"}
	seedTrip(store, "u1", 2)
	r := newAIRouter(NewAIHandler(intel, store))

	w := postJSON(t, r, "/ai/recommend", gin.H{"userId": "u1", "limit": 2})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, intel.recommendCalls)

	var resp struct {
		Recommendations []intelligence.RecommendationItem `json:"recommendations"`
		Meta            struct {
			BasedOnTrips   int    `json:"basedOnTrips"`
			BasedOnEntries int    `json:"basedOnEntries"`
			Model          string `json:"model"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recommendations, 2)
	assert.Equal(t, 1, resp.Meta.BasedOnTrips)
	assert.Equal(t, 2, resp.Meta.BasedOnEntries)
}

func TestAIHealth_Disabled(t *testing.T) {
	r := newAIRouter(NewAIHandler(nil, newStubTrips()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ai/health", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status   string `json:"status"`
		Model    string `json:"model"`
		Features struct {
			TripSummaries bool `json:"tripSummaries"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Model)
	assert.False(t, resp.Features.TripSummaries)
}

func TestAnalyzeTrip_DisabledModel(t *testing.T) {
	store := newStubTrips()
	tripID := seedTrip(store, "u1", 1)
	r := newAIRouter(NewAIHandler(nil, store))

	w := postJSON(t, r, "/ai/analyze-trip", gin.H{"tripId": string(tripID), "userId": "u1"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
