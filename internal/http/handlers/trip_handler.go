// README: HTTP endpoints for trip/entry CRUD and user profiles.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"trailbook/internal/http/middleware"
	"trailbook/internal/modules/trip"
	"trailbook/internal/types"
)

const defaultEntryPage = 50

// TripService is the slice of the trip service the handler needs.
type TripService interface {
	CreateTrip(ctx context.Context, cmd trip.CreateTripCommand) (types.ID, error)
	GetTrip(ctx context.Context, userID, tripID types.ID) (*trip.Trip, error)
	ListTrips(ctx context.Context, userID types.ID, limit int) ([]trip.Trip, error)
	DeleteTrip(ctx context.Context, userID, tripID types.ID) error
	CreateEntry(ctx context.Context, cmd trip.CreateEntryCommand) (types.ID, error)
	GetEntry(ctx context.Context, userID, entryID types.ID) (*trip.Entry, error)
	ListTripEntries(ctx context.Context, userID, tripID types.ID) ([]trip.Entry, error)
	ListRecentEntries(ctx context.Context, userID types.ID, limit int) ([]trip.Entry, error)
	DeleteEntry(ctx context.Context, userID, entryID types.ID) error
	Profile(ctx context.Context, userID types.ID) (*trip.UserProfile, error)
	SaveProfile(ctx context.Context, p *trip.UserProfile) error
}

type TripHandler struct {
	trips TripService
}

func NewTripHandler(trips TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

func caller(c *gin.Context) types.ID {
	return types.ID(middleware.CallerUID(c))
}

type createTripRequest struct {
	Name      string     `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req createTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := h.trips.CreateTrip(c.Request.Context(), trip.CreateTripCommand{
		OwnerID:   caller(c),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"id": id})
}

func (h *TripHandler) ListTrips(c *gin.Context) {
	trips, err := h.trips.ListTrips(c.Request.Context(), caller(c), 0)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": trips})
}

func (h *TripHandler) GetTrip(c *gin.Context) {
	t, err := h.trips.GetTrip(c.Request.Context(), caller(c), types.ID(c.Param("id")))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.trips.DeleteTrip(c.Request.Context(), caller(c), types.ID(c.Param("id"))); err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"deleted": true})
}

type createEntryRequest struct {
	TripID        string       `json:"tripId"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	Date          time.Time    `json:"date"`
	LocationLabel string       `json:"locationLabel"`
	Country       string       `json:"country"`
	Coordinates   *types.Point `json:"coordinates"`
	MediaRefs     []string     `json:"mediaRefs"`
	Category      string       `json:"category"`
}

func (h *TripHandler) CreateEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := h.trips.CreateEntry(c.Request.Context(), trip.CreateEntryCommand{
		OwnerID:       caller(c),
		TripID:        types.ID(req.TripID),
		Title:         req.Title,
		Content:       req.Content,
		Date:          req.Date,
		LocationLabel: req.LocationLabel,
		Country:       req.Country,
		Coordinates:   req.Coordinates,
		MediaRefs:     req.MediaRefs,
		Category:      trip.Category(req.Category),
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"id": id})
}

// ListEntries returns the caller's entries, scoped to one trip when ?tripId=
// is present.
func (h *TripHandler) ListEntries(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		entries []trip.Entry
		err     error
	)
	if tripID := c.Query("tripId"); tripID != "" {
		entries, err = h.trips.ListTripEntries(ctx, caller(c), types.ID(tripID))
	} else {
		entries, err = h.trips.ListRecentEntries(ctx, caller(c), defaultEntryPage)
	}
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"entries": entries})
}

func (h *TripHandler) GetEntry(c *gin.Context) {
	e, err := h.trips.GetEntry(c.Request.Context(), caller(c), types.ID(c.Param("id")))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, e)
}

func (h *TripHandler) DeleteEntry(c *gin.Context) {
	if err := h.trips.DeleteEntry(c.Request.Context(), caller(c), types.ID(c.Param("id"))); err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *TripHandler) GetProfile(c *gin.Context) {
	p, err := h.trips.Profile(c.Request.Context(), caller(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

type saveProfileRequest struct {
	DisplayName string   `json:"displayName"`
	HomeCountry string   `json:"homeCountry"`
	Interests   []string `json:"interests"`
}

func (h *TripHandler) SaveProfile(c *gin.Context) {
	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		writeError(c, http.StatusBadRequest, "displayName is required")
		return
	}
	p := &trip.UserProfile{
		UserID:      caller(c),
		DisplayName: req.DisplayName,
		HomeCountry: req.HomeCountry,
		Interests:   req.Interests,
	}
	if err := h.trips.SaveProfile(c.Request.Context(), p); err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"saved": true})
}
