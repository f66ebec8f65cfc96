// README: gin engine construction and route table.
package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trailbook/internal/http/handlers"
	"trailbook/internal/http/middleware"
	"trailbook/internal/infra"
	"trailbook/internal/modules/intelligence"
	"trailbook/internal/modules/trip"
	"trailbook/internal/places"
)

// RouterDeps carries everything the route table needs. Intelligence and
// Places may be nil when their credentials are not configured; the affected
// endpoints then answer with a disabled-feature error instead of the process
// refusing to start.
type RouterDeps struct {
	Logger       *zap.Logger
	Verifier     infra.TokenVerifier
	Trips        *trip.Service
	Intelligence *intelligence.Service
	Places       *places.Resolver
}

// NewRouter builds the gin engine with all routes mounted. Everything under
// /api and /ai requires a Firebase bearer token; the two health probes are
// public.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))

	var intel handlers.Intelligence
	if deps.Intelligence != nil {
		intel = deps.Intelligence
	}
	var resolver handlers.PlaceResolver
	if deps.Places != nil {
		resolver = deps.Places
	}

	aiHandler := handlers.NewAIHandler(intel, deps.Trips)
	placeHandler := handlers.NewPlaceHandler(resolver)
	tripHandler := handlers.NewTripHandler(deps.Trips)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/ai/health", aiHandler.Health)

	auth := middleware.Auth(deps.Verifier)

	ai := r.Group("/ai", auth)
	{
		ai.POST("/analyze-trip", aiHandler.AnalyzeTrip)
		ai.POST("/plan-trip", aiHandler.PlanTrip)
		ai.POST("/recommend", aiHandler.Recommend)
	}

	api := r.Group("/api", auth)
	{
		api.POST("/trips", tripHandler.CreateTrip)
		api.GET("/trips", tripHandler.ListTrips)
		api.GET("/trips/:id", tripHandler.GetTrip)
		api.DELETE("/trips/:id", tripHandler.DeleteTrip)

		api.POST("/entries", tripHandler.CreateEntry)
		api.GET("/entries", tripHandler.ListEntries)
		api.GET("/entries/:id", tripHandler.GetEntry)
		api.DELETE("/entries/:id", tripHandler.DeleteEntry)

		api.GET("/profile", tripHandler.GetProfile)
		api.PUT("/profile", tripHandler.SaveProfile)

		api.GET("/places/reverse-geocode", placeHandler.ReverseGeocode)
		api.GET("/places/autocomplete", placeHandler.Autocomplete)
		api.GET("/places/nearby", placeHandler.Nearby)
		api.GET("/places/:placeId", placeHandler.Details)
	}

	return r
}
