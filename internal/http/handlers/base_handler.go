// README: shared response helpers and domain-error to HTTP-status mapping.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trailbook/internal/modules/intelligence"
	"trailbook/internal/modules/trip"
	"trailbook/internal/places"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(c *gin.Context, status int, body interface{}) {
	c.JSON(status, body)
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeErrorDetails(c *gin.Context, status int, msg, details string) {
	c.JSON(status, errorResponse{Error: msg, Details: details})
}

// writeTripError maps trip-module sentinels onto the response contract.
func writeTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrNotFound):
		writeError(c, http.StatusNotFound, "record not found")
	case errors.Is(err, trip.ErrUnauthorized):
		writeError(c, http.StatusForbidden, "record owned by another user")
	case errors.Is(err, trip.ErrBadRequest):
		writeError(c, http.StatusBadRequest, "bad request")
	default:
		writeErrorDetails(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// writePlacesError maps resolver sentinels. Provider failures surface as 500
// with the upstream status in details.
func writePlacesError(c *gin.Context, err error) {
	var provErr *places.ProviderError
	switch {
	case errors.Is(err, places.ErrInvalidCoordinates):
		writeError(c, http.StatusBadRequest, "invalid coordinates")
	case errors.Is(err, places.ErrNotFound):
		writeError(c, http.StatusNotFound, "no place found")
	case errors.As(err, &provErr):
		writeErrorDetails(c, http.StatusInternalServerError, "places provider error", provErr.Status)
	default:
		writeErrorDetails(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// writeIntelligenceError maps model-call failures; trip sentinels can also
// pass through here since AI endpoints load records first.
func writeIntelligenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrNotFound), errors.Is(err, trip.ErrUnauthorized), errors.Is(err, trip.ErrBadRequest):
		writeTripError(c, err)
	case errors.Is(err, intelligence.ErrModelUnavailable):
		writeErrorDetails(c, http.StatusInternalServerError, "ai service unavailable", err.Error())
	case errors.Is(err, intelligence.ErrModelOutputUnparsable):
		writeErrorDetails(c, http.StatusInternalServerError, "ai response could not be parsed", err.Error())
	default:
		writeErrorDetails(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
