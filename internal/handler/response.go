package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/gateway/chapa"
	"travelapp/internal/repository"
	"travelapp/internal/service"
)

// ErrorResponse represents an error response. Message carries the payment
// gateway's own wording when one was available.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Internal faults get an opaque body; everything else keeps its message.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		c.JSON(code, ErrorResponse{Error: "internal server error"})
		return
	}

	var rejected *chapa.RejectedError
	if errors.As(err, &rejected) {
		c.JSON(code, ErrorResponse{Error: "payment gateway error", Message: rejected.Message})
		return
	}

	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository/gateway errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var rejected *chapa.RejectedError

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidTxRef),
		errors.Is(err, service.ErrInvalidListingID),
		errors.Is(err, service.ErrInvalidListingTitle),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPassword):
		return http.StatusBadRequest

	// Gateway failures surface to the client as Bad Request with the
	// gateway's message when present.
	case errors.As(err, &rejected),
		errors.Is(err, service.ErrGatewayUnavailable):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, repository.ErrAmbiguousReference),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict

	// Forbidden/ownership errors
	case errors.Is(err, service.ErrNotReviewOwner):
		return http.StatusForbidden

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
