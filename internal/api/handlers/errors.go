package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/sportsevents/sports-events-api/internal/repository"
	"github.com/sportsevents/sports-events-api/internal/service"
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// respondError maps service and repository errors onto HTTP statuses.
// Business rule violations and bad input are the caller's fault (400),
// missing records are 404, and anything else is a 500 the caller may
// retry.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Resource not found", Code: "NOT_FOUND"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error(), Code: "CONFLICT"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error(), Code: "VALIDATION_ERROR"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error", Code: "INTERNAL_ERROR"})
	}
}

// respondBindError turns a gin binding failure into a 400 with the
// field-level detail when the failure came from validation
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: verrs.Error(), Code: "VALIDATION_ERROR"})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error(), Code: "INVALID_REQUEST"})
}
