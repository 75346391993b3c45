package utils

import (
	"errors"
	"net/http"

	"move-booking/internal/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RespondWithError writes a models.ErrorResponse with the given status.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, models.ErrorResponse{Message: message})
}

// RespondWithJSON writes payload as JSON with the given status.
func RespondWithJSON(c echo.Context, code int, payload interface{}) error {
	return c.JSON(code, payload)
}

// HandleServiceError maps service layer errors onto HTTP replies.
func HandleServiceError(c echo.Context, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"message":  "Incomplete Selection",
			"problems": verr.Problems,
		})
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, models.ErrUnknownVehicle):
		return RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrRouteEndpointsMissing):
		return RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrNoRoute):
		return RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrOrderCannotBeCancelled),
		errors.Is(err, models.ErrOrderCannotBeCompleted):
		return RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInvalidPrice):
		Logger(c).Error("pricing failed", zap.Error(err))
		return RespondWithError(c, http.StatusInternalServerError, "Unable to price this booking")
	default:
		Logger(c).Error("unhandled service error", zap.Error(err))
		return RespondWithError(c, http.StatusInternalServerError, "An internal error occurred")
	}
}
