package vehicles

import (
	"net/http"

	"move-booking/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler exposes HTTP endpoints for the vehicle catalog.
type Handler struct {
	svc ServiceInterface
}

// NewHandler constructs a Handler with the provided service.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// ListVehicles handles GET /vehicles.
func (h *Handler) ListVehicles(c echo.Context) error {
	vehicles, err := h.svc.List(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to list vehicles")
	}
	return utils.RespondWithJSON(c, http.StatusOK, vehicles)
}

// GetVehicle handles GET /vehicles/:vehicleId.
func (h *Handler) GetVehicle(c echo.Context) error {
	v, err := h.svc.Get(c.Request().Context(), c.Param("vehicleId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, v)
}

// RegisterRoutes attaches catalog routes to the given Echo group.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("", h.ListVehicles)
	g.GET("/:vehicleId", h.GetVehicle)
}
