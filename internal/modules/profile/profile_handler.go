package profile

import (
	"net/http"

	"move-booking/internal/models"
	"move-booking/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler serves the profile screen.
type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetProfile(c echo.Context) error {
	userID, email, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	resp, err := h.service.GetProfile(c.Request().Context(), userID, email)
	if err != nil {
		utils.Logger(c).Error("Handler.GetProfile", zap.Error(err))
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve profile")
	}
	return utils.RespondWithJSON(c, http.StatusOK, resp)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, email, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}

	p, err := h.service.UpdateProfile(c.Request().Context(), userID, email, req)
	if err != nil {
		utils.Logger(c).Error("Handler.UpdateProfile", zap.Error(err))
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
	}
	return utils.RespondWithJSON(c, http.StatusOK, p)
}

// RegisterRoutes attaches the profile routes to the given group.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("", h.GetProfile)
	g.PUT("", h.UpdateProfile)
}
