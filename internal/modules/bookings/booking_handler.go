package bookings

import (
	"errors"
	"net/http"

	"move-booking/internal/models"
	"move-booking/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the booking draft, checkout and orders.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new booking handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

var errInvalidBody = errors.New("Invalid request body")

// bind decodes and validates the request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errInvalidBody
	}
	return utils.GetValidator().Validate(req)
}

func (h *Handler) GetDraft(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.svc.GetDraft(userID))
}

func (h *Handler) SetOrigin(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.SetLocationRequest
	if err := bind(c, &req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.svc.SetOrigin(userID, req.Location))
}

func (h *Handler) SetDestination(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.SetLocationRequest
	if err := bind(c, &req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.svc.SetDestination(userID, req.Location))
}

func (h *Handler) SelectVehicle(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.SetVehicleRequest
	if err := bind(c, &req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	d, err := h.svc.SelectVehicle(c.Request().Context(), userID, req.VehicleID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, d)
}

func (h *Handler) SetDateTime(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.SetDateTimeRequest
	if err := bind(c, &req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.svc.SetDateTime(userID, req.DateTime))
}

func (h *Handler) SetItems(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.SetItemsRequest
	if err := bind(c, &req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.svc.SetItems(userID, req.Items))
}

func (h *Handler) SetDistance(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.SetDistanceRequest
	if err := bind(c, &req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.svc.SetDistance(userID, req.Distance))
}

func (h *Handler) SetDuration(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.SetDurationRequest
	if err := bind(c, &req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.svc.SetDuration(userID, req.Duration))
}

// SetMetrics handles PUT /draft/metrics and replaces both fields; an omitted
// key clears its field.
func (h *Handler) SetMetrics(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.SetMetricsRequest
	if err := bind(c, &req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.svc.SetMetrics(userID, req.Distance, req.Duration))
}

// ComputeRoute handles POST /draft/route.
func (h *Handler) ComputeRoute(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	route, err := h.svc.ComputeRoute(c.Request().Context(), userID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{
		"route": route,
		"draft": h.svc.GetDraft(userID),
	})
}

// ResetDraft handles DELETE /draft.
func (h *Handler) ResetDraft(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.svc.ResetDraft(userID))
}

// CommitDraft handles POST /draft/commit.
func (h *Handler) CommitDraft(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, http.StatusCreated, h.svc.CommitDraft(userID))
}

func (h *Handler) ListCommitted(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}
	return utils.RespondWithJSON(c, http.StatusOK, h.svc.CommittedBookings(userID))
}

// ValidateDraft handles POST /draft/validate. An incomplete draft answers 422.
func (h *Handler) ValidateDraft(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}
	if _, err := h.svc.ValidateDraft(userID); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"valid": true})
}

// ListTimeSlots handles GET /timeslots?date=YYYY-MM-DD.
func (h *Handler) ListTimeSlots(c echo.Context) error {
	date := c.QueryParam("date")
	slots, err := TimeSlots(date)
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"date": date, "slots": slots})
}

// Checkout handles POST /checkout.
func (h *Handler) Checkout(c echo.Context) error {
	userID, userEmail, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	order, err := h.svc.Checkout(c.Request().Context(), userID, userEmail)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, order)
}

func (h *Handler) ListMyOrders(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	page, limit := utils.GetPageLimit(c)
	orders, total, err := h.svc.ListUserOrders(c.Request().Context(), userID, page, limit)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"orders": orders, "total": total})
}

func (h *Handler) GetOrderDetails(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	order, err := h.svc.GetOrderDetails(c.Request().Context(), c.Param("orderId"), userID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, order)
}

func (h *Handler) CancelOrder(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	order, err := h.svc.CancelOrder(c.Request().Context(), c.Param("orderId"), userID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, order)
}

func (h *Handler) CompleteOrder(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	order, err := h.svc.CompleteOrder(c.Request().Context(), c.Param("orderId"), userID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, order)
}

// RegisterDraftRoutes attaches the draft routes to the given group.
func RegisterDraftRoutes(g *echo.Group, h *Handler) {
	g.GET("", h.GetDraft)
	g.DELETE("", h.ResetDraft)
	g.PUT("/origin", h.SetOrigin)
	g.PUT("/destination", h.SetDestination)
	g.PUT("/vehicle", h.SelectVehicle)
	g.PUT("/datetime", h.SetDateTime)
	g.PUT("/items", h.SetItems)
	g.PUT("/distance", h.SetDistance)
	g.PUT("/duration", h.SetDuration)
	g.PUT("/metrics", h.SetMetrics)
	g.POST("/route", h.ComputeRoute)
	g.POST("/commit", h.CommitDraft)
	g.GET("/bookings", h.ListCommitted)
	g.POST("/validate", h.ValidateDraft)
}

// RegisterOrderRoutes attaches the order history routes to the given group.
func RegisterOrderRoutes(g *echo.Group, h *Handler) {
	g.GET("", h.ListMyOrders)
	g.GET("/:orderId", h.GetOrderDetails)
	g.PUT("/:orderId/cancel", h.CancelOrder)
	g.PUT("/:orderId/complete", h.CompleteOrder)
}
