package api

import (
	"net/http"

	"move-booking/internal/api/middleware"
	"move-booking/internal/modules/bookings"
	"move-booking/internal/modules/profile"
	"move-booking/internal/modules/vehicles"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handlers groups the module handlers the router mounts.
type Handlers struct {
	Vehicles *vehicles.Handler
	Bookings *bookings.Handler
	Profile  *profile.Handler
}

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(e *echo.Echo, h Handlers, jwtSecret string, logger *zap.Logger) {
	authMiddleware := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret, logger),
		middleware.RequireSubject(),
	}

	// --- Public Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to Move Booking!"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	// --- Catalog ---
	vehicles.RegisterRoutes(e.Group("/vehicles"), h.Vehicles)
	e.GET("/timeslots", h.Bookings.ListTimeSlots)

	// --- Booking Draft ---
	bookings.RegisterDraftRoutes(e.Group("/draft", authMiddleware...), h.Bookings)
	e.POST("/checkout", h.Bookings.Checkout, authMiddleware...)

	// --- Order History ---
	bookings.RegisterOrderRoutes(e.Group("/orders", authMiddleware...), h.Bookings)

	// --- Profile ---
	profile.RegisterRoutes(e.Group("/profile", authMiddleware...), h.Profile)
}
