package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ExtractUserInfo reads the identity placed on the context by the JWT middleware.
// On failure the returned error is an *echo.HTTPError carrying 401, so
// handlers return it as is.
func ExtractUserInfo(c echo.Context) (userID string, email string, err error) {
	userID, ok := c.Get("userID").(string)
	if !ok || userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing user identity")
	}
	email, _ = c.Get("userEmail").(string)
	return userID, email, nil
}
