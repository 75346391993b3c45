package middleware

import (
	"errors"
	"net/http"

	"move-booking/internal/models"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JWTAuth verifies bearer tokens issued by the identity provider and puts
// the caller's id and email on the context as "userID" and "userEmail".
func JWTAuth(jwtSecretKey string, logger *zap.Logger) echo.MiddlewareFunc {
	config := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.JwtCustomClaims)
		},
		SigningKey: []byte(jwtSecretKey),

		SuccessHandler: func(c echo.Context) {
			// "user" is the default context key used by echo-jwt
			userToken := c.Get("user").(*jwt.Token)
			claims := userToken.Claims.(*models.JwtCustomClaims)

			c.Set("userID", claims.UserID)
			c.Set("userEmail", claims.Email)
			logger.Debug("jwt auth ok", zap.String("user_id", claims.UserID))
		},

		ErrorHandler: func(c echo.Context, err error) error {
			logger.Info("jwt rejected", zap.String("path", c.Path()), zap.Error(err))

			switch {
			case errors.Is(err, echojwt.ErrJWTMissing):
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Missing or malformed JWT"})
			case errors.Is(err, jwt.ErrTokenMalformed):
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Token is malformed"})
			case errors.Is(err, jwt.ErrTokenExpired):
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Token has expired"})
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid token signature"})
			}
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid or expired JWT"})
		},
	}
	return echojwt.WithConfig(config)
}

// RequireSubject rejects verified tokens that carry no user id.
func RequireSubject() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, _ := c.Get("userID").(string); id == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Token has no subject"})
			}
			return next(c)
		}
	}
}

