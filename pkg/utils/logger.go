package utils

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const loggerKey = "logger"

// SetLogger attaches a request scoped logger to the context.
func SetLogger(c echo.Context, logger *zap.Logger) {
	c.Set(loggerKey, logger)
}

// Logger returns the logger attached by SetLogger, or a no-op logger.
func Logger(c echo.Context) *zap.Logger {
	if l, ok := c.Get(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
