package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"move-booking/pkg/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextLogger_TagsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	e := echo.New()
	e.Use(echomw.RequestID())
	e.Use(ContextLogger(zap.New(core)))
	e.GET("/", func(c echo.Context) error {
		utils.Logger(c).Info("handled")
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	entries := logs.FilterMessage("handled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), entries[0].ContextMap()["request_id"])
}
