package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"move-booking/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &models.ValidationError{Problems: []string{"origin is required"}}, http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("repo: %w", models.ErrNotFound), http.StatusNotFound},
		{"unknown vehicle", models.ErrUnknownVehicle, http.StatusUnprocessableEntity},
		{"no route", models.ErrNoRoute, http.StatusUnprocessableEntity},
		{"cannot cancel", models.ErrOrderCannotBeCancelled, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()
			require.NoError(t, HandleServiceError(c, tt.err))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandleServiceError_LogsInternalErrorsThroughZap(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	c, rec := newContext()
	SetLogger(c, zap.New(core))

	require.NoError(t, HandleServiceError(c, errors.New("db down")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	c, rec = newContext()
	SetLogger(c, zap.New(core))
	require.NoError(t, HandleServiceError(c, fmt.Errorf("quote: %w", models.ErrInvalidPrice)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "db down", entries[0].ContextMap()["error"])
	assert.Equal(t, "pricing failed", entries[1].Message)
}

func TestLogger_DefaultsToNop(t *testing.T) {
	c, _ := newContext()
	assert.NotNil(t, Logger(c))
}
