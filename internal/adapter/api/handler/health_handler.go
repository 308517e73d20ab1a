package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// StoreCheck probes the session store. Nil means the store lives in memory.
type StoreCheck func(ctx context.Context) error

type HealthHandler struct {
	store string
	check StoreCheck
}

var healthHandler *HealthHandler

func NewHealthHandler(store string, check StoreCheck) *HealthHandler {
	return &HealthHandler{
		store: store,
		check: check,
	}
}

func SetupHealthHandler(store string, check StoreCheck) {
	healthHandler = NewHealthHandler(store, check)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckSessionStore(c echo.Context) error {
	if h.check != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		if err := h.check(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "Session store unreachable",
				"store":  h.store,
				"error":  err.Error(),
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Session store connected",
		"store":  h.store,
	})
}
