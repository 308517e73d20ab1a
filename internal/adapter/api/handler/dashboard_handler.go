package handler

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/middleware"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"
	"agriconnect/pkg/response"
)

type DashboardHandler struct {
	dashboardUseCase *usecase.DashboardUseCase
}

func NewDashboardHandler(dashboardUseCase *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
	}
}

func (h *DashboardHandler) GetOverview(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	snapshot, notice := h.dashboardUseCase.Mount(c.Request().Context(), user)
	return response.View(c, snapshot, notice, nil)
}
