package handler

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/middleware"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"
	"agriconnect/pkg/response"
)

type OrderHandler struct {
	workspaces   *usecase.WorkspaceRegistry
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(workspaces *usecase.WorkspaceRegistry, orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		workspaces:   workspaces,
		orderUseCase: orderUseCase,
	}
}

type updateOrderStatusRequest struct {
	Status entity.OrderStatus `json:"status" validate:"required"`
}

func (h *OrderHandler) Mount(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	result, err := h.orderUseCase.Mount(c.Request().Context(), workspaceOf(c, h.workspaces), user)
	return renderOrders(c, result, err)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	var req updateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.orderUseCase.UpdateStatus(c.Request().Context(), workspaceOf(c, h.workspaces), user, c.Param("id"), req.Status)
	return renderOrders(c, result, err)
}

func renderOrders(c echo.Context, result *usecase.OrderResult, err error) error {
	if result == nil {
		return response.Error(c, err)
	}
	return response.View(c, result.Snapshot, result.Notice, err)
}
