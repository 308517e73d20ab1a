package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/middleware"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/response"
)

type ProductHandler struct {
	workspaces     *usecase.WorkspaceRegistry
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(workspaces *usecase.WorkspaceRegistry, productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		workspaces:     workspaces,
		productUseCase: productUseCase,
	}
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	result, err := h.productUseCase.Mount(c.Request().Context(), workspaceOf(c, h.workspaces), user)
	return renderProducts(c, result, err)
}

// DeleteProduct requires ?confirm=true; without it the prompt comes back as a
// CONFIRMATION_REQUIRED error and nothing is sent upstream.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	confirmed := false
	if raw := c.QueryParam("confirm"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid confirm parameter", err))
		}
		confirmed = parsed
	}

	result, err := h.productUseCase.Delete(c.Request().Context(), workspaceOf(c, h.workspaces), user, c.Param("id"), confirmed)
	return renderProducts(c, result, err)
}

func renderProducts(c echo.Context, result *usecase.ProductResult, err error) error {
	if result == nil {
		return response.Error(c, err)
	}
	return response.View(c, result.Snapshot, result.Notice, err)
}
