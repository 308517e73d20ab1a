package handler

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/middleware"
	"agriconnect/internal/usecase"
	"agriconnect/pkg/errors"
)

var (
	authHandler      *AuthHandler
	dashboardHandler *DashboardHandler
	messageHandler   *MessageHandler
	orderHandler     *OrderHandler
	productHandler   *ProductHandler
	profileHandler   *ProfileHandler
)

func Setup(
	workspaces *usecase.WorkspaceRegistry,
	authUseCase *usecase.AuthUseCase,
	dashboardUseCase *usecase.DashboardUseCase,
	messageUseCase *usecase.MessageUseCase,
	orderUseCase *usecase.OrderUseCase,
	productUseCase *usecase.ProductUseCase,
	profileUseCase *usecase.ProfileUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	dashboardHandler = NewDashboardHandler(dashboardUseCase)
	messageHandler = NewMessageHandler(workspaces, messageUseCase)
	orderHandler = NewOrderHandler(workspaces, orderUseCase)
	productHandler = NewProductHandler(workspaces, productUseCase)
	profileHandler = NewProfileHandler(workspaces, profileUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetDashboardHandler() *DashboardHandler {
	return dashboardHandler
}

func GetMessageHandler() *MessageHandler {
	return messageHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetProfileHandler() *ProfileHandler {
	return profileHandler
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.BadRequest("Invalid request body", err)
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

// workspaceOf returns the page views of the calling session.
func workspaceOf(c echo.Context, workspaces *usecase.WorkspaceRegistry) *usecase.Workspace {
	return workspaces.Get(middleware.SessionFrom(c).ID)
}
