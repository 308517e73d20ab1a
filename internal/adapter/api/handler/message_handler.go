package handler

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/middleware"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"
	"agriconnect/pkg/response"
)

type MessageHandler struct {
	workspaces     *usecase.WorkspaceRegistry
	messageUseCase *usecase.MessageUseCase
}

func NewMessageHandler(workspaces *usecase.WorkspaceRegistry, messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		workspaces:     workspaces,
		messageUseCase: messageUseCase,
	}
}

type sendMessageRequest struct {
	ContactID string `json:"contactId"`
	Content   string `json:"content"`
}

func (h *MessageHandler) Mount(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	result, err := h.messageUseCase.Mount(c.Request().Context(), workspaceOf(c, h.workspaces), user)
	return renderMessages(c, result, err)
}

func (h *MessageHandler) Refresh(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	result, err := h.messageUseCase.Refresh(c.Request().Context(), workspaceOf(c, h.workspaces), user)
	return renderMessages(c, result, err)
}

func (h *MessageHandler) SelectContact(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	result, err := h.messageUseCase.Select(c.Request().Context(), workspaceOf(c, h.workspaces), user, c.Param("id"))
	return renderMessages(c, result, err)
}

// Send leaves blank content to the view model, which rejects it without a
// backend call.
func (h *MessageHandler) Send(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.messageUseCase.Send(c.Request().Context(), workspaceOf(c, h.workspaces), user, usecase.SendInput{
		ContactID: req.ContactID,
		Content:   req.Content,
	})
	return renderMessages(c, result, err)
}

func renderMessages(c echo.Context, result *usecase.MessageResult, err error) error {
	if result == nil {
		return response.Error(c, err)
	}
	return response.View(c, result.Snapshot, result.Notice, err)
}
