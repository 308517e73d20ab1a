package handler

import (
	"net/url"

	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/middleware"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/response"
)

const maxPhotoSize = 5 << 20

type ProfileHandler struct {
	workspaces     *usecase.WorkspaceRegistry
	profileUseCase *usecase.ProfileUseCase
}

func NewProfileHandler(workspaces *usecase.WorkspaceRegistry, profileUseCase *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		workspaces:     workspaces,
		profileUseCase: profileUseCase,
	}
}

type addCultureRequest struct {
	Culture string `json:"culture" validate:"required,culture"`
}

func (h *ProfileHandler) Mount(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	result := h.profileUseCase.Mount(workspaceOf(c, h.workspaces), user)
	return response.View(c, result.Snapshot, result.Notice, nil)
}

func (h *ProfileHandler) UpdateFields(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	var fields entity.ProfileFields
	if err := c.Bind(&fields); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	result, err := h.profileUseCase.Update(workspaceOf(c, h.workspaces), user, fields)
	return renderProfile(c, result, err)
}

func (h *ProfileHandler) AddCulture(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	var req addCultureRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.profileUseCase.AddCulture(workspaceOf(c, h.workspaces), user, req.Culture)
	return renderProfile(c, result, err)
}

func (h *ProfileHandler) RemoveCulture(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	culture, err := url.PathUnescape(c.Param("culture"))
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid culture", err))
	}

	result := h.profileUseCase.RemoveCulture(workspaceOf(c, h.workspaces), user, culture)
	return response.View(c, result.Snapshot, result.Notice, nil)
}

func (h *ProfileHandler) Save(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	result, err := h.profileUseCase.Save(c.Request().Context(), workspaceOf(c, h.workspaces), user)
	return renderProfile(c, result, err)
}

func (h *ProfileHandler) UploadPhoto(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthenticated(c, entity.PathLogin)
	}

	header, err := c.FormFile("photo")
	if err != nil {
		return response.Error(c, errors.BadRequest("Photo file is required", err))
	}
	if header.Size > maxPhotoSize {
		return response.Error(c, errors.BadRequest("La photo ne doit pas dépasser 5 Mo", nil))
	}

	file, err := header.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Unable to read photo", err))
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := h.profileUseCase.UploadPhoto(c.Request().Context(), workspaceOf(c, h.workspaces), user, header.Filename, contentType, file)
	return renderProfile(c, result, err)
}

func renderProfile(c echo.Context, result *usecase.ProfileResult, err error) error {
	if result == nil {
		return response.Error(c, err)
	}
	return response.View(c, result.Snapshot, result.Notice, err)
}
