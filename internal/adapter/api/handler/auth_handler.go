package handler

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/middleware"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string      `json:"name" validate:"required"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     entity.Role `json:"role" validate:"seller_or_buyer"`
	Phone    string      `json:"phone"`
	Region   string      `json:"region" validate:"omitempty,region"`
	Address  string      `json:"address"`
}

type updateProfileRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Region      string `json:"region" validate:"omitempty,region"`
	Address     string `json:"address"`
	OldPassword string `json:"oldPassword" validate:"required_with=NewPassword"`
	NewPassword string `json:"newPassword" validate:"omitempty,min=6"`
}

type sessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	User          *usecase.UserCard `json:"user,omitempty"`
	Navigation    []entity.NavItem  `json:"navigation,omitempty"`
}

type loginViewResponse struct {
	Authenticated bool     `json:"authenticated"`
	Roles         []string `json:"roles"`
	Regions       []string `json:"regions"`
}

func sessionPayload(user *entity.User, path string) sessionResponse {
	if user == nil {
		return sessionResponse{Authenticated: false}
	}
	card := usecase.NewUserCard(user)
	return sessionResponse{
		Authenticated: true,
		User:          &card,
		Navigation:    entity.Navigation(user.Role, path),
	}
}

// Session is the probe run when the browser first loads the dashboard.
// It never fails: an unknown session simply reads as logged out.
func (h *AuthHandler) Session(c echo.Context) error {
	s := middleware.SessionFrom(c)
	user := h.authUseCase.Probe(c.Request().Context(), s)

	path := c.QueryParam("path")
	if path == "" {
		path = entity.PathDashboard
	}
	return response.Success(c, sessionPayload(user, path))
}

func (h *AuthHandler) LoginView(c echo.Context) error {
	view := loginViewResponse{
		Roles:   []string{entity.RoleBuyer.String(), entity.RoleSeller.String()},
		Regions: entity.Regions,
	}

	if h.authUseCase.Current(middleware.SessionFrom(c)) != nil {
		view.Authenticated = true
		return response.Redirect(c, entity.PathDashboard, view, nil)
	}
	return response.Success(c, view)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	outcome, err := h.authUseCase.Login(c.Request().Context(), middleware.SessionFrom(c), req.Email, req.Password)
	if err != nil {
		return response.ErrorWithNotice(c, err, response.ErrorNotice(errors.MessageOr(err, "Échec de la connexion")))
	}

	return response.Redirect(c, outcome.Redirect, sessionPayload(outcome.User, outcome.Redirect), nil)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	outcome, err := h.authUseCase.Register(c.Request().Context(), middleware.SessionFrom(c), entity.RegisterData{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
		Region:   req.Region,
		Address:  req.Address,
	})
	if err != nil {
		return response.ErrorWithNotice(c, err, response.ErrorNotice(errors.MessageOr(err, "Échec de l'inscription")))
	}

	return response.Redirect(c, outcome.Redirect, sessionPayload(outcome.User, outcome.Redirect), nil)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	outcome := h.authUseCase.Logout(c.Request().Context(), middleware.SessionFrom(c))
	return response.Redirect(c, outcome.Redirect, sessionPayload(nil, ""), nil)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.authUseCase.UpdateProfile(c.Request().Context(), middleware.SessionFrom(c), entity.UpdateProfileData{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Region:      req.Region,
		Address:     req.Address,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return response.ErrorWithNotice(c, err, response.ErrorNotice(errors.MessageOr(err, "Échec de la mise à jour du profil")))
	}

	return response.View(c, sessionPayload(user, entity.PathProfile), response.SuccessNotice("Profil mis à jour", "Vos informations ont été enregistrées avec succès"), nil)
}
