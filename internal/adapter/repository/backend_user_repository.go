package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infrastructure/backend"
	"agriconnect/pkg/errors"
)

type backendUserRepository struct {
	client *backend.Client
}

func NewBackendUserRepository(client *backend.Client) repository.UserRepository {
	return &backendUserRepository{
		client: client,
	}
}

func (r *backendUserRepository) Me(ctx context.Context) (*entity.User, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, "/api/users/me", &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (r *backendUserRepository) Login(ctx context.Context, email, password string) (*entity.User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var raw json.RawMessage
	if err := r.client.Post(ctx, "/api/users/login", body, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (r *backendUserRepository) Register(ctx context.Context, data entity.RegisterData) (*entity.User, error) {
	var raw json.RawMessage
	if err := r.client.Post(ctx, "/api/users/register", data, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (r *backendUserRepository) Logout(ctx context.Context) error {
	return r.client.Post(ctx, "/api/users/logout", nil, nil)
}

func (r *backendUserRepository) UpdateProfile(ctx context.Context, data entity.UpdateProfileData) (*entity.User, error) {
	var raw json.RawMessage
	if err := r.client.Patch(ctx, "/api/users/profile", data, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

// decodeUser accepts both {"user": {...}} and a bare user object.
func decodeUser(raw json.RawMessage) (*entity.User, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.Upstream(http.StatusBadGateway, "", fmt.Errorf("empty user payload"))
	}

	var wrapped struct {
		User *entity.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, errors.Upstream(http.StatusBadGateway, "", fmt.Errorf("decode user: %w", err))
	}
	if wrapped.User != nil {
		return checkUser(wrapped.User)
	}

	var user entity.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, errors.Upstream(http.StatusBadGateway, "", fmt.Errorf("decode user: %w", err))
	}
	return checkUser(&user)
}

// checkUser rejects payloads the session could not store: no id or no role.
func checkUser(user *entity.User) (*entity.User, error) {
	if user.ID == "" {
		return nil, errors.Upstream(http.StatusBadGateway, "", fmt.Errorf("user payload without id"))
	}
	if !user.Role.Valid() {
		return nil, errors.Upstream(http.StatusBadGateway, "", fmt.Errorf("user %s payload without a valid role", user.ID))
	}
	return user, nil
}
