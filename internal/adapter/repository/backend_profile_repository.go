package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/infrastructure/backend"
	"agriconnect/pkg/errors"
)

type backendProfileRepository struct {
	client *backend.Client
}

func NewBackendProfileRepository(client *backend.Client) repository.ProfileRepository {
	return &backendProfileRepository{
		client: client,
	}
}

// Save sends the whole draft; the backend replaces the stored profile.
func (r *backendProfileRepository) Save(ctx context.Context, profile entity.Profile) error {
	return r.client.Put(ctx, "/api/user/profile", profile, nil)
}

type backendPhotoUploader struct {
	client *backend.Client
}

func NewBackendPhotoUploader(client *backend.Client) service.PhotoUploader {
	return &backendPhotoUploader{
		client: client,
	}
}

func (u *backendPhotoUploader) UploadProfilePhoto(ctx context.Context, filename, contentType string, file io.Reader) (string, error) {
	var out struct {
		PhotoURL string `json:"photoUrl"`
	}

	err := u.client.Do(ctx, backend.Request{
		Method: http.MethodPost,
		Path:   "/api/user/profile/photo",
		File: &backend.File{
			Field:       "photo",
			Filename:    filename,
			ContentType: contentType,
			Content:     file,
		},
	}, &out)
	if err != nil {
		return "", err
	}
	if out.PhotoURL == "" {
		return "", errors.Upstream(http.StatusBadGateway, "", fmt.Errorf("photo upload reply without photoUrl"))
	}
	return out.PhotoURL, nil
}
