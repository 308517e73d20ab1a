package repository

import (
	"context"

	"agriconnect/internal/domain/entity"
)

type ProfileRepository interface {
	Save(ctx context.Context, profile entity.Profile) error
}
