package repository

import (
	"context"

	"agriconnect/internal/domain/entity"
)

// UserRepository is the account side of the marketplace API. Calls act on
// behalf of the session carried by ctx.
type UserRepository interface {
	Me(ctx context.Context) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, error)
	Register(ctx context.Context, data entity.RegisterData) (*entity.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, data entity.UpdateProfileData) (*entity.User, error)
}
