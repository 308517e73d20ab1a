package repository

import (
	"context"

	"agriconnect/internal/domain/entity"
)

type ProductRepository interface {
	ListMine(ctx context.Context) ([]entity.Product, error)
	Delete(ctx context.Context, id string) error
}
