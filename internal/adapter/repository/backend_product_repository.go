package repository

import (
	"context"
	"net/url"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infrastructure/backend"
)

type backendProductRepository struct {
	client *backend.Client
}

func NewBackendProductRepository(client *backend.Client) repository.ProductRepository {
	return &backendProductRepository{
		client: client,
	}
}

func (r *backendProductRepository) ListMine(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.client.Get(ctx, "/api/products/my", &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

func (r *backendProductRepository) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/api/products/"+url.PathEscape(id))
}
