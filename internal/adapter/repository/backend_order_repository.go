package repository

import (
	"context"
	"net/url"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infrastructure/backend"
)

type backendOrderRepository struct {
	client *backend.Client
}

func NewBackendOrderRepository(client *backend.Client) repository.OrderRepository {
	return &backendOrderRepository{
		client: client,
	}
}

func (r *backendOrderRepository) List(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := r.client.Get(ctx, "/api/orders", &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	return orders, nil
}

func (r *backendOrderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	body := map[string]entity.OrderStatus{"status": status}

	var order entity.Order
	if err := r.client.Patch(ctx, "/api/orders/"+url.PathEscape(id), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
