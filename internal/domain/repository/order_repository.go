package repository

import (
	"context"

	"agriconnect/internal/domain/entity"
)

type OrderRepository interface {
	// List returns every order the current user is buyer or seller of.
	List(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error)
}
