package repository

import (
	"context"

	"agriconnect/internal/domain/entity"
)

type MessageRepository interface {
	ListContacts(ctx context.Context) ([]entity.Contact, error)
	ListMessages(ctx context.Context, contactID string) ([]entity.Message, error)
	Send(ctx context.Context, input entity.SendMessageInput) (*entity.Message, error)
}
