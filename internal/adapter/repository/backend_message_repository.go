package repository

import (
	"context"
	"net/url"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infrastructure/backend"
)

type backendMessageRepository struct {
	client *backend.Client
}

func NewBackendMessageRepository(client *backend.Client) repository.MessageRepository {
	return &backendMessageRepository{
		client: client,
	}
}

func (r *backendMessageRepository) ListContacts(ctx context.Context) ([]entity.Contact, error) {
	var contacts []entity.Contact
	if err := r.client.Get(ctx, "/api/messages/contacts", &contacts); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []entity.Contact{}
	}
	return contacts, nil
}

func (r *backendMessageRepository) ListMessages(ctx context.Context, contactID string) ([]entity.Message, error) {
	var messages []entity.Message
	if err := r.client.Get(ctx, "/api/messages/"+url.PathEscape(contactID), &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []entity.Message{}
	}
	return messages, nil
}

func (r *backendMessageRepository) Send(ctx context.Context, input entity.SendMessageInput) (*entity.Message, error) {
	var message entity.Message
	if err := r.client.Post(ctx, "/api/messages", input, &message); err != nil {
		return nil, err
	}
	return &message, nil
}
