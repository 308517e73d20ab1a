package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists dashboard sessions. Get returns
// ErrSessionNotFound for unknown or expired ids.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id string) error
}
