package repository

import (
	"context"
	"sync"
	"time"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
	now      func() time.Time
}

// NewMemorySessionRepository keeps sessions in process memory. Sessions are
// lost on restart, which is fine for a single development instance.
func NewMemorySessionRepository() repository.SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]*entity.Session),
		now:      time.Now,
	}
}

func (r *memorySessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	r.mu.RLock()
	stored, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if stored.Expired(r.now()) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, repository.ErrSessionNotFound
	}
	return stored.Clone(), nil
}

func (r *memorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	stored := session.Clone()

	r.mu.Lock()
	r.sessions[session.ID] = stored
	r.mu.Unlock()

	session.MarkClean()
	return nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}
