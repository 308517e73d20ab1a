package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	redisx "agriconnect/internal/infrastructure/redis"
)

type redisSessionRepository struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedisSessionRepository stores each session as a JSON string whose TTL
// follows the session expiry.
func NewRedisSessionRepository(rdb *redis.Client) repository.SessionRepository {
	return &redisSessionRepository{
		rdb: rdb,
		now: time.Now,
	}
}

func (r *redisSessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.rdb.Get(ctx, redisx.SessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if session.Expired(r.now()) {
		return nil, repository.ErrSessionNotFound
	}
	return &session, nil
}

func (r *redisSessionRepository) Save(ctx context.Context, session *entity.Session) error {
	snapshot := session.Clone()
	ttl := snapshot.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.Delete(ctx, session.ID)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, redisx.SessionKey(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	session.MarkClean()
	return nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, redisx.SessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
