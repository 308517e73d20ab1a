package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
)

const sessionsCollection = "dashboard_sessions"

type firestoreSessionRepository struct {
	client *firestore.Client
	now    func() time.Time
}

// sessionDocument wraps the JSON form of a session so that the Role and
// decimal codecs stay the ones used on the wire.
type sessionDocument struct {
	Data      string    `firestore:"data"`
	ExpiresAt time.Time `firestore:"expiresAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func NewFirestoreSessionRepository(client *firestore.Client) repository.SessionRepository {
	return &firestoreSessionRepository{
		client: client,
		now:    time.Now,
	}
}

func (r *firestoreSessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	doc, err := r.client.Collection(sessionsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var stored sessionDocument
	if err := doc.DataTo(&stored); err != nil {
		return nil, fmt.Errorf("decode session document: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(stored.Data), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if session.Expired(r.now()) {
		return nil, repository.ErrSessionNotFound
	}
	return &session, nil
}

func (r *firestoreSessionRepository) Save(ctx context.Context, session *entity.Session) error {
	snapshot := session.Clone()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	_, err = r.client.Collection(sessionsCollection).Doc(session.ID).Set(ctx, sessionDocument{
		Data:      string(data),
		ExpiresAt: snapshot.ExpiresAt,
		UpdatedAt: r.now(),
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	session.MarkClean()
	return nil
}

func (r *firestoreSessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(sessionsCollection).Doc(id).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
