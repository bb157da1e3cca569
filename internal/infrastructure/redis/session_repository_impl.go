package redis

import (
	"context"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/internal/domain/entity"
	"github.com/oksasatya/identity-service/internal/domain/repository"
	"github.com/oksasatya/identity-service/pkg/helpers"
)

// SessionRepository keeps device sessions in Redis, keyed by session id with
// a secondary per-user set for bulk revocation. TTL tracks the session expiry.
type SessionRepository struct {
	client *redislib.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redislib.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Save(ctx context.Context, s *entity.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := helpers.RedisSetJSON(ctx, r.client, sessionKey(s.ID.Value()), s, ttl); err != nil {
		return err
	}
	pipe := r.client.Pipeline()
	pipe.SAdd(ctx, userSessionsKey(s.UserID.Value()), s.ID.Value())
	pipe.Expire(ctx, userSessionsKey(s.UserID.Value()), r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var s entity.Session
	found, err := helpers.RedisGetJSON(ctx, r.client, sessionKey(id), &s)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		if domain.Is(err, domain.ErrCodeNotFound) {
			return nil
		}
		return err
	}
	pipe := r.client.Pipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, userSessionsKey(s.UserID.Value()), id)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	ids, err := r.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return err
	}
	pipe := r.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, sessionKey(id))
	}
	pipe.Del(ctx, userSessionsKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}

func sessionKey(id string) string { return "user:session:" + id }

func userSessionsKey(userID string) string { return "user:sessions:" + userID }

var _ repository.SessionRepository = (*SessionRepository)(nil)
