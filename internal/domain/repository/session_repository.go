package repository

import (
	"context"

	"github.com/oksasatya/identity-service/internal/domain/entity"
)

// SessionRepository stores device sessions for the HTTP/JWT layer.
type SessionRepository interface {
	Save(ctx context.Context, s *entity.Session) error
	FindByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
