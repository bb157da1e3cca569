package repository

import (
	"context"

	"github.com/oksasatya/identity-service/internal/domain/entity"
	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

// UserFilter narrows List results. Zero fields match everything.
type UserFilter struct {
	Email  string
	Status entity.UserStatus
}

// UserRepository is the persistence contract for the User aggregate.
// Implementations return domain.ErrUserNotFound for lookup misses and
// domain.ErrEmailExists when an insert collides on the email unique key.
type UserRepository interface {
	FindByID(ctx context.Context, id valueobject.Identifier) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Insert(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id valueobject.Identifier) error
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
}
