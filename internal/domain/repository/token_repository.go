package repository

import (
	"context"

	"github.com/oksasatya/identity-service/internal/domain/entity"
	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

// TokenRepository is the persistence contract for single-use tokens.
// Lookup misses surface as domain.ErrTokenNotFound.
type TokenRepository interface {
	FindByID(ctx context.Context, id valueobject.Identifier) (*entity.Token, error)
	// FindByValue resolves a token by the digest of its public value.
	FindByValue(ctx context.Context, secretHash string) (*entity.Token, error)
	Insert(ctx context.Context, t *entity.Token) error
	Update(ctx context.Context, t *entity.Token) error
	Delete(ctx context.Context, id valueobject.Identifier) error
	// MarkUsed burns the token with a single conditional write
	// ("set used_at where used_at is null"), so two concurrent redemptions
	// cannot both succeed. Returns domain.ErrTokenInactive when the token
	// was already consumed and domain.ErrTokenNotFound when absent.
	MarkUsed(ctx context.Context, id valueobject.Identifier) error
}
