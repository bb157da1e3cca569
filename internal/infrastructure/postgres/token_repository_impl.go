package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/internal/domain/entity"
	"github.com/oksasatya/identity-service/internal/domain/repository"
	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

const tokenColumns = `id, user_id, secret_hash, purpose, created_at, expires_at, used_at`

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) FindByID(ctx context.Context, id valueobject.Identifier) (*entity.Token, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+tokenColumns+`
		FROM user_tokens
		WHERE id = $1
	`, id.Value())
	return scanToken(row)
}

func (r *TokenRepository) FindByValue(ctx context.Context, secretHash string) (*entity.Token, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+tokenColumns+`
		FROM user_tokens
		WHERE secret_hash = $1
	`, secretHash)
	return scanToken(row)
}

func (r *TokenRepository) Insert(ctx context.Context, t *entity.Token) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_tokens (id, user_id, secret_hash, purpose, created_at, expires_at, used_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID.Value(), t.UserID.Value(), t.SecretHash, string(t.Purpose), t.CreatedAt, t.ExpiresAt, t.UsedAt)
	return err
}

func (r *TokenRepository) Update(ctx context.Context, t *entity.Token) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE user_tokens
		SET expires_at = $1, used_at = $2
		WHERE id = $3
	`, t.ExpiresAt, t.UsedAt, t.ID.Value())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

func (r *TokenRepository) Delete(ctx context.Context, id valueobject.Identifier) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_tokens WHERE id = $1`, id.Value())
	return err
}

// MarkUsed burns the token with one conditional write so two concurrent
// redemptions can never both succeed: only the statement that flips used_at
// from NULL reports a row.
func (r *TokenRepository) MarkUsed(ctx context.Context, id valueobject.Identifier) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE user_tokens
		SET used_at = now()
		WHERE id = $1 AND used_at IS NULL
	`, id.Value())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		// Distinguish a consumed token from a missing one.
		if _, ferr := r.FindByID(ctx, id); ferr != nil {
			return ferr
		}
		return domain.ErrTokenInactive
	}
	return nil
}

func scanToken(row pgx.Row) (*entity.Token, error) {
	var (
		t          entity.Token
		rawID      string
		rawUserID  string
		rawPurpose string
	)
	err := row.Scan(&rawID, &rawUserID, &t.SecretHash, &rawPurpose,
		&t.CreatedAt, &t.ExpiresAt, &t.UsedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	if t.ID, err = valueobject.ParseIdentifier(rawID); err != nil {
		return nil, err
	}
	if t.UserID, err = valueobject.ParseIdentifier(rawUserID); err != nil {
		return nil, err
	}
	t.Purpose = entity.TokenPurpose(rawPurpose)
	return &t, nil
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
