package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/internal/domain/entity"
	"github.com/oksasatya/identity-service/internal/domain/repository"
	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

const userColumns = `id, email, password_hash, status, roles, created_at, updated_at, email_verified_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id.Value())
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, status, roles, created_at, updated_at, email_verified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID.Value(), u.Email.Value(), u.PasswordHash, string(u.Status), u.Roles, u.CreatedAt, u.UpdatedAt, u.EmailVerifiedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrEmailExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, status = $3, roles = $4, updated_at = $5, email_verified_at = $6
		WHERE id = $7
	`, u.Email.Value(), u.PasswordHash, string(u.Status), u.Roles, u.UpdatedAt, u.EmailVerifiedAt, u.ID.Value())
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id valueobject.Identifier) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id.Value())
	return err
}

func (r *UserRepository) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	args := []any{}
	if filter.Email != "" {
		args = append(args, filter.Email)
		q += ` AND email = $1`
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		if len(args) == 1 {
			q += ` AND status = $1`
		} else {
			q += ` AND status = $2`
		}
	}
	q += ` ORDER BY created_at`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u         entity.User
		rawID     string
		rawEmail  string
		rawStatus string
	)
	err := row.Scan(&rawID, &rawEmail, &u.PasswordHash, &rawStatus, &u.Roles,
		&u.CreatedAt, &u.UpdatedAt, &u.EmailVerifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if u.ID, err = valueobject.ParseIdentifier(rawID); err != nil {
		return nil, err
	}
	if u.Email, err = valueobject.NewEmail(rawEmail); err != nil {
		return nil, err
	}
	u.Status = entity.UserStatus(rawStatus)
	return &u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
