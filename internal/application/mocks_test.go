package application

import (
	"context"

	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/internal/domain/entity"
	repo "github.com/oksasatya/identity-service/internal/domain/repository"
	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

type mockUserRepo struct {
	findByIDFn    func(ctx context.Context, id valueobject.Identifier) (*entity.User, error)
	findByEmailFn func(ctx context.Context, email string) (*entity.User, error)
	insertFn      func(ctx context.Context, u *entity.User) error
	updateFn      func(ctx context.Context, u *entity.User) error
	listFn        func(ctx context.Context, filter repo.UserFilter) ([]*entity.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) Insert(ctx context.Context, u *entity.User) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id valueobject.Identifier) error {
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, filter repo.UserFilter) ([]*entity.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

type mockTokenRepo struct {
	findByIDFn    func(ctx context.Context, id valueobject.Identifier) (*entity.Token, error)
	findByValueFn func(ctx context.Context, secretHash string) (*entity.Token, error)
	insertFn      func(ctx context.Context, t *entity.Token) error
	markUsedFn    func(ctx context.Context, id valueobject.Identifier) error
}

func (m *mockTokenRepo) FindByID(ctx context.Context, id valueobject.Identifier) (*entity.Token, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrTokenNotFound
}

func (m *mockTokenRepo) FindByValue(ctx context.Context, secretHash string) (*entity.Token, error) {
	if m.findByValueFn != nil {
		return m.findByValueFn(ctx, secretHash)
	}
	return nil, domain.ErrTokenNotFound
}

func (m *mockTokenRepo) Insert(ctx context.Context, t *entity.Token) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, t)
	}
	return nil
}

func (m *mockTokenRepo) Update(ctx context.Context, t *entity.Token) error { return nil }

func (m *mockTokenRepo) Delete(ctx context.Context, id valueobject.Identifier) error { return nil }

func (m *mockTokenRepo) MarkUsed(ctx context.Context, id valueobject.Identifier) error {
	if m.markUsedFn != nil {
		return m.markUsedFn(ctx, id)
	}
	return nil
}

// fakeHasher prefixes instead of hashing so tests stay deterministic.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Compare(plain, digest string) bool { return digest == "hashed:"+plain }

// fakeProvider mints predictable secrets.
type fakeProvider struct {
	secret string
}

func (p fakeProvider) Generate() (string, error) {
	if p.secret != "" {
		return p.secret, nil
	}
	return "secret", nil
}

func (p fakeProvider) Hash(secret string) string { return "digest:" + secret }
