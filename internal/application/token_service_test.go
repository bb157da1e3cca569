package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/internal/domain/entity"
	"github.com/oksasatya/identity-service/internal/domain/event"
	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

func pendingUser(t *testing.T) *entity.User {
	t.Helper()
	email, err := valueobject.NewEmail("alice@example.com")
	require.NoError(t, err)
	return entity.RegisterUser(email, "hashed:Str0ng!pass", nil)
}

// tokenStore keeps issued tokens in memory so redemption tests can run the
// full issue-then-consume round trip against the real conditional semantics.
type tokenStore struct {
	mockTokenRepo
	byHash map[string]*entity.Token
}

func newTokenStore() *tokenStore {
	s := &tokenStore{byHash: map[string]*entity.Token{}}
	s.insertFn = func(ctx context.Context, tok *entity.Token) error {
		s.byHash[tok.SecretHash] = tok
		return nil
	}
	s.findByValueFn = func(ctx context.Context, secretHash string) (*entity.Token, error) {
		if tok, ok := s.byHash[secretHash]; ok {
			return tok, nil
		}
		return nil, domain.ErrTokenNotFound
	}
	s.markUsedFn = func(ctx context.Context, id valueobject.Identifier) error {
		for _, tok := range s.byHash {
			if tok.ID.Equals(id) {
				if tok.UsedAt != nil {
					return domain.ErrTokenInactive
				}
				tok.MarkUsed()
				return nil
			}
		}
		return domain.ErrTokenNotFound
	}
	return s
}

func TestIssueToken(t *testing.T) {
	u := pendingUser(t)
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
			if id.Equals(u.ID) {
				return u, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	store := newTokenStore()
	svc := NewTokenService(users, store, fakeProvider{}, fakeHasher{}, nil, nil)

	tok, secret, err := svc.IssueToken(context.Background(), u.ID.Value(), entity.PurposeEmailVerification, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "secret", secret)
	// only the digest is persisted
	assert.Equal(t, "digest:secret", tok.SecretHash)
	assert.True(t, tok.IsActive())
	assert.True(t, tok.UserID.Equals(u.ID))
}

func TestIssueTokenUnknownUser(t *testing.T) {
	svc := NewTokenService(&mockUserRepo{}, newTokenStore(), fakeProvider{}, fakeHasher{}, nil, nil)
	_, _, err := svc.IssueToken(context.Background(), valueobject.NewIdentifier().Value(), entity.PurposePasswordReset, 0)
	assert.True(t, domain.Is(err, domain.ErrCodeNotFound))
}

func TestVerifyEmailFlow(t *testing.T) {
	u := pendingUser(t)
	userUpdated := false
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
			return u, nil
		},
		updateFn: func(ctx context.Context, _ *entity.User) error {
			userUpdated = true
			return nil
		},
	}
	store := newTokenStore()
	events := event.NewDispatcher()
	var got []event.Event
	events.Subscribe(event.EmailVerified, func(ctx context.Context, e event.Event) {
		got = append(got, e)
	})
	svc := NewTokenService(users, store, fakeProvider{}, fakeHasher{}, events, nil)

	_, secret, err := svc.IssueToken(context.Background(), u.ID.Value(), entity.PurposeEmailVerification, time.Hour)
	require.NoError(t, err)

	verified, err := svc.VerifyEmail(context.Background(), secret)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, verified.Status)
	assert.NotNil(t, verified.EmailVerifiedAt)
	assert.True(t, userUpdated)
	require.Len(t, got, 1)

	// second redemption of the same token is rejected as inactive
	_, err = svc.VerifyEmail(context.Background(), secret)
	assert.True(t, domain.Is(err, domain.ErrCodeTokenInactive))
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	u := pendingUser(t)
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
			return u, nil
		},
	}
	svc := NewTokenService(users, newTokenStore(), fakeProvider{}, fakeHasher{}, nil, nil)

	_, err := svc.VerifyEmail(context.Background(), "no-such-secret")
	assert.True(t, domain.Is(err, domain.ErrCodeTokenInvalid))
}

func TestVerifyEmailWrongPurpose(t *testing.T) {
	u := pendingUser(t)
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
			return u, nil
		},
	}
	store := newTokenStore()
	svc := NewTokenService(users, store, fakeProvider{}, fakeHasher{}, nil, nil)

	_, secret, err := svc.IssueToken(context.Background(), u.ID.Value(), entity.PurposePasswordReset, time.Hour)
	require.NoError(t, err)

	// reset tokens never verify email
	_, err = svc.VerifyEmail(context.Background(), secret)
	assert.True(t, domain.Is(err, domain.ErrCodeTokenInvalid))
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	u := pendingUser(t)
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
			return u, nil
		},
	}
	store := newTokenStore()
	svc := NewTokenService(users, store, fakeProvider{}, fakeHasher{}, nil, nil)

	tok, secret, err := svc.IssueToken(context.Background(), u.ID.Value(), entity.PurposeEmailVerification, time.Hour)
	require.NoError(t, err)
	tok.ExpiresAt = time.Now().Add(-time.Minute)

	_, err = svc.VerifyEmail(context.Background(), secret)
	assert.True(t, domain.Is(err, domain.ErrCodeTokenInactive))
	assert.Equal(t, entity.StatusPending, u.Status)
}

func TestVerifyEmailDisabledUser(t *testing.T) {
	u := pendingUser(t)
	u.Disable()
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
			return u, nil
		},
	}
	store := newTokenStore()
	svc := NewTokenService(users, store, fakeProvider{}, fakeHasher{}, nil, nil)

	_, secret, err := svc.IssueToken(context.Background(), u.ID.Value(), entity.PurposeEmailVerification, time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyEmail(context.Background(), secret)
	assert.True(t, domain.Is(err, domain.ErrCodeIllegalTransition))

	// the token survives a failed redemption
	tok, ferr := store.findByValueFn(context.Background(), "digest:"+secret)
	require.NoError(t, ferr)
	assert.Nil(t, tok.UsedAt)
}

func TestResetPasswordFlow(t *testing.T) {
	u := pendingUser(t)
	require.NoError(t, u.VerifyEmail())
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
			return u, nil
		},
	}
	store := newTokenStore()
	events := event.NewDispatcher()
	var got []event.Event
	events.Subscribe(event.PasswordChanged, func(ctx context.Context, e event.Event) {
		got = append(got, e)
	})
	svc := NewTokenService(users, store, fakeProvider{}, fakeHasher{}, events, nil)

	_, secret, err := svc.IssueToken(context.Background(), u.ID.Value(), entity.PurposePasswordReset, 30*time.Minute)
	require.NoError(t, err)

	reset, err := svc.ResetPassword(context.Background(), secret, "N3w!passw0rd")
	require.NoError(t, err)
	assert.Equal(t, "hashed:N3w!passw0rd", reset.PasswordHash)
	require.Len(t, got, 1)

	_, err = svc.ResetPassword(context.Background(), secret, "An0ther!pass")
	assert.True(t, domain.Is(err, domain.ErrCodeTokenInactive))
}

func TestResetPasswordWeakPasswordKeepsToken(t *testing.T) {
	u := pendingUser(t)
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
			return u, nil
		},
	}
	store := newTokenStore()
	svc := NewTokenService(users, store, fakeProvider{}, fakeHasher{}, nil, nil)

	_, secret, err := svc.IssueToken(context.Background(), u.ID.Value(), entity.PurposePasswordReset, time.Hour)
	require.NoError(t, err)

	// the policy check runs before any store access, so the token is not burned
	_, err = svc.ResetPassword(context.Background(), secret, "weak")
	assert.True(t, domain.Is(err, domain.ErrCodeWeakCredential))

	reset, err := svc.ResetPassword(context.Background(), secret, "N3w!passw0rd")
	require.NoError(t, err)
	assert.Equal(t, "hashed:N3w!passw0rd", reset.PasswordHash)
}
