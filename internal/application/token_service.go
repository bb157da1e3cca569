package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/internal/domain/entity"
	"github.com/oksasatya/identity-service/internal/domain/event"
	repo "github.com/oksasatya/identity-service/internal/domain/repository"
	"github.com/oksasatya/identity-service/internal/domain/service"
	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

// TokenService runs the single-use token workflow: issuance, email
// verification, and password reset.
//
// Both consumption flows share one ordering invariant: the user update is
// persisted before the token is burned. A crash in between leaves an
// already-applied token that still looks redeemable; retrying it is safe
// because re-verifying an Active user is a no-op and MarkUsed is a
// conditional write.
type TokenService struct {
	Users    repo.UserRepository
	Tokens   repo.TokenRepository
	Provider service.TokenProvider
	Hasher   service.PasswordHasher
	Events   *event.Dispatcher
	Logger   *logrus.Logger
}

func NewTokenService(users repo.UserRepository, tokens repo.TokenRepository, provider service.TokenProvider, hasher service.PasswordHasher, events *event.Dispatcher, logger *logrus.Logger) *TokenService {
	return &TokenService{Users: users, Tokens: tokens, Provider: provider, Hasher: hasher, Events: events, Logger: logger}
}

// IssueToken mints a token for an existing user and returns it together
// with the plain secret to embed in the outbound link. Only the digest is
// persisted. A non-positive lifetime uses the 60 minute default.
func (s *TokenService) IssueToken(ctx context.Context, userID string, purpose entity.TokenPurpose, lifetime time.Duration) (*entity.Token, string, error) {
	id, err := valueobject.ParseIdentifier(userID)
	if err != nil {
		return nil, "", err
	}
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	secret, err := s.Provider.Generate()
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "token generation failed", err)
	}
	t := entity.NewToken(u.ID, s.Provider.Hash(secret), purpose, lifetime)
	if err := s.Tokens.Insert(ctx, t); err != nil {
		return nil, "", err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"user_id":    u.ID.Value(),
			"purpose":    string(purpose),
			"expires_at": t.ExpiresAt,
		}).Info("token issued")
	}
	return t, secret, nil
}

// VerifyEmail redeems an EmailVerification token and activates its owner.
// Pending -> Active; an already Active owner is tolerated so a retried
// confirmation succeeds. Failure kinds are distinct on purpose:
// TOKEN_INVALID means no such token (or wrong purpose), TOKEN_INACTIVE
// means the token exists but is expired or burned.
func (s *TokenService) VerifyEmail(ctx context.Context, rawToken string) (*entity.User, error) {
	t, err := s.resolveToken(ctx, rawToken, entity.PurposeEmailVerification)
	if err != nil {
		return nil, err
	}

	u, err := s.Users.FindByID(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	if err := u.VerifyEmail(); err != nil {
		return nil, err
	}

	// User first, then the token: see the ordering note on TokenService.
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := s.Tokens.MarkUsed(ctx, t.ID); err != nil {
		return nil, err
	}

	s.dispatch(ctx, event.New(event.EmailVerified, u.ID.Value(), u.Email.Value()))
	return u, nil
}

// ResetPassword redeems a PasswordReset token and sets a new credential.
// The password policy runs before any store access so a weak password
// never burns the token.
func (s *TokenService) ResetPassword(ctx context.Context, rawToken, newPassword string) (*entity.User, error) {
	cred, err := valueobject.NewCredential(newPassword)
	if err != nil {
		return nil, err
	}

	t, err := s.resolveToken(ctx, rawToken, entity.PurposePasswordReset)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.FindByID(ctx, t.UserID)
	if err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(cred.Value())
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "hashing failed", err)
	}
	u.ChangePassword(hash)

	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := s.Tokens.MarkUsed(ctx, t.ID); err != nil {
		return nil, err
	}

	s.dispatch(ctx, event.New(event.PasswordChanged, u.ID.Value(), u.Email.Value()))
	return u, nil
}

func (s *TokenService) resolveToken(ctx context.Context, rawToken string, purpose entity.TokenPurpose) (*entity.Token, error) {
	t, err := s.Tokens.FindByValue(ctx, s.Provider.Hash(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	if t.Purpose != purpose {
		return nil, domain.ErrTokenInvalid
	}
	if !t.IsActive() {
		return nil, domain.ErrTokenInactive
	}
	return t, nil
}

func (s *TokenService) dispatch(ctx context.Context, e event.Event) {
	if s.Events != nil {
		s.Events.Dispatch(ctx, e)
	}
}
