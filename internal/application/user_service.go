package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/internal/domain/entity"
	"github.com/oksasatya/identity-service/internal/domain/event"
	repo "github.com/oksasatya/identity-service/internal/domain/repository"
	"github.com/oksasatya/identity-service/internal/domain/service"
	"github.com/oksasatya/identity-service/internal/domain/valueobject"
)

// UserIndexer mirrors users into the search index. Implemented by the
// Elasticsearch adapter; nil disables indexing.
type UserIndexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
	Search(ctx context.Context, query string, size int) ([]map[string]any, error)
}

// UserService orchestrates registration, login, and account management.
// Each method is a single request/response boundary: every precondition
// failure surfaces as a typed domain error before any write happens.
type UserService struct {
	Users  repo.UserRepository
	Hasher service.PasswordHasher
	Events *event.Dispatcher
	Index  UserIndexer
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, hasher service.PasswordHasher, events *event.Dispatcher, index UserIndexer, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Hasher: hasher, Events: events, Index: index, Logger: logger}
}

// Register creates a Pending account. Validation order: email shape,
// uniqueness, password policy; nothing is persisted before all three pass.
// The store enforces uniqueness again on insert, which closes the race
// between the lookup and a concurrent registration of the same email.
func (s *UserService) Register(ctx context.Context, emailRaw, password string, roles []string) (*entity.User, error) {
	email, err := valueobject.NewEmail(emailRaw)
	if err != nil {
		return nil, err
	}

	existing, err := s.Users.FindByEmail(ctx, email.Value())
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	cred, err := valueobject.NewCredential(password)
	if err != nil {
		return nil, err
	}
	hash, err := s.Hasher.Hash(cred.Value())
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "hashing failed", err)
	}

	u := entity.RegisterUser(email, hash, roles)
	if err := s.Users.Insert(ctx, u); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID.Value(), "email": u.Email.Value()}).Info("user registered")
	}
	s.dispatch(ctx, event.New(event.UserRegistered, u.ID.Value(), u.Email.Value()))
	s.index(ctx, u)
	return u, nil
}

// Login authenticates by normalized email and password. Only Active
// accounts may log in; session issuance belongs to the transport layer.
func (s *UserService) Login(ctx context.Context, emailRaw, password string) (*entity.User, error) {
	email, err := valueobject.NewEmail(emailRaw)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.FindByEmail(ctx, email.Value())
	if err != nil {
		return nil, err
	}
	if !u.IsActive() {
		return nil, domain.ErrInactiveAccount
	}
	if !s.Hasher.Compare(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

// ChangePassword sets a new credential for an existing user.
func (s *UserService) ChangePassword(ctx context.Context, userID, newPassword string) (*entity.User, error) {
	u, err := s.findByRawID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cred, err := valueobject.NewCredential(newPassword)
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
	s.dispatch(ctx, event.New(event.PasswordChanged, u.ID.Value(), u.Email.Value()))
	return u, nil
}

// Disable deactivates an account from any state.
func (s *UserService) Disable(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.findByRawID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Disable()
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID.Value()).Info("user disabled")
	}
	s.dispatch(ctx, event.New(event.UserDisabled, u.ID.Value(), u.Email.Value()))
	s.index(ctx, u)
	return u, nil
}

// AssignRole adds a role; assigning one the user already holds changes nothing.
func (s *UserService) AssignRole(ctx context.Context, userID, role string) (*entity.User, error) {
	u, err := s.findByRawID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.AssignRole(role)
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RemoveRole drops a role from the user.
func (s *UserService) RemoveRole(ctx context.Context, userID, role string) (*entity.User, error) {
	u, err := s.findByRawID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.RemoveRole(role)
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	return s.findByRawID(ctx, userID)
}

func (s *UserService) GetUserByEmail(ctx context.Context, emailRaw string) (*entity.User, error) {
	email, err := valueobject.NewEmail(emailRaw)
	if err != nil {
		return nil, err
	}
	return s.Users.FindByEmail(ctx, email.Value())
}

func (s *UserService) ListUsers(ctx context.Context, filter repo.UserFilter) ([]*entity.User, error) {
	return s.Users.List(ctx, filter)
}

// SearchUsers queries the search index. Without an index it returns empty.
func (s *UserService) SearchUsers(ctx context.Context, query string, size int) ([]map[string]any, error) {
	if s.Index == nil {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Index.Search(ctx, query, size)
}

func (s *UserService) findByRawID(ctx context.Context, userID string) (*entity.User, error) {
	id, err := valueobject.ParseIdentifier(userID)
	if err != nil {
		return nil, err
	}
	return s.Users.FindByID(ctx, id)
}

func (s *UserService) dispatch(ctx context.Context, e event.Event) {
	if s.Events != nil {
		s.Events.Dispatch(ctx, e)
	}
}

func (s *UserService) index(ctx context.Context, u *entity.User) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexUser(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID.Value()).Warn("user index failed")
	}
}
