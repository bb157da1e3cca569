package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/identity-service/internal/application"
	"github.com/oksasatya/identity-service/internal/domain"
	"github.com/oksasatya/identity-service/internal/domain/entity"
	repo "github.com/oksasatya/identity-service/internal/domain/repository"
	"github.com/oksasatya/identity-service/internal/domain/valueobject"
	"github.com/oksasatya/identity-service/pkg/validation"
)

type stubUserRepo struct {
	inserted *entity.User
}

func (m *stubUserRepo) FindByID(ctx context.Context, id valueobject.Identifier) (*entity.User, error) {
	return nil, domain.ErrUserNotFound
}

func (m *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, domain.ErrUserNotFound
}

func (m *stubUserRepo) Insert(ctx context.Context, u *entity.User) error {
	m.inserted = u
	return nil
}

func (m *stubUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }

func (m *stubUserRepo) Delete(ctx context.Context, id valueobject.Identifier) error { return nil }

func (m *stubUserRepo) List(ctx context.Context, filter repo.UserFilter) ([]*entity.User, error) {
	return nil, nil
}

type stubHasher struct{}

func (stubHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (stubHasher) Compare(plain, digest string) bool { return digest == "hashed:"+plain }

func registerRouter(users *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	h := &AuthHandler{Users: application.NewUserService(users, stubHasher{}, nil, nil, nil)}
	r := gin.New()
	r.POST("/api/v1/auth/register", h.Register)
	return r
}

func TestRegisterIgnoresRolesInPayload(t *testing.T) {
	users := &stubUserRepo{}
	r := registerRouter(users)

	// a caller trying to smuggle a role through the public endpoint
	body := `{"email":"mallory@example.com","password":"Sup3r!secret","roles":["admin"]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, users.inserted)
	assert.Empty(t, users.inserted.Roles)
	assert.False(t, users.inserted.HasRole("admin"))
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	users := &stubUserRepo{}
	r := registerRouter(users)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"email":"not-an-email","password":"Sup3r!secret"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, users.inserted)
}
