package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Taraansh/e-commerce/internal/domain/entity"
	"github.com/Taraansh/e-commerce/internal/platform/auth"
	"github.com/Taraansh/e-commerce/internal/platform/logger"
	"github.com/Taraansh/e-commerce/internal/repository"
	"github.com/Taraansh/e-commerce/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *mockUserRepo) List(ctx context.Context, userType entity.UserType) ([]entity.User, error) {
	args := m.Called(ctx, userType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}
func (m *mockUserRepo) MarkVerified(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *mockUserRepo) SetOtp(ctx context.Context, email, otp string, expiry time.Time) error {
	return m.Called(ctx, email, otp, expiry).Error(0)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	return m.Called(ctx, id, hashedPassword).Error(0)
}
func (m *mockUserRepo) UpdateName(ctx context.Context, id primitive.ObjectID, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func newAuthTestSetup(t *testing.T) (*auth.TokenManager, *mockUserRepo, func(http.Handler) http.Handler) {
	t.Helper()
	manager := auth.NewTokenManager("test-secret", time.Hour)
	repo := new(mockUserRepo)
	users := service.NewUserService(repo, nil, nil, manager, service.UserServiceConfig{}, logger.NewNop())
	return manager, repo, Authenticator(manager, users, logger.NewNop())
}

func TestAuthenticator(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("ValidTokenLoadsUserIntoContext", func(t *testing.T) {
		manager, repo, authn := newAuthTestSetup(t)

		token, err := manager.Sign(userID.Hex())
		require.NoError(t, err)
		repo.On("GetByID", mock.Anything, userID).
			Return(&entity.User{ID: userID, Type: entity.UserTypeAdmin}, nil).Once()

		var seen *entity.User
		handler := authn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = userFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, userID, seen.ID)
	})

	t.Run("MissingToken", func(t *testing.T) {
		_, _, authn := newAuthTestSetup(t)

		handler := authn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
	})

	t.Run("TamperedToken", func(t *testing.T) {
		_, _, authn := newAuthTestSetup(t)

		other := auth.NewTokenManager("other-secret", time.Hour)
		token, err := other.Sign(userID.Hex())
		require.NoError(t, err)

		handler := authn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("DeletedUser", func(t *testing.T) {
		manager, repo, authn := newAuthTestSetup(t)

		token, err := manager.Sign(userID.Hex())
		require.NoError(t, err)
		repo.On("GetByID", mock.Anything, userID).
			Return(nil, repository.ErrNotFound).Once()

		handler := authn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireTypes(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	adminOnly := RequireTypes(entity.UserTypeAdmin)(next)

	serveAs := func(user *entity.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if user != nil {
			req = req.WithContext(context.WithValue(req.Context(), userCtxKey, user))
		}
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req)
		return rec
	}

	t.Run("AllowsMatchingType", func(t *testing.T) {
		rec := serveAs(&entity.User{Type: entity.UserTypeAdmin})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("RejectsOtherType", func(t *testing.T) {
		rec := serveAs(&entity.User{Type: entity.UserTypeCustomer})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("RejectsMissingUser", func(t *testing.T) {
		rec := serveAs(nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
