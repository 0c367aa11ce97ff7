package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"symptra-health/internal/config"
	"symptra-health/internal/domain"
	"symptra-health/internal/middleware"
	"symptra-health/internal/mocks"
	"symptra-health/internal/service/auth"
	"symptra-health/pkg/response"
)

func newAuthService(t *testing.T, userRepo *mocks.UserRepository) auth.Service {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	return auth.NewService(userRepo, nil, cfg, zap.NewNop())
}

func issueToken(t *testing.T, svc auth.Service, userRepo *mocks.UserRepository) (*domain.User, string) {
	t.Helper()
	userRepo.On("ExistsByEmail", mock.Anything, "amina@example.com").Return(false, nil).Once()
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, token, err := svc.Register(t.Context(), domain.RegisterInput{
		Name:     "Amina",
		Email:    "amina@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return user, token
}

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(zap.NewNop(), false)})
	handlers = append(handlers, func(c *fiber.Ctx) error {
		user := middleware.GetCurrentUser(c)
		if user == nil {
			return c.JSON(response.Success(nil))
		}
		return c.JSON(response.Success(user.ID))
	})
	app.Get("/", handlers...)
	return app
}

func decode(t *testing.T, body io.Reader) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func TestAuthRequired(t *testing.T) {
	t.Run("missing credential", func(t *testing.T) {
		svc := newAuthService(t, new(mocks.UserRepository))
		app := newApp(middleware.AuthRequired(svc, "token"))

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		env := decode(t, resp.Body)
		assert.False(t, env.Success)
		assert.Equal(t, middleware.ErrNoToken.Message, env.Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := newAuthService(t, new(mocks.UserRepository))
		app := newApp(middleware.AuthRequired(svc, "token"))

		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-jwt")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("cookie credential", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(t, userRepo)
		user, token := issueToken(t, svc, userRepo)
		userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		app := newApp(middleware.AuthRequired(svc, "token"))
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderCookie, "token="+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, user.ID.String(), decode(t, resp.Body).Data)
	})

	t.Run("bearer credential", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(t, userRepo)
		user, token := issueToken(t, svc, userRepo)
		userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		app := newApp(middleware.AuthRequired(svc, "token"))
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("deleted user", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(t, userRepo)
		user, token := issueToken(t, svc, userRepo)
		userRepo.On("GetByID", mock.Anything, user.ID).Return(nil, nil)

		app := newApp(middleware.AuthRequired(svc, "token"))
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, middleware.ErrUserNotFound.Message, decode(t, resp.Body).Message)
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("anonymous passes through", func(t *testing.T) {
		svc := newAuthService(t, new(mocks.UserRepository))
		app := newApp(middleware.OptionalAuth(svc, "token"))

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Nil(t, decode(t, resp.Body).Data)
	})

	t.Run("invalid credential is ignored", func(t *testing.T) {
		svc := newAuthService(t, new(mocks.UserRepository))
		app := newApp(middleware.OptionalAuth(svc, "token"))

		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderCookie, "token=garbage")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("valid credential attaches user", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(t, userRepo)
		user, token := issueToken(t, svc, userRepo)
		userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		app := newApp(middleware.OptionalAuth(svc, "token"))
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), decode(t, resp.Body).Data)
	})
}

func TestRequireRole(t *testing.T) {
	withUser := func(user *domain.User) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if user != nil {
				c.Locals(middleware.UserContextKey, user)
				c.Locals(middleware.UserIDContextKey, user.ID)
			}
			return c.Next()
		}
	}

	tests := []struct {
		name     string
		user     *domain.User
		expected int
	}{
		{"no user", nil, fiber.StatusUnauthorized},
		{"regular user", &domain.User{ID: uuid.New(), Role: domain.RoleUser}, fiber.StatusForbidden},
		{"admin", &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(withUser(tt.user), middleware.RequireRole(domain.RoleAdmin))

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.StatusCode)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
		message  string
	}{
		{"validation", domain.ErrInvalidReviewStatus, fiber.StatusBadRequest, domain.ErrInvalidReviewStatus.Message},
		{"unauthenticated", domain.ErrNotAuthenticated, fiber.StatusUnauthorized, domain.ErrNotAuthenticated.Message},
		{"forbidden", domain.ErrAdminRequired, fiber.StatusForbidden, domain.ErrAdminRequired.Message},
		{"not found", domain.ErrRequestNotFound, fiber.StatusNotFound, domain.ErrRequestNotFound.Message},
		{"invalid state", domain.ErrRequestAlreadyProcessed, fiber.StatusBadRequest, domain.ErrRequestAlreadyProcessed.Message},
		{"internal app error", domain.NewInternalError("db down", errors.New("boom")), fiber.StatusInternalServerError, "Server Error"},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError, "Server Error"},
		{"fiber error", fiber.NewError(fiber.StatusNotFound, "Cannot GET /nope"), fiber.StatusNotFound, "Cannot GET /nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(zap.NewNop(), false)})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.StatusCode)

			env := decode(t, resp.Body)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
			assert.Empty(t, env.Error)
		})
	}

	t.Run("detail exposed in development", func(t *testing.T) {
		app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(zap.NewNop(), true)})
		app.Get("/", func(c *fiber.Ctx) error { return errors.New("connection refused") })

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, "connection refused", decode(t, resp.Body).Error)
	})
}

func TestGetRequestMeta(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(middleware.GetRequestMeta(c))
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderUserAgent, "curl/8.0")
	req.Header.Set(fiber.HeaderXForwardedFor, "203.0.113.9, 10.0.0.1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var meta domain.RequestMeta
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta))
	assert.Equal(t, "203.0.113.9", meta.IPAddress)
	assert.Equal(t, "curl/8.0", meta.UserAgent)
}
