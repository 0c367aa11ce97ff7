package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"symptra-health/internal/config"
	"symptra-health/internal/domain"
	"symptra-health/internal/mocks"
	"symptra-health/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	input := domain.RegisterInput{Name: "Ana", Email: " Ana@Example.com ", Password: "secret123"}

	t.Run("Success", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := auth.NewService(users, nil, testConfig(), zap.NewNop())

		users.On("ExistsByEmail", ctx, "ana@example.com").Return(false, nil).Once()
		users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "ana@example.com" && u.Role == domain.RoleUser &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
		})).Return(nil).Once()

		user, token, err := svc.Register(ctx, input)

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "Ana", user.Name)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		users.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := auth.NewService(users, nil, testConfig(), zap.NewNop())
		users.On("ExistsByEmail", ctx, "ana@example.com").Return(true, nil).Once()

		_, _, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrEmailExists)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Validation", func(t *testing.T) {
		svc := auth.NewService(new(mocks.UserRepository), nil, testConfig(), zap.NewNop())

		_, _, err := svc.Register(ctx, domain.RegisterInput{Email: "ana@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, auth.ErrMissingFields)

		_, _, err = svc.Register(ctx, domain.RegisterInput{Name: "Ana", Email: "not-an-email", Password: "secret123"})
		assert.ErrorIs(t, err, auth.ErrInvalidEmail)

		_, _, err = svc.Register(ctx, domain.RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "123"})
		assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash), Role: domain.RoleAdmin}

	t.Run("Success", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := auth.NewService(users, nil, testConfig(), zap.NewNop())
		users.On("GetByEmail", ctx, "ana@example.com").Return(stored, nil).Once()

		user, token, err := svc.Login(ctx, domain.LoginInput{Email: "ANA@example.com", Password: "secret123"})

		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := auth.NewService(users, nil, testConfig(), zap.NewNop())
		users.On("GetByEmail", ctx, "ana@example.com").Return(stored, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ana@example.com", Password: "guess"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))
	})

	t.Run("Unknown email", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := auth.NewService(users, nil, testConfig(), zap.NewNop())
		users.On("GetByEmail", ctx, "who@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "who@example.com", Password: "secret123"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := auth.NewService(new(mocks.UserRepository), nil, testConfig(), zap.NewNop())

	sign := func(secret string, method jwt.SigningMethod, expiresAt time.Time) string {
		claims := &auth.Claims{
			UserID: uuid.New(),
			Role:   domain.RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
		}
		token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}

	t.Run("wrong secret", func(t *testing.T) {
		_, err := svc.ValidateToken(sign("other-secret", jwt.SigningMethodHS256, time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := svc.ValidateToken(sign("test-secret", jwt.SigningMethodHS256, time.Now().Add(-time.Minute)))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		_, err := svc.ValidateToken(sign("test-secret", jwt.SigningMethodHS512, time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
