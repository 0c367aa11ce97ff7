package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"symptra-health/internal/config"
	"symptra-health/internal/domain"
	"symptra-health/internal/repository"
	"symptra-health/internal/service/email"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = domain.NewUnauthenticatedError("Invalid credentials")
	ErrInvalidToken       = domain.NewUnauthenticatedError("Not authorized to access this route (token failed)")
	ErrEmailExists        = domain.NewValidationError("User already exists with this email")
	ErrMissingFields      = domain.NewValidationError("Name, email and password are required")
	ErrInvalidEmail       = domain.NewValidationError("Please provide a valid email")
	ErrPasswordTooShort   = domain.NewValidationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
)

type Service interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, string, error)
	ValidateToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	TokenTTL() time.Duration
}

type Claims struct {
	UserID uuid.UUID       `json:"id"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	userRepo     repository.UserRepository
	emailService email.Service
	cfg          *config.Config
	logger       *zap.Logger
}

func NewService(userRepo repository.UserRepository, emailService email.Service, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		userRepo:     userRepo,
		emailService: emailService,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, string, error) {
	name := strings.TrimSpace(input.Name)
	address := normalizeEmail(input.Email)
	if name == "" || address == "" || input.Password == "" {
		return nil, "", ErrMissingFields
	}
	if _, err := mail.ParseAddress(address); err != nil {
		return nil, "", ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, address)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        address,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	if s.emailService != nil {
		go func() {
			if err := s.emailService.SendWelcomeEmail(context.Background(), user.Email, user.Name); err != nil {
				s.logger.Warn("failed to send welcome email",
					zap.String("user_id", user.ID.String()), zap.Error(err))
			}
		}()
	}

	return user, token, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) TokenTTL() time.Duration {
	return s.cfg.JWTExpiry
}

func (s *service) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func normalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
