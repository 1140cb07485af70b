package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Unknownlegend09/ff-tournament/internal/auth"
	"github.com/Unknownlegend09/ff-tournament/internal/models"
	"github.com/Unknownlegend09/ff-tournament/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService owns account creation and credential checks. It reads and
// writes the users collection only.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	logger *zap.SugaredLogger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates a user with role "user" and returns a signed token.
// The role is fixed here; admins are seeded out-of-band (cmd/create-admin).
func (s *AuthService) Register(ctx context.Context, username, password, mobileNumber string) (string, *models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		MobileNumber: mobileNumber,
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return "", nil, ErrUsernameTaken
		}
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, err
	}
	s.logger.Infow("user registered", "username", username, "user_id", user.ID)
	return token, user, nil
}

// Login verifies credentials and returns a fresh token. Unknown username
// and wrong password report the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
