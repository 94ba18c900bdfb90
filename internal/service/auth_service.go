package service

import (
	"context"
	"errors"
	"fmt"

	"userapi/internal/auth"
	apperrors "userapi/internal/errors"
	"userapi/internal/logging"
	"userapi/internal/model"
	"userapi/internal/repository"
)

// AuthResult is a freshly issued token together with its subject.
type AuthResult struct {
	Token string
	User  *model.User
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	repo       repository.UserRepository
	users      UserService
	jwtService *auth.JWTService
	logger     logging.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(repo repository.UserRepository, users UserService, jwtService *auth.JWTService, logger logging.Logger) AuthService {
	return &authService{
		repo:       repo,
		users:      users,
		jwtService: jwtService,
		logger:     logger.With("component", "auth"),
	}
}

// Register creates the account and signs a token for it.
func (s *authService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	user, err := s.users.CreateUser(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return &AuthResult{Token: token, User: user}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password yield the same error.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			auth.BurnPasswordCheck(password)
			s.logger.Debug(ctx, "login rejected")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Debug(ctx, "login rejected", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Me resolves the subject of a verified token. A subject whose account no
// longer exists gets apperrors.ErrUserNotFound.
func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetUser(ctx, userID)
}
