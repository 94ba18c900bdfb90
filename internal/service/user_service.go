package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"userapi/internal/auth"
	"userapi/internal/cache"
	apperrors "userapi/internal/errors"
	"userapi/internal/model"
	"userapi/internal/repository"
)

// DefaultUserCacheTTL bounds how long a cached user stays fresh.
const DefaultUserCacheTTL = 5 * time.Minute

// UserService exposes domain operations.
type UserService interface {
	CreateUser(ctx context.Context, name, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache cache.Store
	ttl   time.Duration
}

// NewUserService builds a UserService with repository and cache. A nil cache
// disables caching.
func NewUserService(repo repository.UserRepository, store cache.Store, ttl time.Duration) UserService {
	if ttl <= 0 {
		ttl = DefaultUserCacheTTL
	}
	return &userService{repo: repo, cache: store, ttl: ttl}
}

func (s *userService) cacheKey(id string) string {
	return "user:" + id
}

// CreateUser rejects a taken email before writing, then stores the user with
// a hashed password.
func (s *userService) CreateUser(ctx context.Context, name, email, password string) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, &apperrors.ValidationError{Fields: []apperrors.FieldError{
				{Field: "password", Message: "A senha deve ter no máximo 72 bytes"},
			}}
		}
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetUser reads through the cache. Cached copies never carry the password
// hash.
func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	var cached model.User
	if cache.GetJSON(ctx, s.cache, s.cacheKey(id), &cached) && cached.ID == id {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cache.SetJSON(ctx, s.cache, s.cacheKey(id), user, s.ttl)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}
