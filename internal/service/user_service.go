package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"user-service/internal/cache"
	"user-service/internal/entities"
	"user-service/internal/models"
	"user-service/internal/repository"
)

// userCacheTTL bounds how stale a cached profile can get.
const userCacheTTL = 5 * time.Minute

// UserService defines the interface for the plain CRUD business logic
type UserService interface {
	ListUsers(ctx context.Context) ([]*entities.User, error)
	GetUser(ctx context.Context, id int) (*entities.User, error)
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*entities.User, error)
	UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*entities.User, error)
	DeleteUser(ctx context.Context, id int) (*entities.User, error)
}

type userService struct {
	repo   repository.UserRepository
	cache  cache.Cache
	logger zerolog.Logger
}

// NewUserService creates a new user service. cacheClient may be nil;
// lookups then go straight to the store.
func NewUserService(repo repository.UserRepository, cacheClient cache.Cache, logger zerolog.Logger) UserService {
	return &userService{
		repo:   repo,
		cache:  cacheClient,
		logger: logger,
	}
}

func userCacheKey(id int) string {
	return fmt.Sprintf("user:id:%d", id)
}

func (s *userService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing users")
		return nil, err
	}
	return users, nil
}

// GetUser reads through the cache when one is configured.
func (s *userService) GetUser(ctx context.Context, id int) (*entities.User, error) {
	if s.cache != nil {
		var cached entities.User
		if err := s.cache.GetJSON(ctx, userCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, userCacheKey(id), user, userCacheTTL); err != nil {
			s.logger.Warn().Err(err).Int("user_id", id).Msg("Failed to cache user")
		}
	}

	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*entities.User, error) {
	user, err := s.repo.Create(ctx, req.Name, req.Email, req.Role)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Error creating user")
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User created")
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*entities.User, error) {
	user, err := s.repo.Update(ctx, id, req.Name, req.Email, req.Role)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info().Int("user_id", user.ID).Msg("User updated")
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int) (*entities.User, error) {
	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info().Int("user_id", user.ID).Msg("User deleted")
	return user, nil
}

func (s *userService) invalidate(ctx context.Context, id int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, userCacheKey(id)); err != nil {
		s.logger.Warn().Err(err).Int("user_id", id).Msg("Failed to invalidate cached user")
	}
}
