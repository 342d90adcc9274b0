package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"user-service/internal/entities"
	"user-service/internal/hasher"
	"user-service/internal/models"
	"user-service/internal/repository"
)

// ErrInvalidCredentials covers both unknown email and password
// mismatch on login, so the response cannot reveal which check failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService defines the interface for registration and login
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*entities.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*entities.User, error)
}

type authService struct {
	repo   repository.UserRepository
	hasher hasher.PasswordHasher
	logger zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(repo repository.UserRepository, passwordHasher hasher.PasswordHasher, logger zerolog.Logger) AuthService {
	return &authService{
		repo:   repo,
		hasher: passwordHasher,
		logger: logger,
	}
}

// Register creates a new account with a hashed credential. A missing
// role defaults to "customer".
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*entities.User, error) {
	role := req.Role
	if role == "" {
		role = entities.DefaultRole
	}

	// Duplicate pre-check; the unique constraint still backs this up
	// against concurrent registrations.
	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, repository.ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Error checking existing user")
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, err
	}

	user, err := s.repo.CreateWithCredential(ctx, req.Name, req.Email, passwordHash, role)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Error registering user")
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User registered")
	return user, nil
}

// Login verifies the credential against the stored hash.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*entities.User, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error querying user")
		return nil, err
	}

	if !s.hasher.Check(req.Password, user.PasswordHash) {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, ErrInvalidCredentials
	}

	s.logger.Info().Int("user_id", user.ID).Msg("User logged in")
	return user, nil
}
