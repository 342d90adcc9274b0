package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"user-service/internal/entities"
)

var (
	// ErrUserNotFound is returned when no row matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when a write violates the unique
	// constraint on email.
	ErrEmailTaken = errors.New("email already registered")
)

// uniqueViolation is the Postgres error code for a unique-constraint
// violation.
const uniqueViolation = "23505"

// UserRepository defines the interface for user database operations.
// It is the only component that touches the database; all queries use
// parameter binding.
type UserRepository interface {
	List(ctx context.Context) ([]*entities.User, error)
	GetByID(ctx context.Context, id int) (*entities.User, error)
	Create(ctx context.Context, name, email, role string) (*entities.User, error)
	CreateWithCredential(ctx context.Context, name, email, passwordHash, role string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, id int, name, email, role string) (*entities.User, error)
	Delete(ctx context.Context, id int) (*entities.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// List returns all users ordered by ascending id. An empty table
// yields an empty slice, not an error.
func (r *userRepository) List(ctx context.Context) ([]*entities.User, error) {
	query := `
		SELECT id, name, email, COALESCE(password, ''), role
		FROM users
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*entities.User{}
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

// GetByID finds a user by primary identifier
func (r *userRepository) GetByID(ctx context.Context, id int) (*entities.User, error) {
	query := `
		SELECT id, name, email, COALESCE(password, ''), role
		FROM users
		WHERE id = $1
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// Create inserts a new user without credentials
func (r *userRepository) Create(ctx context.Context, name, email, role string) (*entities.User, error) {
	query := `
		INSERT INTO users (name, email, role)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, role
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, name, email, role).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// CreateWithCredential inserts a new user with a pre-computed password
// hash. The caller hashes; this layer never sees plaintext.
func (r *userRepository) CreateWithCredential(ctx context.Context, name, email, passwordHash, role string) (*entities.User, error) {
	query := `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password, role
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, name, email, passwordHash, role).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
		SELECT id, name, email, COALESCE(password, ''), role
		FROM users
		WHERE email = $1
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// Update replaces the three mutable fields of a user
func (r *userRepository) Update(ctx context.Context, id int, name, email, role string) (*entities.User, error) {
	query := `
		UPDATE users
		SET name = $1, email = $2, role = $3
		WHERE id = $4
		RETURNING id, name, email, COALESCE(password, ''), role
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, name, email, role, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}

// Delete removes a user and returns the deleted row's prior values
func (r *userRepository) Delete(ctx context.Context, id int) (*entities.User, error) {
	query := `
		DELETE FROM users
		WHERE id = $1
		RETURNING id, name, email, COALESCE(password, ''), role
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
