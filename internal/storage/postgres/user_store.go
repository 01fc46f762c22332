package postgres

import (
	"context"
	"fmt"
	"time"

	"tradinghub/internal/domain"
	"tradinghub/internal/storage"
)

// UserStore implements storage.UserStore using PostgreSQL.
type UserStore struct {
	pool *Pool
}

// NewUserStore creates a new UserStore.
func NewUserStore(pool *Pool) *UserStore {
	return &UserStore{pool: pool}
}

// Compile-time interface check.
var _ storage.UserStore = (*UserStore)(nil)

// Insert adds a new user. Returns ErrDuplicateKey if email exists.
func (s *UserStore) Insert(ctx context.Context, u *domain.User) error {
	if u == nil || u.Email == "" {
		return storage.ErrInvalidInput
	}

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	query := `
		INSERT INTO users (
			email, name, password, api_key, api_secret, assigned_strategies, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.pool.Exec(ctx, query,
		u.Email,
		u.Name,
		u.Password,
		u.APIKey,
		u.APISecret,
		u.AssignedStrategies,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user. Returns ErrNotFound if not exists.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT email, name, password, api_key, api_secret, assigned_strategies, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	row := s.pool.QueryRow(ctx, query, email)
	var u domain.User
	err := row.Scan(
		&u.Email,
		&u.Name,
		&u.Password,
		&u.APIKey,
		&u.APISecret,
		&u.AssignedStrategies,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// List retrieves all users ordered by creation time DESC.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT email, name, password, api_key, api_secret, assigned_strategies, created_at, updated_at
		FROM users
		ORDER BY created_at DESC, email ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		err := rows.Scan(
			&u.Email,
			&u.Name,
			&u.Password,
			&u.APIKey,
			&u.APISecret,
			&u.AssignedStrategies,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

// Delete removes a user. Returns ErrNotFound if not exists.
func (s *UserStore) Delete(ctx context.Context, email string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
