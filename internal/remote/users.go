package remote

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinjinsansan/kanjou/internal/schema"
)

// FindUserByUsername resolves a users row from the local identity marker.
// Returns sql.ErrNoRows if no row matches.
func (s *Store) FindUserByUsername(ctx context.Context, lineUsername string) (*schema.User, error) {
	row := s.conn.QueryRowContext(ctx,
		"SELECT id, line_username, created_at FROM users WHERE line_username = ? LIMIT 1",
		lineUsername)

	var user schema.User
	if err := row.Scan(&user.ID, &user.LineUsername, &user.CreatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new users row for the username.
func (s *Store) CreateUser(ctx context.Context, lineUsername string) (*schema.User, error) {
	user := &schema.User{
		ID:           uuid.NewString(),
		LineUsername: lineUsername,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}

	_, err := s.conn.ExecContext(ctx,
		"INSERT INTO users (id, line_username, created_at) VALUES (?, ?, ?)",
		user.ID, user.LineUsername, user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", lineUsername, err)
	}

	return user, nil
}

// EnsureUser returns the existing users row for the username, creating
// one when absent.
func (s *Store) EnsureUser(ctx context.Context, lineUsername string) (*schema.User, error) {
	user, err := s.FindUserByUsername(ctx, lineUsername)
	if err == nil {
		return user, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to look up user %s: %w", lineUsername, err)
	}
	return s.CreateUser(ctx, lineUsername)
}
