package storage

import (
	"context"
	"fmt"

	"wealth/internal/core"
)

// UpsertUser records a verified identity, refreshing email and name when it is already known.
func (r *SQLiteRepository) UpsertUser(ctx context.Context, u core.User) (core.User, error) {
	now := formatTime(r.timestamp())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			name = COALESCE(excluded.name, users.name),
			updated_at = excluded.updated_at`,
		u.ID, u.Email, u.Name, now, now)
	if err != nil {
		return core.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return r.GetUser(ctx, u.ID)
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (core.User, error) {
	u, err := queryOne(ctx, r.db, func(row rowScanner) (core.User, error) {
		var u core.User
		err := row.Scan(&u.ID, &u.Email, &u.Name, timeCol{&u.CreatedAt}, timeCol{&u.UpdatedAt})
		return u, err
	}, `SELECT id, email, name, created_at, updated_at FROM users WHERE id = ?`, id)
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
