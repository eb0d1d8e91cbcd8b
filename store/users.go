package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

type UserStore struct {
	db  *sql.DB
	hub *Hub
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, display_name, photo_ref, currency, created_at FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Email, &u.DisplayName, &u.PhotoRef, &u.Currency, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

// Upsert refreshes the cached profile. created_at is kept from the first write.
func (s *UserStore) Upsert(ctx context.Context, u models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, photo_ref, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			display_name = excluded.display_name,
			photo_ref = excluded.photo_ref,
			currency = excluded.currency`,
		u.ID, u.Email, u.DisplayName, u.PhotoRef, u.Currency, utc(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save user %s: %w", u.ID, err)
	}
	s.hub.Publish(TableUsers)
	return nil
}

// IDs lists every cached user id
func (s *UserStore) IDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
