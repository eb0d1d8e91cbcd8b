package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

type CategoryStore struct {
	db  *sql.DB
	hub *Hub
}

const categoryColumns = "id, name, icon, color, is_default, owner_id, kind"

func scanCategory(scanner interface{ Scan(...interface{}) error }) (models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.IsDefault, &c.OwnerID, &c.Kind)
	return c, err
}

func (s *CategoryStore) Get(ctx context.Context, id string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = ?", id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category %s: %w", id, err)
	}
	return &c, nil
}

// List returns the owner's own categories plus every default category.
// An empty kind matches both kinds.
func (s *CategoryStore) List(ctx context.Context, ownerID, kind string) ([]models.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories WHERE (owner_id = ? OR is_default = 1)"
	args := []interface{}{ownerID}
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY is_default DESC, kind, name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *CategoryStore) Watch(ctx context.Context, ownerID, kind string) (<-chan []models.Category, error) {
	return watch(ctx, s.hub, TableCategories, func(ctx context.Context) ([]models.Category, error) {
		return s.List(ctx, ownerID, kind)
	})
}

func (s *CategoryStore) Upsert(ctx context.Context, c models.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (`+categoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			color = excluded.color,
			kind = excluded.kind`,
		c.ID, c.Name, c.Icon, c.Color, c.IsDefault, c.OwnerID, c.Kind,
	)
	if err != nil {
		return fmt.Errorf("save category %s: %w", c.ID, mapWriteError(err))
	}
	s.hub.Publish(TableCategories)
	return nil
}

func (s *CategoryStore) Update(ctx context.Context, c models.Category) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, icon = ?, color = ?, kind = ? WHERE id = ?",
		c.Name, c.Icon, c.Color, c.Kind, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update category %s: %w", c.ID, mapWriteError(err))
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	s.hub.Publish(TableCategories)
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	s.hub.Publish(TableCategories)
	return nil
}

// SeedDefaults inserts defaults when the owner can see no category at all.
// The check and the inserts share one SQL transaction, and the unique index
// on default (name, kind) turns a racing duplicate into a no-op. It returns
// the rows that were actually inserted.
func (s *CategoryStore) SeedDefaults(ctx context.Context, ownerID string, defaults []models.Category) ([]models.Category, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	var visible int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories WHERE owner_id = ? OR is_default = 1", ownerID,
	).Scan(&visible)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if visible > 0 {
		return nil, nil
	}

	inserted := []models.Category{}
	for _, c := range defaults {
		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO categories (`+categoryColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Icon, c.Color, true, ownerID, c.Kind,
		)
		if err != nil {
			return nil, fmt.Errorf("insert default category %s: %w", c.Name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			c.IsDefault = true
			c.OwnerID = ownerID
			inserted = append(inserted, c)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit seed: %w", err)
	}
	if len(inserted) > 0 {
		s.hub.Publish(TableCategories)
	}
	return inserted, nil
}
