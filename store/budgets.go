package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

type BudgetStore struct {
	db  *sql.DB
	hub *Hub
}

const budgetColumns = "id, owner_id, category_id, amount, month, year, spent"

func scanBudget(scanner interface{ Scan(...interface{}) error }) (models.Budget, error) {
	var b models.Budget
	err := scanner.Scan(&b.ID, &b.OwnerID, &b.CategoryID, &b.Amount, &b.Month, &b.Year, &b.Spent)
	return b, err
}

func (s *BudgetStore) queryOne(ctx context.Context, query string, args ...interface{}) (*models.Budget, error) {
	b, err := scanBudget(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BudgetStore) Get(ctx context.Context, id string) (*models.Budget, error) {
	b, err := s.queryOne(ctx, "SELECT "+budgetColumns+" FROM budgets WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get budget %s: %w", id, err)
	}
	return b, nil
}

// GetForPeriod looks a budget up by its natural key
func (s *BudgetStore) GetForPeriod(ctx context.Context, ownerID, categoryID string, month, year int) (*models.Budget, error) {
	b, err := s.queryOne(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE owner_id = ? AND category_id = ? AND month = ? AND year = ?",
		ownerID, categoryID, month, year,
	)
	if err != nil {
		return nil, fmt.Errorf("get budget for %d/%d: %w", month, year, err)
	}
	return b, nil
}

// List returns the owner's budgets. Zero month or year match every period.
func (s *BudgetStore) List(ctx context.Context, ownerID string, month, year int) ([]models.Budget, error) {
	query := "SELECT " + budgetColumns + " FROM budgets WHERE owner_id = ?"
	args := []interface{}{ownerID}
	if month != 0 {
		query += " AND month = ?"
		args = append(args, month)
	}
	if year != 0 {
		query += " AND year = ?"
		args = append(args, year)
	}
	query += " ORDER BY year DESC, month DESC, category_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (s *BudgetStore) Watch(ctx context.Context, ownerID string, month, year int) (<-chan []models.Budget, error) {
	return watch(ctx, s.hub, TableBudgets, func(ctx context.Context) ([]models.Budget, error) {
		return s.List(ctx, ownerID, month, year)
	})
}

// Upsert writes b keyed on its (owner, category, month, year). When a budget
// already exists for that period it is updated in place and keeps its id.
// The stored row is returned.
func (s *BudgetStore) Upsert(ctx context.Context, b models.Budget) (models.Budget, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (`+budgetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, category_id, month, year) DO UPDATE SET
			amount = excluded.amount,
			spent = excluded.spent`,
		b.ID, b.OwnerID, b.CategoryID, b.Amount, b.Month, b.Year, b.Spent,
	)
	if err != nil {
		return b, fmt.Errorf("save budget: %w", mapWriteError(err))
	}
	s.hub.Publish(TableBudgets)

	stored, err := s.GetForPeriod(ctx, b.OwnerID, b.CategoryID, b.Month, b.Year)
	if err != nil {
		return b, err
	}
	if stored == nil {
		return b, ErrNotFound
	}
	return *stored, nil
}

// Update overwrites the budget with b.ID. Moving it onto a period that
// already has a budget returns ErrConflict.
func (s *BudgetStore) Update(ctx context.Context, b models.Budget) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE budgets SET category_id = ?, amount = ?, month = ?, year = ?, spent = ? WHERE id = ?",
		b.CategoryID, b.Amount, b.Month, b.Year, b.Spent, b.ID,
	)
	if err != nil {
		return fmt.Errorf("update budget %s: %w", b.ID, mapWriteError(err))
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	s.hub.Publish(TableBudgets)
	return nil
}

func (s *BudgetStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete budget %s: %w", id, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	s.hub.Publish(TableBudgets)
	return nil
}
