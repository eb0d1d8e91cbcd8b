package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

type SavingsGoalStore struct {
	db  *sql.DB
	hub *Hub
}

const savingsGoalColumns = `id, owner_id, name, target_amount, current_amount, deadline, icon, color,
	created_at`

func scanSavingsGoal(scanner interface{ Scan(...interface{}) error }) (models.SavingsGoal, error) {
	var g models.SavingsGoal
	var deadline sql.NullTime
	err := scanner.Scan(
		&g.ID, &g.OwnerID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &deadline, &g.Icon, &g.Color,
		&g.CreatedAt,
	)
	g.Deadline = timePtr(deadline)
	return g, err
}

func (s *SavingsGoalStore) Get(ctx context.Context, id string) (*models.SavingsGoal, error) {
	g, err := scanSavingsGoal(s.db.QueryRowContext(ctx, "SELECT "+savingsGoalColumns+" FROM savings_goals WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get savings goal %s: %w", id, err)
	}
	return &g, nil
}

// List returns the owner's goals, newest first. Amounts are stored as text,
// so the incomplete filter is applied after decoding.
func (s *SavingsGoalStore) List(ctx context.Context, ownerID string, incompleteOnly bool) ([]models.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+savingsGoalColumns+" FROM savings_goals WHERE owner_id = ? ORDER BY created_at DESC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	goals := []models.SavingsGoal{}
	for rows.Next() {
		g, err := scanSavingsGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		if incompleteOnly && g.Completed() {
			continue
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *SavingsGoalStore) Watch(ctx context.Context, ownerID string, incompleteOnly bool) (<-chan []models.SavingsGoal, error) {
	return watch(ctx, s.hub, TableSavingsGoals, func(ctx context.Context) ([]models.SavingsGoal, error) {
		return s.List(ctx, ownerID, incompleteOnly)
	})
}

func (s *SavingsGoalStore) Upsert(ctx context.Context, g models.SavingsGoal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO savings_goals (`+savingsGoalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			target_amount = excluded.target_amount,
			current_amount = excluded.current_amount,
			deadline = excluded.deadline,
			icon = excluded.icon,
			color = excluded.color`,
		g.ID, g.OwnerID, g.Name, g.TargetAmount, g.CurrentAmount, nullTime(g.Deadline), g.Icon, g.Color,
		utc(g.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save savings goal %s: %w", g.ID, mapWriteError(err))
	}
	s.hub.Publish(TableSavingsGoals)
	return nil
}

func (s *SavingsGoalStore) Update(ctx context.Context, g models.SavingsGoal) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE savings_goals SET name = ?, target_amount = ?, current_amount = ?, deadline = ?,
			icon = ?, color = ?
		WHERE id = ?`,
		g.Name, g.TargetAmount, g.CurrentAmount, nullTime(g.Deadline), g.Icon, g.Color, g.ID,
	)
	if err != nil {
		return fmt.Errorf("update savings goal %s: %w", g.ID, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	s.hub.Publish(TableSavingsGoals)
	return nil
}

func (s *SavingsGoalStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM savings_goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete savings goal %s: %w", id, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	s.hub.Publish(TableSavingsGoals)
	return nil
}
