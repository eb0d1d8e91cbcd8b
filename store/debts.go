package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

// DebtFilter narrows a debt query
type DebtFilter struct {
	OwnerID    string
	UnpaidOnly bool
	Direction  string
}

type DebtStore struct {
	db  *sql.DB
	hub *Hub
}

const debtColumns = `id, owner_id, direction, counterparty_name, total_amount, remaining_amount,
	due_date, notes, is_paid, created_at`

func scanDebt(scanner interface{ Scan(...interface{}) error }) (models.Debt, error) {
	var d models.Debt
	var due sql.NullTime
	err := scanner.Scan(
		&d.ID, &d.OwnerID, &d.Direction, &d.CounterpartyName, &d.TotalAmount, &d.RemainingAmount,
		&due, &d.Notes, &d.IsPaid, &d.CreatedAt,
	)
	d.DueDate = timePtr(due)
	return d, err
}

func (s *DebtStore) Get(ctx context.Context, id string) (*models.Debt, error) {
	d, err := scanDebt(s.db.QueryRowContext(ctx, "SELECT "+debtColumns+" FROM debts WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get debt %s: %w", id, err)
	}
	return &d, nil
}

// List returns matching debts, soonest due first; debts without a due date
// come last
func (s *DebtStore) List(ctx context.Context, f DebtFilter) ([]models.Debt, error) {
	query := "SELECT " + debtColumns + " FROM debts WHERE owner_id = ?"
	args := []interface{}{f.OwnerID}
	if f.UnpaidOnly {
		query += " AND is_paid = 0"
	}
	if f.Direction != "" {
		query += " AND direction = ?"
		args = append(args, f.Direction)
	}
	query += " ORDER BY due_date IS NULL, due_date, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	debts := []models.Debt{}
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (s *DebtStore) Watch(ctx context.Context, f DebtFilter) (<-chan []models.Debt, error) {
	return watch(ctx, s.hub, TableDebts, func(ctx context.Context) ([]models.Debt, error) {
		return s.List(ctx, f)
	})
}

func (s *DebtStore) Upsert(ctx context.Context, d models.Debt) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO debts (`+debtColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			direction = excluded.direction,
			counterparty_name = excluded.counterparty_name,
			total_amount = excluded.total_amount,
			remaining_amount = excluded.remaining_amount,
			due_date = excluded.due_date,
			notes = excluded.notes,
			is_paid = excluded.is_paid`,
		d.ID, d.OwnerID, d.Direction, d.CounterpartyName, d.TotalAmount, d.RemainingAmount,
		nullTime(d.DueDate), d.Notes, d.IsPaid, utc(d.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save debt %s: %w", d.ID, mapWriteError(err))
	}
	s.hub.Publish(TableDebts)
	return nil
}

func (s *DebtStore) Update(ctx context.Context, d models.Debt) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE debts SET direction = ?, counterparty_name = ?, total_amount = ?, remaining_amount = ?,
			due_date = ?, notes = ?, is_paid = ?
		WHERE id = ?`,
		d.Direction, d.CounterpartyName, d.TotalAmount, d.RemainingAmount,
		nullTime(d.DueDate), d.Notes, d.IsPaid, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update debt %s: %w", d.ID, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	s.hub.Publish(TableDebts)
	return nil
}

func (s *DebtStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM debts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete debt %s: %w", id, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	s.hub.Publish(TableDebts)
	return nil
}
