package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

type RecurringStore struct {
	db  *sql.DB
	hub *Hub
}

const recurringColumns = `id, owner_id, kind, amount, category_id, notes, payment_method, period,
	next_due_at, is_active`

func scanRecurring(scanner interface{ Scan(...interface{}) error }) (models.RecurringTransaction, error) {
	var r models.RecurringTransaction
	var period string
	err := scanner.Scan(
		&r.ID, &r.OwnerID, &r.Kind, &r.Amount, &r.CategoryID, &r.Notes, &r.PaymentMethod, &period,
		&r.NextDueAt, &r.IsActive,
	)
	r.Period = models.Period(period)
	return r, err
}

func (s *RecurringStore) Get(ctx context.Context, id string) (*models.RecurringTransaction, error) {
	r, err := scanRecurring(s.db.QueryRowContext(ctx, "SELECT "+recurringColumns+" FROM recurring_transactions WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recurring transaction %s: %w", id, err)
	}
	return &r, nil
}

func (s *RecurringStore) query(ctx context.Context, query string, args ...interface{}) ([]models.RecurringTransaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recurring transactions: %w", err)
	}
	defer rows.Close()

	list := []models.RecurringTransaction{}
	for rows.Next() {
		r, err := scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurring transaction: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// List returns the owner's definitions ordered by next due date
func (s *RecurringStore) List(ctx context.Context, ownerID string, activeOnly bool) ([]models.RecurringTransaction, error) {
	query := "SELECT " + recurringColumns + " FROM recurring_transactions WHERE owner_id = ?"
	if activeOnly {
		query += " AND is_active = 1"
	}
	return s.query(ctx, query+" ORDER BY next_due_at", ownerID)
}

// Due returns the owner's active definitions whose next due date is at or
// before now
func (s *RecurringStore) Due(ctx context.Context, ownerID string, now time.Time) ([]models.RecurringTransaction, error) {
	return s.query(ctx,
		"SELECT "+recurringColumns+" FROM recurring_transactions WHERE owner_id = ? AND is_active = 1 AND next_due_at <= ? ORDER BY next_due_at",
		ownerID, utc(now),
	)
}

func (s *RecurringStore) Watch(ctx context.Context, ownerID string, activeOnly bool) (<-chan []models.RecurringTransaction, error) {
	return watch(ctx, s.hub, TableRecurring, func(ctx context.Context) ([]models.RecurringTransaction, error) {
		return s.List(ctx, ownerID, activeOnly)
	})
}

// Owners returns every owner that has at least one definition
func (s *RecurringStore) Owners(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT owner_id FROM recurring_transactions")
	if err != nil {
		return nil, fmt.Errorf("list recurring owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		owners = append(owners, id)
	}
	return owners, rows.Err()
}

func (s *RecurringStore) Upsert(ctx context.Context, r models.RecurringTransaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recurring_transactions (`+recurringColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			amount = excluded.amount,
			category_id = excluded.category_id,
			notes = excluded.notes,
			payment_method = excluded.payment_method,
			period = excluded.period,
			next_due_at = excluded.next_due_at,
			is_active = excluded.is_active`,
		r.ID, r.OwnerID, r.Kind, r.Amount, r.CategoryID, r.Notes, r.PaymentMethod, string(r.Period),
		utc(r.NextDueAt), r.IsActive,
	)
	if err != nil {
		return fmt.Errorf("save recurring transaction %s: %w", r.ID, mapWriteError(err))
	}
	s.hub.Publish(TableRecurring)
	return nil
}

// Update rewrites r only while next_due_at still equals readNextDueAt, the
// value the caller based its edit on. If a scan advanced the row in between,
// Update writes nothing and returns ErrConflict.
func (s *RecurringStore) Update(ctx context.Context, r models.RecurringTransaction, readNextDueAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE recurring_transactions SET kind = ?, amount = ?, category_id = ?, notes = ?,
			payment_method = ?, period = ?, next_due_at = ?, is_active = ?
		WHERE id = ? AND next_due_at = ?`,
		r.Kind, r.Amount, r.CategoryID, r.Notes, r.PaymentMethod, string(r.Period),
		utc(r.NextDueAt), r.IsActive, r.ID, utc(readNextDueAt),
	)
	if err != nil {
		return fmt.Errorf("update recurring transaction %s: %w", r.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		current, err := s.Get(ctx, r.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotFound
		}
		return fmt.Errorf("update recurring transaction %s: advanced to %s: %w", r.ID, current.NextDueAt.Format(time.RFC3339), ErrConflict)
	}
	s.hub.Publish(TableRecurring)
	return nil
}

func (s *RecurringStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM recurring_transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete recurring transaction %s: %w", id, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	s.hub.Publish(TableRecurring)
	return nil
}

// Advance records one occurrence of def: it moves next_due_at from
// def.NextDueAt to next and inserts the materialized transaction, both in one
// SQL transaction. The move only happens if next_due_at still holds the value
// the caller read, so two racing runs cannot both fire the same due date.
// It reports false, and writes nothing, when the row had already moved on.
func (s *RecurringStore) Advance(ctx context.Context, def models.RecurringTransaction, occurrence models.Transaction, next time.Time) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin advance: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE recurring_transactions SET next_due_at = ? WHERE id = ? AND next_due_at = ? AND is_active = 1",
		utc(next), def.ID, utc(def.NextDueAt),
	)
	if err != nil {
		return false, fmt.Errorf("advance recurring transaction %s: %w", def.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return false, err
	}

	if err := insertTransaction(ctx, tx, occurrence); err != nil {
		return false, fmt.Errorf("insert occurrence of %s: %w", def.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit advance: %w", err)
	}

	s.hub.Publish(TableRecurring)
	s.hub.Publish(TableTransactions)
	return true, nil
}
