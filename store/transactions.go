package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

// TransactionFilter narrows a transaction query. Zero fields match everything.
type TransactionFilter struct {
	OwnerID    string
	Kind       string
	CategoryID string
	From       *time.Time
	To         *time.Time
	Statuses   []models.SyncStatus
}

type TransactionStore struct {
	db  *sql.DB
	hub *Hub
}

const transactionColumns = `id, owner_id, kind, amount, category_id, occurred_at, notes,
	payment_method, tags, receipt_ref, sync_status, created_at, updated_at`

func scanTransaction(scanner interface{ Scan(...interface{}) error }) (models.Transaction, error) {
	var t models.Transaction
	var tags string
	var status string
	err := scanner.Scan(
		&t.ID, &t.OwnerID, &t.Kind, &t.Amount, &t.CategoryID, &t.OccurredAt, &t.Notes,
		&t.PaymentMethod, &tags, &t.ReceiptRef, &status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	t.Tags = decodeTags(tags)
	t.SyncStatus = models.SyncStatus(status)
	return t, nil
}

// Get returns the transaction with id, or nil when there is none
func (s *TransactionStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return &t, nil
}

// List returns matching transactions, newest first
func (s *TransactionStore) List(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions WHERE 1=1"
	var args []interface{}

	if f.OwnerID != "" {
		query += " AND owner_id = ?"
		args = append(args, f.OwnerID)
	}
	if f.Kind != "" {
		query += " AND kind = ?"
		args = append(args, f.Kind)
	}
	if f.CategoryID != "" {
		query += " AND category_id = ?"
		args = append(args, f.CategoryID)
	}
	if f.From != nil {
		query += " AND occurred_at >= ?"
		args = append(args, utc(*f.From))
	}
	if f.To != nil {
		query += " AND occurred_at < ?"
		args = append(args, utc(*f.To))
	}
	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, status := range f.Statuses {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		query += " AND sync_status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	query += " ORDER BY occurred_at DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// Watch is the live form of List
func (s *TransactionStore) Watch(ctx context.Context, f TransactionFilter) (<-chan []models.Transaction, error) {
	return watch(ctx, s.hub, TableTransactions, func(ctx context.Context) ([]models.Transaction, error) {
		return s.List(ctx, f)
	})
}

func insertTransaction(ctx context.Context, ex execer, t models.Transaction) error {
	tags, err := encodeTags(t.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			kind = excluded.kind,
			amount = excluded.amount,
			category_id = excluded.category_id,
			occurred_at = excluded.occurred_at,
			notes = excluded.notes,
			payment_method = excluded.payment_method,
			tags = excluded.tags,
			receipt_ref = excluded.receipt_ref,
			sync_status = excluded.sync_status,
			updated_at = excluded.updated_at`,
		t.ID, t.OwnerID, t.Kind, t.Amount, t.CategoryID, utc(t.OccurredAt), t.Notes,
		t.PaymentMethod, tags, t.ReceiptRef, string(t.SyncStatus), utc(t.CreatedAt), utc(t.UpdatedAt),
	)
	return err
}

// Upsert inserts t or replaces the row with the same id
func (s *TransactionStore) Upsert(ctx context.Context, t models.Transaction) error {
	if err := insertTransaction(ctx, s.db, t); err != nil {
		return fmt.Errorf("save transaction %s: %w", t.ID, mapWriteError(err))
	}
	s.hub.Publish(TableTransactions)
	return nil
}

// Update overwrites an existing transaction. ErrNotFound if id is unknown.
func (s *TransactionStore) Update(ctx context.Context, t models.Transaction) error {
	tags, err := encodeTags(t.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET kind = ?, amount = ?, category_id = ?, occurred_at = ?, notes = ?,
			payment_method = ?, tags = ?, receipt_ref = ?, sync_status = ?, updated_at = ?
		WHERE id = ?`,
		t.Kind, t.Amount, t.CategoryID, utc(t.OccurredAt), t.Notes,
		t.PaymentMethod, tags, t.ReceiptRef, string(t.SyncStatus), utc(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", t.ID, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	s.hub.Publish(TableTransactions)
	return nil
}

// SetSyncStatus records the outcome of a remote push. The row is only touched
// if it has not been edited since updatedAt, so a newer edit keeps its own
// status. It reports whether the row was changed.
func (s *TransactionStore) SetSyncStatus(ctx context.Context, id string, updatedAt time.Time, status models.SyncStatus) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE transactions SET sync_status = ? WHERE id = ? AND updated_at = ?",
		string(status), id, utc(updatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("set sync status of %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		s.hub.Publish(TableTransactions)
	}
	return n > 0, nil
}

// Delete removes the transaction. ErrNotFound if id is unknown.
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	s.hub.Publish(TableTransactions)
	return nil
}
