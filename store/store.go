package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when an update or delete targets a missing id
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("record conflicts with an existing one")
)

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Store groups the typed tables of the local cache. All of them share one
// connection pool and one change hub.
type Store struct {
	DB  *sql.DB
	Hub *Hub

	Users        *UserStore
	Transactions *TransactionStore
	Categories   *CategoryStore
	Budgets      *BudgetStore
	Debts        *DebtStore
	SavingsGoals *SavingsGoalStore
	Recurring    *RecurringStore
}

// New wires every table store on top of db
func New(db *sql.DB) *Store {
	hub := NewHub()
	return &Store{
		DB:           db,
		Hub:          hub,
		Users:        &UserStore{db: db, hub: hub},
		Transactions: &TransactionStore{db: db, hub: hub},
		Categories:   &CategoryStore{db: db, hub: hub},
		Budgets:      &BudgetStore{db: db, hub: hub},
		Debts:        &DebtStore{db: db, hub: hub},
		SavingsGoals: &SavingsGoalStore{db: db, hub: hub},
		Recurring:    &RecurringStore{db: db, hub: hub},
	}
}

// utc normalizes times before they are written so stored values compare
// correctly as text
func utc(t time.Time) time.Time {
	return t.UTC()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTags(raw string) []string {
	tags := []string{}
	if raw == "" {
		return tags
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return []string{}
	}
	return tags
}

// mapWriteError converts driver errors into store errors
func mapWriteError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return ErrConflict
		}
	}
	return err
}

// affectedOrNotFound returns ErrNotFound when a write touched no rows
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
