package migrations

import (
	"database/sql"
	"fmt"
	"log"
)

// CreateBaseSchema creates one table per entity kind. Money columns are TEXT
// so decimal amounts round-trip without float conversion.
func CreateBaseSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			photo_ref TEXT NOT NULL DEFAULT '',
			currency TEXT NOT NULL DEFAULT 'USD',
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			amount TEXT NOT NULL,
			category_id TEXT NOT NULL,
			occurred_at DATETIME NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			payment_method TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			receipt_ref TEXT NOT NULL DEFAULT '',
			sync_status TEXT NOT NULL DEFAULT 'PENDING',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			is_default BOOLEAN NOT NULL DEFAULT 0,
			owner_id TEXT NOT NULL,
			kind TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS budgets (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			category_id TEXT NOT NULL,
			amount TEXT NOT NULL,
			month INTEGER NOT NULL,
			year INTEGER NOT NULL,
			spent TEXT NOT NULL DEFAULT '0'
		);

		CREATE TABLE IF NOT EXISTS debts (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			direction TEXT NOT NULL,
			counterparty_name TEXT NOT NULL,
			total_amount TEXT NOT NULL,
			remaining_amount TEXT NOT NULL,
			due_date DATETIME,
			notes TEXT NOT NULL DEFAULT '',
			is_paid BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS savings_goals (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			target_amount TEXT NOT NULL,
			current_amount TEXT NOT NULL,
			deadline DATETIME,
			icon TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS recurring_transactions (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			amount TEXT NOT NULL,
			category_id TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			payment_method TEXT NOT NULL DEFAULT '',
			period TEXT NOT NULL,
			next_due_at DATETIME NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT 1
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create base schema: %w", err)
	}

	log.Println("Base schema created successfully")
	return nil
}
