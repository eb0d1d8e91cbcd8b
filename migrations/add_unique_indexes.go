package migrations

import (
	"database/sql"
	"log"
)

// AddBudgetPeriodUniqueIndex allows at most one budget per owner, category
// and month. Older duplicates are dropped first, keeping the first row.
func AddBudgetPeriodUniqueIndex(db *sql.DB) error {
	log.Println("Adding unique index to budgets table...")

	_, err := db.Exec(`
		DELETE FROM budgets
		WHERE rowid NOT IN (
			SELECT MIN(rowid) FROM budgets
			GROUP BY owner_id, category_id, month, year
		)
	`)
	if err != nil {
		log.Printf("Error removing duplicate budgets: %v", err)
		return err
	}

	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_budgets_owner_period
		ON budgets (owner_id, category_id, month, year)
	`)
	if err != nil {
		log.Printf("Error creating budgets unique index: %v", err)
		return err
	}

	return nil
}

// AddDefaultCategoriesUniqueIndex makes default categories unique by name and
// kind, so concurrent seeding cannot insert a second copy.
func AddDefaultCategoriesUniqueIndex(db *sql.DB) error {
	log.Println("Adding unique index for default categories...")

	_, err := db.Exec(`
		DELETE FROM categories
		WHERE is_default = 1 AND rowid NOT IN (
			SELECT MIN(rowid) FROM categories
			WHERE is_default = 1
			GROUP BY name, kind
		)
	`)
	if err != nil {
		log.Printf("Error removing duplicate default categories: %v", err)
		return err
	}

	_, err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_default_name
		ON categories (name, kind) WHERE is_default = 1
	`)
	if err != nil {
		log.Printf("Error creating default categories index: %v", err)
		return err
	}

	return nil
}

// AddOwnerIndexes speeds up the owner-scoped queries behind every list
func AddOwnerIndexes(db *sql.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_transactions_owner_date ON transactions (owner_id, occurred_at)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_sync ON transactions (owner_id, sync_status)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_owner ON categories (owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_debts_owner ON debts (owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_savings_goals_owner ON savings_goals (owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recurring_owner_due ON recurring_transactions (owner_id, is_active, next_due_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
