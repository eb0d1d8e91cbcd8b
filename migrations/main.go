package migrations

import (
	"database/sql"
	"fmt"
	"log"
)

// migration is a named schema change applied at most once
type migration struct {
	name string
	fn   func(*sql.DB) error
}

// all lists every migration in the order it must be applied
var all = []migration{
	{"create_base_schema", CreateBaseSchema},
	{"add_budget_period_unique_index", AddBudgetPeriodUniqueIndex},
	{"add_default_categories_unique_index", AddDefaultCategoriesUniqueIndex},
	{"add_owner_indexes", AddOwnerIndexes},
}

// RunMigrations executes all migrations in the correct order
func RunMigrations(db *sql.DB) error {
	log.Println("Running migrations...")

	// Create migrations table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Run each migration if it hasn't been applied yet
	for _, m := range all {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", m.name).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}

		if count > 0 {
			continue
		}

		log.Printf("Applying migration: %s", m.name)
		if err := m.fn(db); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.name, err)
		}

		if _, err := db.Exec("INSERT INTO migrations (name) VALUES (?)", m.name); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
	}

	log.Println("All migrations completed successfully")
	return nil
}
