package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Error opening database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrationsTwice(t *testing.T) {
	db := openTestDB(t)

	if err := RunMigrations(db); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if err := RunMigrations(db); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("Error counting migrations: %v", err)
	}
	if count != len(all) {
		t.Errorf("Expected %d recorded migrations, got %d", len(all), count)
	}
}

func TestBudgetPeriodIsUnique(t *testing.T) {
	db := openTestDB(t)
	if err := RunMigrations(db); err != nil {
		t.Fatalf("Error running migrations: %v", err)
	}

	insert := `INSERT INTO budgets (id, owner_id, category_id, amount, month, year) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := db.Exec(insert, "b1", "owner", "cat", "100", 5, 2024); err != nil {
		t.Fatalf("Error inserting first budget: %v", err)
	}
	if _, err := db.Exec(insert, "b2", "owner", "cat", "200", 5, 2024); err == nil {
		t.Error("Expected duplicate budget period to be rejected")
	}
	// A different month is fine
	if _, err := db.Exec(insert, "b3", "owner", "cat", "200", 6, 2024); err != nil {
		t.Errorf("Expected budget for another month to be accepted: %v", err)
	}
}

func TestDefaultCategoryIsUnique(t *testing.T) {
	db := openTestDB(t)
	if err := RunMigrations(db); err != nil {
		t.Fatalf("Error running migrations: %v", err)
	}

	insert := `INSERT INTO categories (id, name, is_default, owner_id, kind) VALUES (?, ?, ?, ?, ?)`
	if _, err := db.Exec(insert, "c1", "Salary", true, "a", "income"); err != nil {
		t.Fatalf("Error inserting default: %v", err)
	}
	if _, err := db.Exec(insert, "c2", "Salary", true, "b", "income"); err == nil {
		t.Error("Expected second default with the same name to be rejected")
	}
	// Custom categories may reuse a default name
	if _, err := db.Exec(insert, "c3", "Salary", false, "b", "income"); err != nil {
		t.Errorf("Expected custom category to be accepted: %v", err)
	}
}
