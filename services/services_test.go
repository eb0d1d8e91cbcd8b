package services

import (
	"testing"
	"time"

	"github.com/Nyagar-Abraham/Finance-app/database"
	"github.com/Nyagar-Abraham/Finance-app/remote"
	"github.com/Nyagar-Abraham/Finance-app/repository"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func setupRepositories(t *testing.T, c *clock) *repository.Repositories {
	t.Helper()
	db, err := database.Open(database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return repository.New(store.New(db), remote.NewMemoryStore(), c.Now)
}
