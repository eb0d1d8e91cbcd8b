package handlers

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/remote"
	"github.com/Nyagar-Abraham/Finance-app/repository"
	"github.com/Nyagar-Abraham/Finance-app/services"
)

func TestGetSummary(t *testing.T) {
	env := setupTestEnv(t)

	w := call(t, env.h.AddCategory, "POST", "/categories", "alice", "", `{"name":"Rent","kind":"expense"}`)
	expectStatus(t, w, http.StatusCreated)
	var rent models.Category
	decode(t, w, &rent)

	for _, body := range []map[string]interface{}{
		{"kind": "income", "amount": "3000", "categoryId": "salary", "occurredAt": "2024-03-01T09:00:00Z"},
		{"kind": "expense", "amount": "1200", "categoryId": rent.ID, "occurredAt": "2024-03-02T09:00:00Z"},
		{"kind": "expense", "amount": "999", "categoryId": rent.ID, "occurredAt": "2024-02-02T09:00:00Z"},
	} {
		w := call(t, env.h.AddTransaction, "POST", "/transactions", "alice", "", body)
		expectStatus(t, w, http.StatusCreated)
	}

	w = call(t, env.h.GetSummary, "GET", "/reports/summary", "alice", "", nil)
	expectStatus(t, w, http.StatusOK)
	var summary services.Summary
	decode(t, w, &summary)

	if summary.Count != 2 {
		t.Errorf("Expected 2 transactions in March, got %d", summary.Count)
	}
	if !summary.NetBalance.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("Expected net 1800, got %s", summary.NetBalance)
	}
	if len(summary.ByCategory) != 1 || summary.ByCategory[0].CategoryName != "Rent" {
		t.Errorf("Unexpected category totals: %+v", summary.ByCategory)
	}

	w = call(t, env.h.GetSummary, "GET", "/reports/summary?from=2024-03-10&to=2024-03-01", "alice", "", nil)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestGetSyncStats(t *testing.T) {
	env := setupTestEnv(t)
	env.remote.FailWrites(remote.ErrDisabled)

	w := call(t, env.h.AddDebt, "POST", "/debts", "alice", "",
		`{"direction":"owed","counterpartyName":"Sam","totalAmount":"50"}`)
	expectStatus(t, w, http.StatusCreated)

	w = call(t, env.h.GetSyncStats, "GET", "/sync/stats", "alice", "", nil)
	expectStatus(t, w, http.StatusOK)
	var stats map[string]repository.Counts
	decode(t, w, &stats)
	if stats[remote.CollectionDebts].PushFailed != 1 {
		t.Errorf("Expected 1 failed debt push, got %+v", stats)
	}
}
