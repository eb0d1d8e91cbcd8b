package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

func TestSummarize(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	in := func(days int) time.Time { return from.AddDate(0, 0, days) }

	transactions := []models.Transaction{
		{Kind: models.KindIncome, Amount: decimal.NewFromInt(3000), CategoryID: "salary", OccurredAt: in(0)},
		{Kind: models.KindExpense, Amount: decimal.NewFromInt(100), CategoryID: "food", OccurredAt: in(1)},
		{Kind: models.KindExpense, Amount: decimal.NewFromInt(50), CategoryID: "food", OccurredAt: in(2)},
		{Kind: models.KindExpense, Amount: decimal.NewFromInt(450), CategoryID: "rent", OccurredAt: in(3)},
		{Kind: models.KindExpense, Amount: decimal.NewFromInt(999), CategoryID: "rent", OccurredAt: to},
	}

	summary := Summarize(transactions, from, to)

	if summary.Count != 4 {
		t.Errorf("Expected 4 transactions in range, got %d", summary.Count)
	}
	if !summary.TotalIncome.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("Unexpected income %s", summary.TotalIncome)
	}
	if !summary.TotalExpense.Equal(decimal.NewFromInt(600)) {
		t.Errorf("Unexpected expense %s", summary.TotalExpense)
	}
	if !summary.NetBalance.Equal(decimal.NewFromInt(2400)) {
		t.Errorf("Unexpected balance %s", summary.NetBalance)
	}
	if len(summary.ByCategory) != 2 || summary.ByCategory[0].CategoryID != "rent" {
		t.Fatalf("Expected rent first, got %+v", summary.ByCategory)
	}
	if summary.ByCategory[0].Share != 0.75 {
		t.Errorf("Expected rent share 0.75, got %v", summary.ByCategory[0].Share)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, time.Now().Add(-time.Hour), time.Now())
	if summary.Count != 0 || !summary.NetBalance.IsZero() || summary.ByCategory == nil {
		t.Errorf("Unexpected empty summary %+v", summary)
	}
}
