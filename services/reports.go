package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

type CategoryTotal struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Total        decimal.Decimal `json:"total"`
	// Share of total expense, 0-1
	Share float64 `json:"share"`
}

type Summary struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetBalance   decimal.Decimal `json:"netBalance"`
	Count        int             `json:"count"`
	ByCategory   []CategoryTotal `json:"byCategory"`
}

// Summarize totals the transactions that occurred in [from, to). Expense
// categories are sorted by total, largest first.
func Summarize(transactions []models.Transaction, from, to time.Time) Summary {
	summary := Summary{
		From:       from,
		To:         to,
		ByCategory: []CategoryTotal{},
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.OccurredAt.Before(from) || !t.OccurredAt.Before(to) {
			continue
		}
		summary.Count++
		switch t.Kind {
		case models.KindIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		case models.KindExpense:
			summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
			byCategory[t.CategoryID] = byCategory[t.CategoryID].Add(t.Amount)
		}
	}
	summary.NetBalance = summary.TotalIncome.Sub(summary.TotalExpense)

	for id, total := range byCategory {
		share := 0.0
		if summary.TotalExpense.IsPositive() {
			share = total.Div(summary.TotalExpense).InexactFloat64()
		}
		summary.ByCategory = append(summary.ByCategory, CategoryTotal{CategoryID: id, Total: total, Share: share})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.CategoryID < b.CategoryID
	})
	return summary
}
