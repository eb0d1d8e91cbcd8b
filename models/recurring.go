package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is how often a recurring transaction fires
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Valid reports whether p is a known period
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Next adds exactly one period to t. Month and year steps clamp to the
// last day of the target month, so Jan 31 becomes Feb 28 (or 29).
func (p Period) Next(t time.Time) time.Time {
	switch p {
	case PeriodDaily:
		return t.AddDate(0, 0, 1)
	case PeriodWeekly:
		return t.AddDate(0, 0, 7)
	case PeriodMonthly:
		return addMonthsClamped(t, 1)
	case PeriodYearly:
		return addMonthsClamped(t, 12)
	}
	return t
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	lastDay := time.Date(y, m+time.Month(months)+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(y, m+time.Month(months), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// RecurringTransaction is a template that periodically spawns transactions
type RecurringTransaction struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"ownerId"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    string          `json:"categoryId"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Period        Period          `json:"period"`
	NextDueAt     time.Time       `json:"nextDueAt"`
	IsActive      bool            `json:"isActive"`
}

// IsDue reports whether the definition should fire at now
func (r RecurringTransaction) IsDue(now time.Time) bool {
	return r.IsActive && !r.NextDueAt.After(now)
}

// Materialize builds the concrete transaction for the current due date.
// The transaction is dated at NextDueAt, not at the time the job ran.
func (r RecurringTransaction) Materialize(id string, now time.Time) Transaction {
	return Transaction{
		ID:            id,
		OwnerID:       r.OwnerID,
		Kind:          r.Kind,
		Amount:        r.Amount,
		CategoryID:    r.CategoryID,
		OccurredAt:    r.NextDueAt,
		Notes:         r.Notes,
		PaymentMethod: r.PaymentMethod,
		Tags:          []string{},
		SyncStatus:    SyncPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
