// Package notify delivers budget alerts to the user.
package notify

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"
)

// Notifier is told when a budget crosses into the warning or over-budget band
type Notifier interface {
	NotifyBudgetThreshold(ctx context.Context, ownerID, categoryName string, amount, spent decimal.Decimal, percentage float64) error
}

func alertText(categoryName string, amount, spent decimal.Decimal, percentage float64) (string, string) {
	title := "Budget warning"
	if spent.GreaterThan(amount) {
		title = "Budget exceeded"
	}
	body := fmt.Sprintf("You've spent %s of your %s budget for %s (%.0f%%)",
		spent.StringFixed(2), amount.StringFixed(2), categoryName, percentage*100)
	return title, body
}

// LogNotifier writes alerts to the process log
type LogNotifier struct{}

func (LogNotifier) NotifyBudgetThreshold(ctx context.Context, ownerID, categoryName string, amount, spent decimal.Decimal, percentage float64) error {
	title, body := alertText(categoryName, amount, spent, percentage)
	log.Printf("[%s] %s: %s", ownerID, title, body)
	return nil
}

// Alert is one recorded notification
type Alert struct {
	OwnerID      string
	CategoryName string
	Amount       decimal.Decimal
	Spent        decimal.Decimal
	Percentage   float64
}

// Recorder keeps every alert it receives
type Recorder struct {
	mu     sync.Mutex
	alerts []Alert
}

func (r *Recorder) NotifyBudgetThreshold(ctx context.Context, ownerID, categoryName string, amount, spent decimal.Decimal, percentage float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, Alert{
		OwnerID:      ownerID,
		CategoryName: categoryName,
		Amount:       amount,
		Spent:        spent,
		Percentage:   percentage,
	})
	return nil
}

// Alerts returns a copy of the recorded alerts
func (r *Recorder) Alerts() []Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Alert(nil), r.alerts...)
}
