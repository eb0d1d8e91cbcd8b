package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/notify"
	"github.com/Nyagar-Abraham/Finance-app/repository"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

// Band classifies how much of a budget has been used
type Band string

const (
	BandNormal     Band = "NORMAL"
	BandWarning    Band = "WARNING"
	BandOverBudget Band = "OVER_BUDGET"
)

// DefaultWarningThreshold is the share of a budget that triggers a warning
const DefaultWarningThreshold = 0.8

type BudgetStatus struct {
	Budget       models.Budget   `json:"budget"`
	CategoryName string          `json:"categoryName"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percentage   float64         `json:"percentage"`
	Band         Band            `json:"band"`
}

// EvaluateBudget classifies spent against b.Amount. Spending more than the
// amount is OVER_BUDGET; reaching threshold (but not more than the amount)
// is WARNING.
func EvaluateBudget(b models.Budget, spent decimal.Decimal, threshold float64) BudgetStatus {
	status := BudgetStatus{
		Budget:    b,
		Spent:     spent,
		Remaining: b.Amount.Sub(spent),
		Band:      BandNormal,
	}

	ratio := decimal.Zero
	if b.Amount.IsPositive() {
		ratio = spent.Div(b.Amount)
	}
	status.Percentage = ratio.InexactFloat64()

	switch {
	case spent.GreaterThan(b.Amount):
		status.Band = BandOverBudget
	case ratio.GreaterThanOrEqual(decimal.NewFromFloat(threshold)):
		status.Band = BandWarning
	}
	return status
}

// MonthRange is [first of month, first of next month) in loc
func MonthRange(month, year int, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// BudgetMonitor evaluates budgets against actual spending and notifies when
// a budget moves into the warning or over-budget band. The last band of each
// budget is remembered for the life of the process, so staying in a band
// does not notify again.
type BudgetMonitor struct {
	budgets      *repository.BudgetRepository
	transactions *repository.TransactionRepository
	categories   *repository.CategoryRepository
	notifier     notify.Notifier
	threshold    float64
	loc          *time.Location

	mu    sync.Mutex
	bands map[string]Band
}

func NewBudgetMonitor(repos *repository.Repositories, notifier notify.Notifier, threshold float64, loc *time.Location) *BudgetMonitor {
	if threshold <= 0 {
		threshold = DefaultWarningThreshold
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BudgetMonitor{
		budgets:      repos.Budgets,
		transactions: repos.Transactions,
		categories:   repos.Categories,
		notifier:     notifier,
		threshold:    threshold,
		loc:          loc,
		bands:        make(map[string]Band),
	}
}

// Location is the zone months are measured in
func (m *BudgetMonitor) Location() *time.Location {
	return m.loc
}

// Evaluate computes the status of every budget the owner has for the month
func (m *BudgetMonitor) Evaluate(ctx context.Context, ownerID string, month, year int) ([]BudgetStatus, error) {
	budgets, err := m.budgets.FindForPeriod(ctx, ownerID, month, year)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return []BudgetStatus{}, nil
	}

	from, to := MonthRange(month, year, m.loc)
	expenses, err := m.transactions.Find(ctx, store.TransactionFilter{
		OwnerID: ownerID,
		Kind:    models.KindExpense,
		From:    &from,
		To:      &to,
	})
	if err != nil {
		return nil, err
	}

	spent := make(map[string]decimal.Decimal)
	for _, t := range expenses {
		spent[t.CategoryID] = spent[t.CategoryID].Add(t.Amount)
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		status := EvaluateBudget(b, spent[b.CategoryID], m.threshold)
		status.CategoryName = m.categoryName(ctx, b.CategoryID)
		m.notifyOnTransition(ctx, ownerID, status)
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (m *BudgetMonitor) categoryName(ctx context.Context, id string) string {
	c, err := m.categories.Get(ctx, id)
	if err != nil || c == nil {
		return id
	}
	return c.Name
}

func (m *BudgetMonitor) notifyOnTransition(ctx context.Context, ownerID string, status BudgetStatus) {
	m.mu.Lock()
	previous, seen := m.bands[status.Budget.ID]
	if !seen {
		previous = BandNormal
	}
	m.bands[status.Budget.ID] = status.Band
	m.mu.Unlock()

	if status.Band == previous || status.Band == BandNormal {
		return
	}

	err := m.notifier.NotifyBudgetThreshold(ctx, ownerID, status.CategoryName,
		status.Budget.Amount, status.Spent, status.Percentage)
	if err != nil {
		log.Printf("Error sending budget alert for %s: %v", status.Budget.ID, err)
	}
}
