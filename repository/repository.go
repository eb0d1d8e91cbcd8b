// Package repository puts the local store and the remote mirror behind one
// API per entity kind. Reads only ever touch the local store. Writes commit
// locally first and are then pushed to the remote; a remote failure never
// fails the call.
package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Nyagar-Abraham/Finance-app/remote"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

// ErrDefaultCategory is returned when deleting a shared default category
var ErrDefaultCategory = errors.New("default categories cannot be deleted")

// Repositories holds one repository per entity kind
type Repositories struct {
	Users        *UserRepository
	Transactions *TransactionRepository
	Categories   *CategoryRepository
	Budgets      *BudgetRepository
	Debts        *DebtRepository
	SavingsGoals *SavingsGoalRepository
	Recurring    *RecurringRepository
	Stats        *SyncStats
}

// New builds the repositories over st, mirroring to rs. now defaults to
// time.Now.
func New(st *store.Store, rs remote.Store, now func() time.Time) *Repositories {
	if now == nil {
		now = time.Now
	}
	stats := NewSyncStats()
	m := func(collection string) mirror {
		return mirror{remote: rs, stats: stats, collection: collection}
	}

	transactions := &TransactionRepository{store: st.Transactions, mirror: m(remote.CollectionTransactions), now: now}
	return &Repositories{
		Users:        &UserRepository{store: st.Users, mirror: m(""), now: now},
		Transactions: transactions,
		Categories:   &CategoryRepository{store: st.Categories, mirror: m(remote.CollectionCategories)},
		Budgets:      &BudgetRepository{store: st.Budgets, mirror: m(remote.CollectionBudgets)},
		Debts:        &DebtRepository{store: st.Debts, mirror: m(remote.CollectionDebts), now: now},
		SavingsGoals: &SavingsGoalRepository{store: st.SavingsGoals, mirror: m(remote.CollectionSavingsGoals), now: now},
		Recurring: &RecurringRepository{
			store:        st.Recurring,
			mirror:       m(remote.CollectionRecurring),
			transactions: transactions,
		},
		Stats: stats,
	}
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
