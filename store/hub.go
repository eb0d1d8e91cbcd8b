package store

import (
	"context"
	"log"
	"sync"
)

// Table names published on the hub
const (
	TableUsers        = "users"
	TableTransactions = "transactions"
	TableCategories   = "categories"
	TableBudgets      = "budgets"
	TableDebts        = "debts"
	TableSavingsGoals = "savings_goals"
	TableRecurring    = "recurring_transactions"
)

// Hub fans out "table changed" signals to live queries. A signal carries no
// payload; subscribers reload the rows they care about.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe returns a channel that receives a signal after every committed
// write to table, and a function that releases it.
func (h *Hub) Subscribe(table string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[table] == nil {
		h.subs[table] = make(map[chan struct{}]struct{})
	}
	h.subs[table][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[table], ch)
			h.mu.Unlock()
		})
	}
}

// Publish signals every subscriber of table. Signals coalesce: a subscriber
// that has not consumed the previous one only sees one.
func (h *Hub) Publish(table string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[table] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions on table
func (h *Hub) Subscribers(table string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[table])
}

// watch emits the result of load now and again after each change to table,
// until ctx is done. A slow consumer only ever sees the latest list.
func watch[T any](ctx context.Context, h *Hub, table string, load func(context.Context) ([]T, error)) (<-chan []T, error) {
	changed, unsubscribe := h.Subscribe(table)

	first, err := load(ctx)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	out := make(chan []T, 1)
	out <- first

	go func() {
		defer close(out)
		defer unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case <-changed:
			}

			items, err := load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Error reloading live query on %s: %v", table, err)
				continue
			}

			// Replace an unread list with the fresh one
			select {
			case <-out:
			default:
			}
			select {
			case out <- items:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
