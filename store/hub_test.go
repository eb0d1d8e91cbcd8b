package store

import (
	"context"
	"testing"
	"time"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/shopspring/decimal"
)

func receive[T any](t *testing.T, ch <-chan []T) []T {
	t.Helper()
	select {
	case items, ok := <-ch:
		if !ok {
			t.Fatal("Channel closed unexpectedly")
		}
		return items
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for live query")
	}
	return nil
}

func TestWatchEmitsOnChange(t *testing.T) {
	s := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Debts.Watch(ctx, DebtFilter{OwnerID: "alice"})
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if first := receive(t, ch); len(first) != 0 {
		t.Fatalf("Expected empty first emission, got %d", len(first))
	}

	debt := models.Debt{
		ID: "d1", OwnerID: "alice", Direction: models.DebtLent,
		TotalAmount: decimal.NewFromInt(20), RemainingAmount: decimal.NewFromInt(20), CreatedAt: time.Now(),
	}
	if err := s.Debts.Upsert(context.Background(), debt); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if second := receive(t, ch); len(second) != 1 {
		t.Fatalf("Expected one debt after insert, got %d", len(second))
	}

	if err := s.Debts.Delete(context.Background(), "d1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if third := receive(t, ch); len(third) != 0 {
		t.Fatalf("Expected empty list after delete, got %d", len(third))
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	s := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := s.Categories.Watch(ctx, "alice", "")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	receive(t, ch)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("Expected channel to close after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Channel did not close after cancel")
	}

	deadline := time.Now().Add(time.Second)
	for s.Hub.Subscribers(TableCategories) != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := s.Hub.Subscribers(TableCategories); n != 0 {
		t.Errorf("Expected subscription to be released, still have %d", n)
	}
}

func TestPublishCoalesces(t *testing.T) {
	h := NewHub()
	ch, release := h.Subscribe(TableBudgets)
	defer release()

	h.Publish(TableBudgets)
	h.Publish(TableBudgets)
	h.Publish(TableDebts)

	<-ch
	select {
	case <-ch:
		t.Error("Expected repeated signals to coalesce")
	default:
	}
}
