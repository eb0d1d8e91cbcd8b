package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nyagar-Abraham/Finance-app/database"
	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/remote"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

var fixedNow = time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

func setupRepositories(t *testing.T) (*Repositories, *store.Store, *remote.MemoryStore) {
	t.Helper()
	db, err := database.Open(database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	rs := remote.NewMemoryStore()
	return New(st, rs, func() time.Time { return fixedNow }), st, rs
}

func first[T any](t *testing.T, ch <-chan []T, err error) []T {
	t.Helper()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	select {
	case items := <-ch:
		return items
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for first emission")
	}
	return nil
}

func expense(owner string) models.Transaction {
	return models.Transaction{
		OwnerID:    owner,
		Kind:       models.KindExpense,
		Amount:     decimal.RequireFromString("42.10"),
		CategoryID: "food",
		OccurredAt: fixedNow.Add(-time.Hour),
		Notes:      "groceries",
		Tags:       []string{"weekly"},
	}
}

func TestTransactionSyncStatusLifecycle(t *testing.T) {
	repos, st, rs := setupRepositories(t)
	ctx := context.Background()

	var statusDuringPush models.SyncStatus
	rs.BeforeSet = func(path string) {
		items, err := st.Transactions.List(context.Background(), store.TransactionFilter{OwnerID: "alice"})
		if err != nil || len(items) != 1 {
			t.Errorf("Expected the local row to exist before the push, got %v, %v", items, err)
			return
		}
		statusDuringPush = items[0].SyncStatus
	}

	added, err := repos.Transactions.Add(ctx, expense("alice"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if statusDuringPush != models.SyncPending {
		t.Errorf("Expected PENDING before the remote outcome, got %s", statusDuringPush)
	}
	if added.SyncStatus != models.SyncSynced {
		t.Errorf("Expected SYNCED after remote success, got %s", added.SyncStatus)
	}

	stored, _ := repos.Transactions.Get(ctx, added.ID)
	if stored.SyncStatus != models.SyncSynced {
		t.Errorf("Expected stored status SYNCED, got %s", stored.SyncStatus)
	}
	if stored.Notes != "groceries" || !stored.Amount.Equal(decimal.RequireFromString("42.10")) {
		t.Errorf("Other fields changed during sync: %+v", stored)
	}

	doc, ok := rs.Document(remote.DocumentPath("alice", remote.CollectionTransactions, added.ID))
	if !ok {
		t.Fatal("Expected mirrored document")
	}
	if doc["amount"] != 42.1 {
		t.Errorf("Expected mirrored amount 42.1, got %v", doc["amount"])
	}

	rs.BeforeSet = nil
	rs.FailWrites(errors.New("offline"))
	failed, err := repos.Transactions.Add(ctx, expense("alice"))
	if err != nil {
		t.Fatalf("Add must not fail on remote errors: %v", err)
	}
	if failed.SyncStatus != models.SyncFailed {
		t.Errorf("Expected FAILED after remote failure, got %s", failed.SyncStatus)
	}
	stored, _ = repos.Transactions.Get(ctx, failed.ID)
	if stored.SyncStatus != models.SyncFailed {
		t.Errorf("Expected stored status FAILED, got %s", stored.SyncStatus)
	}

	if got := repos.Stats.Snapshot()[remote.CollectionTransactions]; got.Pushed != 1 || got.PushFailed != 1 {
		t.Errorf("Unexpected sync stats %+v", got)
	}
}

func TestTransactionUpdateKeepsOwnerAndCreatedAt(t *testing.T) {
	repos, _, _ := setupRepositories(t)
	ctx := context.Background()

	added, err := repos.Transactions.Add(ctx, expense("alice"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	edit := added
	edit.OwnerID = "mallory"
	edit.CreatedAt = time.Time{}
	edit.Notes = "edited"
	updated, err := repos.Transactions.Update(ctx, edit)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.OwnerID != "alice" || !updated.CreatedAt.Equal(added.CreatedAt) {
		t.Errorf("Owner or createdAt changed: %+v", updated)
	}

	_, err = repos.Transactions.Update(ctx, models.Transaction{ID: "ghost"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDisabledRemoteMarksFailed(t *testing.T) {
	db, err := database.Open(database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()
	repos := New(store.New(db), remote.Disabled{}, nil)

	added, err := repos.Transactions.Add(context.Background(), expense("alice"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.SyncStatus != models.SyncFailed {
		t.Errorf("Expected FAILED with a disabled remote, got %s", added.SyncStatus)
	}
}

func TestCancelledContextLeavesPending(t *testing.T) {
	repos, _, rs := setupRepositories(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pushed := false
	rs.BeforeSet = func(string) { pushed = true }

	pending := models.Transaction{ID: "x", OwnerID: "alice", SyncStatus: models.SyncPending}
	got, err := repos.Transactions.sync(ctx, pending)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if pushed || got.SyncStatus != models.SyncPending {
		t.Errorf("Expected no push and PENDING, got pushed=%v status=%s", pushed, got.SyncStatus)
	}
}

func TestResync(t *testing.T) {
	repos, _, rs := setupRepositories(t)
	ctx := context.Background()

	rs.FailWrites(errors.New("offline"))
	for i := 0; i < 3; i++ {
		if _, err := repos.Transactions.Add(ctx, expense("alice")); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if _, err := repos.Transactions.Add(ctx, expense("bob")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	rs.FailWrites(nil)
	synced, err := repos.Transactions.Resync(ctx, "alice")
	if err != nil {
		t.Fatalf("Resync failed: %v", err)
	}
	if synced != 3 {
		t.Errorf("Expected 3 resynced, got %d", synced)
	}

	bob, _ := repos.Transactions.Find(ctx, store.TransactionFilter{OwnerID: "bob"})
	if bob[0].SyncStatus != models.SyncFailed {
		t.Errorf("Resync of alice touched bob's transaction: %s", bob[0].SyncStatus)
	}
}

func TestDeleteStandsWhenRemoteFails(t *testing.T) {
	repos, _, rs := setupRepositories(t)
	ctx := context.Background()

	added, err := repos.Transactions.Add(ctx, expense("alice"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	path := remote.DocumentPath("alice", remote.CollectionTransactions, added.ID)

	rs.FailDeletes(errors.New("offline"))
	if err := repos.Transactions.Delete(ctx, added.ID); err != nil {
		t.Fatalf("Delete must not fail on remote errors: %v", err)
	}
	if got, _ := repos.Transactions.Get(ctx, added.ID); got != nil {
		t.Error("Expected local row to be gone")
	}
	if _, ok := rs.Document(path); !ok {
		t.Error("Expected remote document to survive the failed delete")
	}
	if got := repos.Stats.Snapshot()[remote.CollectionTransactions]; got.DeleteFailed != 1 {
		t.Errorf("Expected one failed delete, got %+v", got)
	}

	if err := repos.Transactions.Delete(ctx, added.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMirrorFailuresKeepLocalState(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		add        func(ctx context.Context, repos *Repositories) (string, error)
		update     func(ctx context.Context, repos *Repositories, id string) error
		exists     func(ctx context.Context, repos *Repositories, id string) bool
		remove     func(ctx context.Context, repos *Repositories, id string) error
	}{
		{
			name:       "category",
			collection: remote.CollectionCategories,
			add: func(ctx context.Context, repos *Repositories) (string, error) {
				c, err := repos.Categories.Add(ctx, models.Category{OwnerID: "alice", Name: "Pets", Kind: models.KindExpense})
				return c.ID, err
			},
			update: func(ctx context.Context, repos *Repositories, id string) error {
				c, _ := repos.Categories.Get(ctx, id)
				c.Name = "Animals"
				_, err := repos.Categories.Update(ctx, *c)
				return err
			},
			exists: func(ctx context.Context, repos *Repositories, id string) bool {
				c, _ := repos.Categories.Get(ctx, id)
				return c != nil
			},
			remove: func(ctx context.Context, repos *Repositories, id string) error {
				return repos.Categories.Delete(ctx, id)
			},
		},
		{
			name:       "budget",
			collection: remote.CollectionBudgets,
			add: func(ctx context.Context, repos *Repositories) (string, error) {
				b, err := repos.Budgets.Add(ctx, models.Budget{OwnerID: "alice", CategoryID: "food", Amount: decimal.NewFromInt(100), Month: 3, Year: 2024})
				return b.ID, err
			},
			update: func(ctx context.Context, repos *Repositories, id string) error {
				b, _ := repos.Budgets.Get(ctx, id)
				b.Amount = decimal.NewFromInt(150)
				_, err := repos.Budgets.Update(ctx, *b)
				return err
			},
			exists: func(ctx context.Context, repos *Repositories, id string) bool {
				b, _ := repos.Budgets.Get(ctx, id)
				return b != nil
			},
			remove: func(ctx context.Context, repos *Repositories, id string) error {
				return repos.Budgets.Delete(ctx, id)
			},
		},
		{
			name:       "debt",
			collection: remote.CollectionDebts,
			add: func(ctx context.Context, repos *Repositories) (string, error) {
				d, err := repos.Debts.Add(ctx, models.Debt{
					OwnerID: "alice", Direction: models.DebtOwed, CounterpartyName: "Sam",
					TotalAmount: decimal.NewFromInt(10), RemainingAmount: decimal.NewFromInt(10),
				})
				return d.ID, err
			},
			update: func(ctx context.Context, repos *Repositories, id string) error {
				d, _ := repos.Debts.Get(ctx, id)
				d.RemainingAmount = decimal.NewFromInt(4)
				_, err := repos.Debts.Update(ctx, *d)
				return err
			},
			exists: func(ctx context.Context, repos *Repositories, id string) bool {
				d, _ := repos.Debts.Get(ctx, id)
				return d != nil
			},
			remove: func(ctx context.Context, repos *Repositories, id string) error {
				return repos.Debts.Delete(ctx, id)
			},
		},
		{
			name:       "savings goal",
			collection: remote.CollectionSavingsGoals,
			add: func(ctx context.Context, repos *Repositories) (string, error) {
				g, err := repos.SavingsGoals.Add(ctx, models.SavingsGoal{OwnerID: "alice", Name: "Bike", TargetAmount: decimal.NewFromInt(300)})
				return g.ID, err
			},
			update: func(ctx context.Context, repos *Repositories, id string) error {
				g, _ := repos.SavingsGoals.Get(ctx, id)
				g.CurrentAmount = decimal.NewFromInt(50)
				_, err := repos.SavingsGoals.Update(ctx, *g)
				return err
			},
			exists: func(ctx context.Context, repos *Repositories, id string) bool {
				g, _ := repos.SavingsGoals.Get(ctx, id)
				return g != nil
			},
			remove: func(ctx context.Context, repos *Repositories, id string) error {
				return repos.SavingsGoals.Delete(ctx, id)
			},
		},
		{
			name:       "recurring",
			collection: remote.CollectionRecurring,
			add: func(ctx context.Context, repos *Repositories) (string, error) {
				def, err := repos.Recurring.Add(ctx, models.RecurringTransaction{
					OwnerID: "alice", Kind: models.KindExpense, Amount: decimal.NewFromInt(9),
					Period: models.PeriodMonthly, NextDueAt: fixedNow.AddDate(0, 1, 0), IsActive: true,
				})
				return def.ID, err
			},
			update: func(ctx context.Context, repos *Repositories, id string) error {
				def, _ := repos.Recurring.Get(ctx, id)
				def.Notes = "streaming"
				_, err := repos.Recurring.Update(ctx, *def, def.NextDueAt)
				return err
			},
			exists: func(ctx context.Context, repos *Repositories, id string) bool {
				def, _ := repos.Recurring.Get(ctx, id)
				return def != nil
			},
			remove: func(ctx context.Context, repos *Repositories, id string) error {
				return repos.Recurring.Delete(ctx, id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos, _, rs := setupRepositories(t)
			ctx := context.Background()

			rs.FailWrites(errors.New("offline"))
			id, err := tt.add(ctx, repos)
			if err != nil {
				t.Fatalf("Add must not fail on remote errors: %v", err)
			}
			if err := tt.update(ctx, repos, id); err != nil {
				t.Fatalf("Update must not fail on remote errors: %v", err)
			}
			if !tt.exists(ctx, repos, id) {
				t.Fatal("Expected the local row to survive failed pushes")
			}
			if got := repos.Stats.Snapshot()[tt.collection]; got.PushFailed != 2 || got.Pushed != 0 {
				t.Errorf("Expected two failed pushes, got %+v", got)
			}

			rs.FailWrites(nil)
			rs.FailDeletes(errors.New("offline"))
			if err := tt.remove(ctx, repos, id); err != nil {
				t.Fatalf("Delete must not fail on remote errors: %v", err)
			}
			if tt.exists(ctx, repos, id) {
				t.Error("Expected the local row to be gone")
			}
			if got := repos.Stats.Snapshot()[tt.collection]; got.DeleteFailed != 1 || got.Deleted != 0 {
				t.Errorf("Expected one failed delete, got %+v", got)
			}
		})
	}
}

func TestDeleteReachesMirror(t *testing.T) {
	repos, _, rs := setupRepositories(t)
	ctx := context.Background()

	debt, err := repos.Debts.Add(ctx, models.Debt{
		OwnerID: "alice", Direction: models.DebtOwed, CounterpartyName: "Sam",
		TotalAmount: decimal.NewFromInt(10), RemainingAmount: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	path := remote.DocumentPath("alice", remote.CollectionDebts, debt.ID)
	if _, ok := rs.Document(path); !ok {
		t.Fatal("Expected debt to be mirrored")
	}

	if err := repos.Debts.Delete(ctx, debt.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := rs.Document(path); ok {
		t.Error("Expected mirrored debt to be deleted")
	}
}

func TestInitializeDefaultsIsIdempotent(t *testing.T) {
	repos, _, _ := setupRepositories(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := repos.Categories.InitializeDefaults(ctx, "alice"); err != nil {
			t.Fatalf("InitializeDefaults failed: %v", err)
		}
	}

	ch, err := repos.Categories.List(ctx, "alice")
	categories := first(t, ch, err)

	want := map[string]int{}
	for _, name := range models.DefaultExpenseCategories {
		want[models.KindExpense+"/"+name]++
	}
	for _, name := range models.DefaultIncomeCategories {
		want[models.KindIncome+"/"+name]++
	}

	got := map[string]int{}
	for _, c := range categories {
		if !c.IsDefault {
			t.Errorf("Unexpected non-default category %s", c.Name)
		}
		got[c.Kind+"/"+c.Name]++
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d defaults, got %d", len(want), len(got))
	}
	for key, n := range got {
		if n != 1 || want[key] != 1 {
			t.Errorf("Expected exactly one %s, got %d", key, n)
		}
	}
}

func TestDefaultCategoryCannotBeDeleted(t *testing.T) {
	repos, _, _ := setupRepositories(t)
	ctx := context.Background()

	if _, err := repos.Categories.InitializeDefaults(ctx, "alice"); err != nil {
		t.Fatalf("InitializeDefaults failed: %v", err)
	}
	ch, err := repos.Categories.List(ctx, "alice")
	categories := first(t, ch, err)

	if err := repos.Categories.Delete(ctx, categories[0].ID); !errors.Is(err, ErrDefaultCategory) {
		t.Errorf("Expected ErrDefaultCategory, got %v", err)
	}
	if got, _ := repos.Categories.Get(ctx, categories[0].ID); got == nil {
		t.Error("Default category was deleted")
	}
}

func TestBudgetAddUpsertsByPeriod(t *testing.T) {
	repos, _, rs := setupRepositories(t)
	ctx := context.Background()

	b := models.Budget{OwnerID: "alice", CategoryID: "food", Amount: decimal.NewFromInt(500), Month: 3, Year: 2024}
	firstBudget, err := repos.Budgets.Add(ctx, b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	b.Amount = decimal.NewFromInt(700)
	second, err := repos.Budgets.Add(ctx, b)
	if err != nil {
		t.Fatalf("Second add failed: %v", err)
	}
	if second.ID != firstBudget.ID {
		t.Errorf("Expected id %s to be kept, got %s", firstBudget.ID, second.ID)
	}

	doc, ok := rs.Document(remote.DocumentPath("alice", remote.CollectionBudgets, firstBudget.ID))
	if !ok || doc["amount"] != 700.0 {
		t.Errorf("Expected mirrored amount 700, got %v", doc)
	}
}

func TestOwnerIsolation(t *testing.T) {
	repos, _, _ := setupRepositories(t)
	ctx := context.Background()

	if _, err := repos.Categories.InitializeDefaults(ctx, "alice"); err != nil {
		t.Fatalf("InitializeDefaults failed: %v", err)
	}
	for _, owner := range []string{"alice", "bob"} {
		if _, err := repos.Transactions.Add(ctx, expense(owner)); err != nil {
			t.Fatal(err)
		}
		if _, err := repos.Categories.Add(ctx, models.Category{OwnerID: owner, Name: owner + "-cat", Kind: models.KindExpense}); err != nil {
			t.Fatal(err)
		}
		if _, err := repos.Budgets.Add(ctx, models.Budget{OwnerID: owner, CategoryID: "food", Amount: decimal.NewFromInt(1), Month: 3, Year: 2024}); err != nil {
			t.Fatal(err)
		}
		if _, err := repos.Debts.Add(ctx, models.Debt{OwnerID: owner, Direction: models.DebtLent}); err != nil {
			t.Fatal(err)
		}
		if _, err := repos.SavingsGoals.Add(ctx, models.SavingsGoal{OwnerID: owner, Name: "goal", TargetAmount: decimal.NewFromInt(10)}); err != nil {
			t.Fatal(err)
		}
		if _, err := repos.Recurring.Add(ctx, models.RecurringTransaction{OwnerID: owner, Kind: models.KindExpense, Period: models.PeriodDaily, NextDueAt: fixedNow, IsActive: true}); err != nil {
			t.Fatal(err)
		}
	}

	ch, err := repos.Transactions.List(ctx, "bob")
	transactions := first(t, ch, err)
	if len(transactions) != 1 || transactions[0].OwnerID != "bob" {
		t.Errorf("Expected bob's one transaction, got %+v", transactions)
	}
	budgets, err := repos.Budgets.List(ctx, "bob")
	if got := first(t, budgets, err); len(got) != 1 || got[0].OwnerID != "bob" {
		t.Errorf("Expected bob's one budget, got %+v", got)
	}
	debts, err := repos.Debts.List(ctx, "bob")
	if got := first(t, debts, err); len(got) != 1 || got[0].OwnerID != "bob" {
		t.Errorf("Expected bob's one debt, got %+v", got)
	}
	goals, err := repos.SavingsGoals.List(ctx, "bob")
	if got := first(t, goals, err); len(got) != 1 || got[0].OwnerID != "bob" {
		t.Errorf("Expected bob's one goal, got %+v", got)
	}
	recurring, err := repos.Recurring.List(ctx, "bob")
	if got := first(t, recurring, err); len(got) != 1 || got[0].OwnerID != "bob" {
		t.Errorf("Expected bob's one recurring definition, got %+v", got)
	}

	categories, err := repos.Categories.List(ctx, "bob")
	defaults := 0
	var own []models.Category
	for _, c := range first(t, categories, err) {
		if c.IsDefault {
			defaults++
			continue
		}
		own = append(own, c)
	}
	if len(own) != 1 || own[0].OwnerID != "bob" || own[0].Name != "bob-cat" {
		t.Errorf("Expected bob's one category, got %+v", own)
	}
	if defaults != len(models.DefaultExpenseCategories)+len(models.DefaultIncomeCategories) {
		t.Errorf("Expected bob to see every default, got %d", defaults)
	}
}

func TestRecurringAdvanceMirrorsBoth(t *testing.T) {
	repos, _, rs := setupRepositories(t)
	ctx := context.Background()

	def, err := repos.Recurring.Add(ctx, models.RecurringTransaction{
		OwnerID: "alice", Kind: models.KindExpense, Amount: decimal.NewFromInt(15), CategoryID: "bills",
		Period: models.PeriodWeekly, NextDueAt: fixedNow.AddDate(0, 0, -1), IsActive: true,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	occurrence, err := repos.Recurring.Advance(ctx, def, fixedNow, time.UTC)
	if err != nil || occurrence == nil {
		t.Fatalf("Advance failed: %v, %v", occurrence, err)
	}
	if occurrence.SyncStatus != models.SyncSynced {
		t.Errorf("Expected occurrence SYNCED, got %s", occurrence.SyncStatus)
	}
	if _, ok := rs.Document(remote.DocumentPath("alice", remote.CollectionTransactions, occurrence.ID)); !ok {
		t.Error("Expected occurrence to be mirrored")
	}
	doc, _ := rs.Document(remote.DocumentPath("alice", remote.CollectionRecurring, def.ID))
	if next, _ := doc["nextDate"].(time.Time); !next.Equal(fixedNow.AddDate(0, 0, 6)) {
		t.Errorf("Expected mirrored nextDate %v, got %v", fixedNow.AddDate(0, 0, 6), doc["nextDate"])
	}

	again, err := repos.Recurring.Advance(ctx, def, fixedNow, time.UTC)
	if err != nil || again != nil {
		t.Errorf("Expected stale advance to be a no-op, got %v, %v", again, err)
	}
}

func TestRecurringUpdateAfterAdvanceConflicts(t *testing.T) {
	repos, _, _ := setupRepositories(t)
	ctx := context.Background()

	def, err := repos.Recurring.Add(ctx, models.RecurringTransaction{
		OwnerID: "alice", Kind: models.KindExpense, Amount: decimal.NewFromInt(20),
		Period: models.PeriodMonthly, NextDueAt: fixedNow.AddDate(0, 0, -1), IsActive: true,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	read, _ := repos.Recurring.Get(ctx, def.ID)

	if occurrence, err := repos.Recurring.Advance(ctx, *read, fixedNow, time.UTC); err != nil || occurrence == nil {
		t.Fatalf("Advance failed: %v, %v", occurrence, err)
	}

	edit := *read
	edit.Notes = "late edit"
	if _, err := repos.Recurring.Update(ctx, edit, read.NextDueAt); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}

	stored, _ := repos.Recurring.Get(ctx, def.ID)
	if want := read.NextDueAt.AddDate(0, 1, 0); !stored.NextDueAt.Equal(want) {
		t.Errorf("Stale update rolled back the due date: got %v, want %v", stored.NextDueAt, want)
	}

	if _, err := repos.Recurring.Update(ctx, models.RecurringTransaction{ID: "ghost"}, fixedNow); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserSave(t *testing.T) {
	repos, _, rs := setupRepositories(t)
	ctx := context.Background()

	u, err := repos.Users.Save(ctx, models.User{ID: "alice", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if u.Currency != models.DefaultCurrency {
		t.Errorf("Expected default currency, got %s", u.Currency)
	}
	if _, ok := rs.Document(remote.UserPath("alice")); !ok {
		t.Error("Expected user root document to be mirrored")
	}
}
