package repository

import (
	"context"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

type BudgetRepository struct {
	store  *store.BudgetStore
	mirror mirror
}

func (r *BudgetRepository) List(ctx context.Context, ownerID string) (<-chan []models.Budget, error) {
	return r.store.Watch(ctx, ownerID, 0, 0)
}

// ListForPeriod streams the owner's budgets for one month
func (r *BudgetRepository) ListForPeriod(ctx context.Context, ownerID string, month, year int) (<-chan []models.Budget, error) {
	return r.store.Watch(ctx, ownerID, month, year)
}

// FindForPeriod is a one-off read of the owner's budgets for one month
func (r *BudgetRepository) FindForPeriod(ctx context.Context, ownerID string, month, year int) ([]models.Budget, error) {
	return r.store.List(ctx, ownerID, month, year)
}

func (r *BudgetRepository) Get(ctx context.Context, id string) (*models.Budget, error) {
	return r.store.Get(ctx, id)
}

func (r *BudgetRepository) GetForPeriod(ctx context.Context, ownerID, categoryID string, month, year int) (*models.Budget, error) {
	return r.store.GetForPeriod(ctx, ownerID, categoryID, month, year)
}

// Add creates the budget for (owner, category, month, year), or updates the
// one that already exists for that period. The stored budget is returned.
func (r *BudgetRepository) Add(ctx context.Context, b models.Budget) (models.Budget, error) {
	b.ID = newID(b.ID)
	stored, err := r.store.Upsert(ctx, b)
	if err != nil {
		return b, err
	}
	r.mirror.push(ctx, stored.OwnerID, stored.ID, budgetDocument(stored))
	return stored, nil
}

func (r *BudgetRepository) Update(ctx context.Context, b models.Budget) (models.Budget, error) {
	existing, err := r.store.Get(ctx, b.ID)
	if err != nil {
		return b, err
	}
	if existing == nil {
		return b, store.ErrNotFound
	}
	b.OwnerID = existing.OwnerID

	if err := r.store.Update(ctx, b); err != nil {
		return b, err
	}
	r.mirror.push(ctx, b.OwnerID, b.ID, budgetDocument(b))
	return b, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return store.ErrNotFound
	}

	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	r.mirror.remove(ctx, existing.OwnerID, id)
	return nil
}
