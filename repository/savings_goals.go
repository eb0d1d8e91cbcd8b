package repository

import (
	"context"
	"time"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

type SavingsGoalRepository struct {
	store  *store.SavingsGoalStore
	mirror mirror
	now    func() time.Time
}

func (r *SavingsGoalRepository) List(ctx context.Context, ownerID string) (<-chan []models.SavingsGoal, error) {
	return r.store.Watch(ctx, ownerID, false)
}

// ListIncomplete streams the goals that have not reached their target
func (r *SavingsGoalRepository) ListIncomplete(ctx context.Context, ownerID string) (<-chan []models.SavingsGoal, error) {
	return r.store.Watch(ctx, ownerID, true)
}

func (r *SavingsGoalRepository) Get(ctx context.Context, id string) (*models.SavingsGoal, error) {
	return r.store.Get(ctx, id)
}

func (r *SavingsGoalRepository) Add(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error) {
	g.ID = newID(g.ID)
	if g.CreatedAt.IsZero() {
		g.CreatedAt = r.now()
	}
	if err := r.store.Upsert(ctx, g); err != nil {
		return g, err
	}
	r.mirror.push(ctx, g.OwnerID, g.ID, savingsGoalDocument(g))
	return g, nil
}

func (r *SavingsGoalRepository) Update(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error) {
	existing, err := r.store.Get(ctx, g.ID)
	if err != nil {
		return g, err
	}
	if existing == nil {
		return g, store.ErrNotFound
	}
	g.OwnerID = existing.OwnerID
	g.CreatedAt = existing.CreatedAt

	if err := r.store.Update(ctx, g); err != nil {
		return g, err
	}
	r.mirror.push(ctx, g.OwnerID, g.ID, savingsGoalDocument(g))
	return g, nil
}

func (r *SavingsGoalRepository) Delete(ctx context.Context, id string) error {
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
