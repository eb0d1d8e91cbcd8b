package repository

import (
	"context"
	"time"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

type DebtRepository struct {
	store  *store.DebtStore
	mirror mirror
	now    func() time.Time
}

func (r *DebtRepository) List(ctx context.Context, ownerID string) (<-chan []models.Debt, error) {
	return r.store.Watch(ctx, store.DebtFilter{OwnerID: ownerID})
}

// Watch streams debts matching f, e.g. only unpaid ones or one direction
func (r *DebtRepository) Watch(ctx context.Context, f store.DebtFilter) (<-chan []models.Debt, error) {
	return r.store.Watch(ctx, f)
}

func (r *DebtRepository) Get(ctx context.Context, id string) (*models.Debt, error) {
	return r.store.Get(ctx, id)
}

func (r *DebtRepository) Add(ctx context.Context, d models.Debt) (models.Debt, error) {
	d.ID = newID(d.ID)
	if d.CreatedAt.IsZero() {
		d.CreatedAt = r.now()
	}
	if err := r.store.Upsert(ctx, d); err != nil {
		return d, err
	}
	r.mirror.push(ctx, d.OwnerID, d.ID, debtDocument(d))
	return d, nil
}

func (r *DebtRepository) Update(ctx context.Context, d models.Debt) (models.Debt, error) {
	existing, err := r.store.Get(ctx, d.ID)
	if err != nil {
		return d, err
	}
	if existing == nil {
		return d, store.ErrNotFound
	}
	d.OwnerID = existing.OwnerID
	d.CreatedAt = existing.CreatedAt

	if err := r.store.Update(ctx, d); err != nil {
		return d, err
	}
	r.mirror.push(ctx, d.OwnerID, d.ID, debtDocument(d))
	return d, nil
}

func (r *DebtRepository) Delete(ctx context.Context, id string) error {
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
