package repository

import (
	"context"
	"time"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

type UserRepository struct {
	store  *store.UserStore
	mirror mirror
	now    func() time.Time
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	return r.store.Get(ctx, id)
}

// Save refreshes the local profile cache and mirrors it to users/{id}
func (r *UserRepository) Save(ctx context.Context, u models.User) (models.User, error) {
	if u.Currency == "" {
		u.Currency = models.DefaultCurrency
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.now()
	}
	if err := r.store.Upsert(ctx, u); err != nil {
		return u, err
	}

	// The first write wins for createdAt
	if stored, err := r.store.Get(ctx, u.ID); err == nil && stored != nil {
		u.CreatedAt = stored.CreatedAt
	}
	r.mirror.push(ctx, u.ID, u.ID, userDocument(u))
	return u, nil
}

// IDs lists every known user
func (r *UserRepository) IDs(ctx context.Context) ([]string, error) {
	return r.store.IDs(ctx)
}
