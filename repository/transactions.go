package repository

import (
	"context"
	"log"
	"time"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

type TransactionRepository struct {
	store  *store.TransactionStore
	mirror mirror
	now    func() time.Time
}

// List streams the owner's transactions, newest first
func (r *TransactionRepository) List(ctx context.Context, ownerID string) (<-chan []models.Transaction, error) {
	return r.store.Watch(ctx, store.TransactionFilter{OwnerID: ownerID})
}

// Watch streams the transactions matching f
func (r *TransactionRepository) Watch(ctx context.Context, f store.TransactionFilter) (<-chan []models.Transaction, error) {
	return r.store.Watch(ctx, f)
}

// Find is a one-off read of the transactions matching f
func (r *TransactionRepository) Find(ctx context.Context, f store.TransactionFilter) ([]models.Transaction, error) {
	return r.store.List(ctx, f)
}

func (r *TransactionRepository) Get(ctx context.Context, id string) (*models.Transaction, error) {
	return r.store.Get(ctx, id)
}

// Add stores t as PENDING and then mirrors it. The returned transaction
// carries the final sync status.
func (r *TransactionRepository) Add(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	now := r.now()
	t.ID = newID(t.ID)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.UpdatedAt = now
	t.SyncStatus = models.SyncPending

	if err := r.store.Upsert(ctx, t); err != nil {
		return t, err
	}
	return r.sync(ctx, t)
}

// Update rewrites an existing transaction, marks it PENDING again and
// mirrors it. Owner and creation time are kept from the stored row.
func (r *TransactionRepository) Update(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	existing, err := r.store.Get(ctx, t.ID)
	if err != nil {
		return t, err
	}
	if existing == nil {
		return t, store.ErrNotFound
	}

	t.OwnerID = existing.OwnerID
	t.CreatedAt = existing.CreatedAt
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.UpdatedAt = r.now()
	t.SyncStatus = models.SyncPending

	if err := r.store.Update(ctx, t); err != nil {
		return t, err
	}
	return r.sync(ctx, t)
}

// sync pushes a stored PENDING transaction and records SYNCED or FAILED.
// If ctx is already done the push is skipped and the row stays PENDING.
func (r *TransactionRepository) sync(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if ctx.Err() != nil {
		return t, nil
	}

	status := models.SyncSynced
	if err := r.mirror.push(ctx, t.OwnerID, t.ID, transactionDocument(t)); err != nil {
		status = models.SyncFailed
	}

	// The outcome is recorded even if the caller went away during the push
	changed, err := r.store.SetSyncStatus(context.WithoutCancel(ctx), t.ID, t.UpdatedAt, status)
	if err != nil {
		return t, err
	}
	if changed {
		t.SyncStatus = status
	} else {
		log.Printf("Transaction %s changed during sync, keeping newer status", t.ID)
	}
	return t, nil
}

// Delete removes the transaction locally and then from the mirror. The
// local delete stands even if the remote one fails.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
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

// Resync pushes every PENDING or FAILED transaction of the owner again and
// returns how many ended up SYNCED. It only runs when a caller asks for it.
func (r *TransactionRepository) Resync(ctx context.Context, ownerID string) (int, error) {
	unsynced, err := r.store.List(ctx, store.TransactionFilter{
		OwnerID:  ownerID,
		Statuses: []models.SyncStatus{models.SyncPending, models.SyncFailed},
	})
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, t := range unsynced {
		if ctx.Err() != nil {
			break
		}
		result, err := r.sync(ctx, t)
		if err != nil {
			return synced, err
		}
		if result.SyncStatus == models.SyncSynced {
			synced++
		}
	}

	log.Printf("Resynced %d of %d transactions for %s", synced, len(unsynced), ownerID)
	return synced, nil
}
