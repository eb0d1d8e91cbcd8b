package repository

import (
	"context"
	"time"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

type RecurringRepository struct {
	store        *store.RecurringStore
	mirror       mirror
	transactions *TransactionRepository
}

func (r *RecurringRepository) List(ctx context.Context, ownerID string) (<-chan []models.RecurringTransaction, error) {
	return r.store.Watch(ctx, ownerID, false)
}

func (r *RecurringRepository) ListActive(ctx context.Context, ownerID string) (<-chan []models.RecurringTransaction, error) {
	return r.store.Watch(ctx, ownerID, true)
}

func (r *RecurringRepository) Get(ctx context.Context, id string) (*models.RecurringTransaction, error) {
	return r.store.Get(ctx, id)
}

// Due lists the owner's active definitions whose due date has passed
func (r *RecurringRepository) Due(ctx context.Context, ownerID string, now time.Time) ([]models.RecurringTransaction, error) {
	return r.store.Due(ctx, ownerID, now)
}

// Owners lists every owner with at least one definition
func (r *RecurringRepository) Owners(ctx context.Context) ([]string, error) {
	return r.store.Owners(ctx)
}

func (r *RecurringRepository) Add(ctx context.Context, def models.RecurringTransaction) (models.RecurringTransaction, error) {
	def.ID = newID(def.ID)
	if err := r.store.Upsert(ctx, def); err != nil {
		return def, err
	}
	r.mirror.push(ctx, def.OwnerID, def.ID, recurringDocument(def))
	return def, nil
}

// Update saves an edit made against a read whose due date was
// readNextDueAt. It returns store.ErrConflict when a scan advanced the
// definition since that read.
func (r *RecurringRepository) Update(ctx context.Context, def models.RecurringTransaction, readNextDueAt time.Time) (models.RecurringTransaction, error) {
	existing, err := r.store.Get(ctx, def.ID)
	if err != nil {
		return def, err
	}
	if existing == nil {
		return def, store.ErrNotFound
	}
	def.OwnerID = existing.OwnerID

	if err := r.store.Update(ctx, def, readNextDueAt); err != nil {
		return def, err
	}
	r.mirror.push(ctx, def.OwnerID, def.ID, recurringDocument(def))
	return def, nil
}

func (r *RecurringRepository) Delete(ctx context.Context, id string) error {
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

// Advance fires one occurrence of def: the materialized transaction and the
// moved due date are committed together, then both are mirrored. The period
// step is taken on the calendar of loc. It returns nil when another run
// already advanced def past the due date it was read with.
func (r *RecurringRepository) Advance(ctx context.Context, def models.RecurringTransaction, now time.Time, loc *time.Location) (*models.Transaction, error) {
	if loc == nil {
		loc = time.UTC
	}
	occurrence := def.Materialize(newID(""), now)
	next := def.Period.Next(def.NextDueAt.In(loc))

	advanced, err := r.store.Advance(ctx, def, occurrence, next)
	if err != nil {
		return nil, err
	}
	if !advanced {
		return nil, nil
	}

	def.NextDueAt = next
	r.mirror.push(ctx, def.OwnerID, def.ID, recurringDocument(def))

	synced, err := r.transactions.sync(ctx, occurrence)
	if err != nil {
		return &occurrence, err
	}
	return &synced, nil
}
