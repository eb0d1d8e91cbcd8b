package repository

import (
	"context"
	"log"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

const (
	defaultExpenseIcon  = "shopping_cart"
	defaultExpenseColor = "#FF6B35"
	defaultIncomeIcon   = "account_balance_wallet"
	defaultIncomeColor  = "#10B981"
)

type CategoryRepository struct {
	store  *store.CategoryStore
	mirror mirror
}

// List streams the owner's categories together with the shared defaults
func (r *CategoryRepository) List(ctx context.Context, ownerID string) (<-chan []models.Category, error) {
	return r.store.Watch(ctx, ownerID, "")
}

func (r *CategoryRepository) ListByKind(ctx context.Context, ownerID, kind string) (<-chan []models.Category, error) {
	return r.store.Watch(ctx, ownerID, kind)
}

func (r *CategoryRepository) Get(ctx context.Context, id string) (*models.Category, error) {
	return r.store.Get(ctx, id)
}

// Add creates an owner category. Defaults are only created by
// InitializeDefaults.
func (r *CategoryRepository) Add(ctx context.Context, c models.Category) (models.Category, error) {
	c.ID = newID(c.ID)
	c.IsDefault = false
	if err := r.store.Upsert(ctx, c); err != nil {
		return c, err
	}
	r.mirror.push(ctx, c.OwnerID, c.ID, categoryDocument(c))
	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c models.Category) (models.Category, error) {
	existing, err := r.store.Get(ctx, c.ID)
	if err != nil {
		return c, err
	}
	if existing == nil {
		return c, store.ErrNotFound
	}
	c.OwnerID = existing.OwnerID
	c.IsDefault = existing.IsDefault

	if err := r.store.Update(ctx, c); err != nil {
		return c, err
	}
	r.mirror.push(ctx, c.OwnerID, c.ID, categoryDocument(c))
	return c, nil
}

// Delete removes an owner category. Default categories are refused with
// ErrDefaultCategory.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return store.ErrNotFound
	}
	if existing.IsDefault {
		return ErrDefaultCategory
	}

	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	r.mirror.remove(ctx, existing.OwnerID, id)
	return nil
}

// InitializeDefaults seeds the default expense and income categories if the
// owner sees none yet. Calling it again, or concurrently, never duplicates
// them. It returns the number of categories created.
func (r *CategoryRepository) InitializeDefaults(ctx context.Context, ownerID string) (int, error) {
	var defaults []models.Category
	for _, name := range models.DefaultExpenseCategories {
		defaults = append(defaults, models.Category{
			ID:    newID(""),
			Name:  name,
			Icon:  defaultExpenseIcon,
			Color: defaultExpenseColor,
			Kind:  models.KindExpense,
		})
	}
	for _, name := range models.DefaultIncomeCategories {
		defaults = append(defaults, models.Category{
			ID:    newID(""),
			Name:  name,
			Icon:  defaultIncomeIcon,
			Color: defaultIncomeColor,
			Kind:  models.KindIncome,
		})
	}

	inserted, err := r.store.SeedDefaults(ctx, ownerID, defaults)
	if err != nil {
		return 0, err
	}
	for _, c := range inserted {
		r.mirror.push(ctx, c.OwnerID, c.ID, categoryDocument(c))
	}
	if len(inserted) > 0 {
		log.Printf("Seeded %d default categories for %s", len(inserted), ownerID)
	}
	return len(inserted), nil
}
