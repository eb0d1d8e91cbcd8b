// Package remote mirrors local records to a document store. The mirror is
// write-only: nothing is ever read back from it.
package remote

import (
	"context"
	"errors"
	"path"
)

// ErrDisabled is returned by every call of a disabled remote
var ErrDisabled = errors.New("remote store disabled")

// Collections under users/{ownerId}
const (
	CollectionTransactions = "transactions"
	CollectionCategories   = "categories"
	CollectionBudgets      = "budgets"
	CollectionRecurring    = "recurringTransactions"
	CollectionDebts        = "debts"
	CollectionSavingsGoals = "savingsGoals"
)

// Store writes and deletes documents by slash separated path
type Store interface {
	SetDocument(ctx context.Context, path string, fields map[string]interface{}) error
	DeleteDocument(ctx context.Context, path string) error
}

// UserPath is the root document of an owner
func UserPath(ownerID string) string {
	return path.Join("users", ownerID)
}

// DocumentPath is users/{ownerId}/{collection}/{id}
func DocumentPath(ownerID, collection, id string) string {
	return path.Join("users", ownerID, collection, id)
}

// Disabled fails every call with ErrDisabled
type Disabled struct{}

func (Disabled) SetDocument(context.Context, string, map[string]interface{}) error {
	return ErrDisabled
}

func (Disabled) DeleteDocument(context.Context, string) error {
	return ErrDisabled
}
