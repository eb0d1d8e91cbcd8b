package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SyncStatus tracks whether the local copy of a record reached the remote mirror
type SyncStatus string

const (
	SyncSynced  SyncStatus = "SYNCED"
	SyncPending SyncStatus = "PENDING"
	SyncFailed  SyncStatus = "FAILED"
)

type Transaction struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"ownerId"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    string          `json:"categoryId"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Tags          []string        `json:"tags"`
	ReceiptRef    string          `json:"receiptRef,omitempty"`
	SyncStatus    SyncStatus      `json:"syncStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// IsExpense reports whether the transaction counts against budgets
func (t Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}
