package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Debt struct {
	ID               string          `json:"id"`
	OwnerID          string          `json:"ownerId"`
	Direction        string          `json:"direction"`
	CounterpartyName string          `json:"counterpartyName"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	RemainingAmount  decimal.Decimal `json:"remainingAmount"`
	DueDate          *time.Time      `json:"dueDate,omitempty"`
	Notes            string          `json:"notes"`
	IsPaid           bool            `json:"isPaid"`
	CreatedAt        time.Time       `json:"createdAt"`
}
