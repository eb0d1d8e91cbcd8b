package models

import "github.com/shopspring/decimal"

// Budget caps the spending of one category for one calendar month.
// Spent is a denormalized cache and is never authoritative.
type Budget struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"ownerId"`
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Spent      decimal.Decimal `json:"spent"`
}

// ValidMonth reports whether m is 1-12
func ValidMonth(m int) bool {
	return m >= 1 && m <= 12
}
