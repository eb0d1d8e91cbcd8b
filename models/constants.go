package models

// Transaction kinds
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// Payment methods
const (
	PaymentCash          = "cash"
	PaymentCard          = "card"
	PaymentBankTransfer  = "bank_transfer"
	PaymentDigitalWallet = "digital_wallet"
)

// Debt directions
const (
	DebtOwed = "owed" // I owe someone
	DebtLent = "lent" // someone owes me
)

// DefaultCurrency is assigned to users that never picked one
const DefaultCurrency = "USD"

// DefaultExpenseCategories are seeded once and shared by every owner
var DefaultExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Others",
}

// DefaultIncomeCategories are seeded alongside the expense defaults
var DefaultIncomeCategories = []string{
	"Salary",
	"Business",
	"Investments",
	"Others",
}

// ValidKind reports whether k is a transaction/category kind
func ValidKind(k string) bool {
	return k == KindIncome || k == KindExpense
}

// ValidPaymentMethod accepts the known methods and the empty string
func ValidPaymentMethod(m string) bool {
	switch m {
	case "", PaymentCash, PaymentCard, PaymentBankTransfer, PaymentDigitalWallet:
		return true
	}
	return false
}

// ValidDebtDirection reports whether d is owed or lent
func ValidDebtDirection(d string) bool {
	return d == DebtOwed || d == DebtLent
}
