package repository

import (
	"time"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

// Remote documents carry money as floating point numbers

func optionalTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func transactionDocument(t models.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"id":            t.ID,
		"userId":        t.OwnerID,
		"type":          t.Kind,
		"amount":        t.Amount.InexactFloat64(),
		"categoryId":    t.CategoryID,
		"date":          t.OccurredAt,
		"notes":         t.Notes,
		"paymentMethod": t.PaymentMethod,
		"tags":          t.Tags,
		"receiptUrl":    t.ReceiptRef,
		"createdAt":     t.CreatedAt,
		"updatedAt":     t.UpdatedAt,
	}
}

func categoryDocument(c models.Category) map[string]interface{} {
	return map[string]interface{}{
		"id":        c.ID,
		"name":      c.Name,
		"icon":      c.Icon,
		"color":     c.Color,
		"isDefault": c.IsDefault,
		"userId":    c.OwnerID,
		"type":      c.Kind,
	}
}

func budgetDocument(b models.Budget) map[string]interface{} {
	return map[string]interface{}{
		"id":         b.ID,
		"userId":     b.OwnerID,
		"categoryId": b.CategoryID,
		"amount":     b.Amount.InexactFloat64(),
		"month":      b.Month,
		"year":       b.Year,
		"spent":      b.Spent.InexactFloat64(),
	}
}

func debtDocument(d models.Debt) map[string]interface{} {
	return map[string]interface{}{
		"id":              d.ID,
		"userId":          d.OwnerID,
		"type":            d.Direction,
		"personName":      d.CounterpartyName,
		"amount":          d.TotalAmount.InexactFloat64(),
		"remainingAmount": d.RemainingAmount.InexactFloat64(),
		"dueDate":         optionalTime(d.DueDate),
		"notes":           d.Notes,
		"isPaid":          d.IsPaid,
		"createdAt":       d.CreatedAt,
	}
}

func savingsGoalDocument(g models.SavingsGoal) map[string]interface{} {
	return map[string]interface{}{
		"id":            g.ID,
		"userId":        g.OwnerID,
		"name":          g.Name,
		"targetAmount":  g.TargetAmount.InexactFloat64(),
		"currentAmount": g.CurrentAmount.InexactFloat64(),
		"deadline":      optionalTime(g.Deadline),
		"icon":          g.Icon,
		"color":         g.Color,
		"createdAt":     g.CreatedAt,
	}
}

func recurringDocument(r models.RecurringTransaction) map[string]interface{} {
	return map[string]interface{}{
		"id":            r.ID,
		"userId":        r.OwnerID,
		"type":          r.Kind,
		"amount":        r.Amount.InexactFloat64(),
		"categoryId":    r.CategoryID,
		"notes":         r.Notes,
		"paymentMethod": r.PaymentMethod,
		"frequency":     string(r.Period),
		"nextDate":      r.NextDueAt,
		"isActive":      r.IsActive,
	}
}

func userDocument(u models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":          u.ID,
		"email":       u.Email,
		"displayName": u.DisplayName,
		"photoUrl":    u.PhotoRef,
		"currency":    u.Currency,
		"createdAt":   u.CreatedAt,
	}
}
