package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

type recurringInput struct {
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    string          `json:"categoryId"`
	Notes         string          `json:"notes"`
	PaymentMethod string          `json:"paymentMethod"`
	Period        models.Period   `json:"period"`
	NextDueAt     time.Time       `json:"nextDueAt"`
	IsActive      *bool           `json:"isActive"`
}

func (in recurringInput) validate() error {
	if !models.ValidKind(in.Kind) {
		return errors.New("kind must be income or expense")
	}
	if !in.Amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	if in.CategoryID == "" {
		return errors.New("categoryId is required")
	}
	if !in.Period.Valid() {
		return fmt.Errorf("period must be daily, weekly, monthly or yearly, got %q", in.Period)
	}
	if in.NextDueAt.IsZero() {
		return errors.New("nextDueAt is required")
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return fmt.Errorf("unknown payment method %q", in.PaymentMethod)
	}
	return nil
}

func (in recurringInput) apply(def *models.RecurringTransaction) {
	def.Kind = in.Kind
	def.Amount = in.Amount
	def.CategoryID = in.CategoryID
	def.Notes = in.Notes
	def.PaymentMethod = in.PaymentMethod
	def.Period = in.Period
	def.NextDueAt = in.NextDueAt
	def.IsActive = true
	if in.IsActive != nil {
		def.IsActive = *in.IsActive
	}
}

func (h *Handler) ownedRecurring(w http.ResponseWriter, r *http.Request, ownerID string) (*models.RecurringTransaction, bool) {
	def, err := h.Repos.Recurring.Get(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if def == nil || def.OwnerID != ownerID {
		http.Error(w, "Recurring transaction not found", http.StatusNotFound)
		return nil, false
	}
	return def, true
}

func (h *Handler) GetRecurringTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	active := boolParam(r, "active")

	list, err := snapshot(r, func(ctx context.Context) (<-chan []models.RecurringTransaction, error) {
		if active {
			return h.Repos.Recurring.ListActive(ctx, ownerID)
		}
		return h.Repos.Recurring.List(ctx, ownerID)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetRecurringTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if def, ok := h.ownedRecurring(w, r, ownerID); ok {
		writeJSON(w, http.StatusOK, def)
	}
}

func (h *Handler) AddRecurringTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var in recurringInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	def := models.RecurringTransaction{OwnerID: ownerID}
	in.apply(&def)
	saved, err := h.Repos.Recurring.Add(r.Context(), def)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) UpdateRecurringTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	existing, ok := h.ownedRecurring(w, r, ownerID)
	if !ok {
		return
	}

	var in recurringInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	def := *existing
	in.apply(&def)
	saved, err := h.Repos.Recurring.Update(r.Context(), def, existing.NextDueAt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) DeleteRecurringTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	def, ok := h.ownedRecurring(w, r, ownerID)
	if !ok {
		return
	}

	if err := h.Repos.Recurring.Delete(r.Context(), def.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RunRecurring scans the caller's definitions now instead of waiting for
// the next scheduled run
func (h *Handler) RunRecurring(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	created, err := h.Scheduler.ScanOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"created": created})
}
