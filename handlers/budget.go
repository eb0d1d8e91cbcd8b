package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

type budgetInput struct {
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
}

func (in budgetInput) validate() error {
	if in.CategoryID == "" {
		return errors.New("categoryId is required")
	}
	if !in.Amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	if !models.ValidMonth(in.Month) {
		return errors.New("month must be between 1 and 12")
	}
	if in.Year < 1 {
		return errors.New("year is required")
	}
	return nil
}

func (h *Handler) ownedBudget(w http.ResponseWriter, r *http.Request, ownerID string) (*models.Budget, bool) {
	b, err := h.Repos.Budgets.Get(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if b == nil || b.OwnerID != ownerID {
		http.Error(w, "Budget not found", http.StatusNotFound)
		return nil, false
	}
	return b, true
}

// GetBudgets lists budgets, optionally for one month and/or year
func (h *Handler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	month, err := optionalIntParam(r, "month")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	year, err := optionalIntParam(r, "year")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if month != 0 && !models.ValidMonth(month) {
		http.Error(w, "month must be between 1 and 12", http.StatusBadRequest)
		return
	}

	budgets, err := snapshot(r, func(ctx context.Context) (<-chan []models.Budget, error) {
		return h.Repos.Budgets.ListForPeriod(ctx, ownerID, month, year)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, budgets)
}

// GetBudgetStatus evaluates every budget of a month against actual spending
func (h *Handler) GetBudgetStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	month, year, err := h.monthParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	statuses, err := h.Monitor.Evaluate(r.Context(), ownerID, month, year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if b, ok := h.ownedBudget(w, r, ownerID); ok {
		writeJSON(w, http.StatusOK, b)
	}
}

// AddBudget creates the budget for a period, or replaces the amount of the
// one that already exists
func (h *Handler) AddBudget(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var in budgetInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.Repos.Budgets.Add(r.Context(), models.Budget{
		OwnerID:    ownerID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Month:      in.Month,
		Year:       in.Year,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	existing, ok := h.ownedBudget(w, r, ownerID)
	if !ok {
		return
	}

	var in budgetInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b := *existing
	b.CategoryID, b.Amount, b.Month, b.Year = in.CategoryID, in.Amount, in.Month, in.Year
	saved, err := h.Repos.Budgets.Update(r.Context(), b)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	b, ok := h.ownedBudget(w, r, ownerID)
	if !ok {
		return
	}

	if err := h.Repos.Budgets.Delete(r.Context(), b.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
