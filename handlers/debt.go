package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

type debtInput struct {
	Direction        string           `json:"direction"`
	CounterpartyName string           `json:"counterpartyName"`
	TotalAmount      decimal.Decimal  `json:"totalAmount"`
	RemainingAmount  *decimal.Decimal `json:"remainingAmount"`
	DueDate          *time.Time       `json:"dueDate"`
	Notes            string           `json:"notes"`
	IsPaid           bool             `json:"isPaid"`
}

func (in debtInput) validate() error {
	if !models.ValidDebtDirection(in.Direction) {
		return errors.New("direction must be owed or lent")
	}
	if in.CounterpartyName == "" {
		return errors.New("counterpartyName is required")
	}
	if !in.TotalAmount.IsPositive() {
		return errors.New("totalAmount must be greater than zero")
	}
	if in.RemainingAmount != nil && in.RemainingAmount.IsNegative() {
		return errors.New("remainingAmount cannot be negative")
	}
	return nil
}

func (in debtInput) apply(d *models.Debt) {
	d.Direction = in.Direction
	d.CounterpartyName = in.CounterpartyName
	d.TotalAmount = in.TotalAmount
	d.RemainingAmount = in.TotalAmount
	if in.RemainingAmount != nil {
		d.RemainingAmount = *in.RemainingAmount
	}
	d.DueDate = in.DueDate
	d.Notes = in.Notes
	d.IsPaid = in.IsPaid
}

func (h *Handler) ownedDebt(w http.ResponseWriter, r *http.Request, ownerID string) (*models.Debt, bool) {
	d, err := h.Repos.Debts.Get(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if d == nil || d.OwnerID != ownerID {
		http.Error(w, "Debt not found", http.StatusNotFound)
		return nil, false
	}
	return d, true
}

func (h *Handler) GetDebts(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	filter := store.DebtFilter{
		OwnerID:    ownerID,
		UnpaidOnly: boolParam(r, "unpaid"),
		Direction:  r.URL.Query().Get("direction"),
	}
	if filter.Direction != "" && !models.ValidDebtDirection(filter.Direction) {
		http.Error(w, "Invalid direction "+filter.Direction, http.StatusBadRequest)
		return
	}

	debts, err := snapshot(r, func(ctx context.Context) (<-chan []models.Debt, error) {
		return h.Repos.Debts.Watch(ctx, filter)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, debts)
}

func (h *Handler) GetDebt(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if d, ok := h.ownedDebt(w, r, ownerID); ok {
		writeJSON(w, http.StatusOK, d)
	}
}

func (h *Handler) AddDebt(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var in debtInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d := models.Debt{OwnerID: ownerID}
	in.apply(&d)
	saved, err := h.Repos.Debts.Add(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) UpdateDebt(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	existing, ok := h.ownedDebt(w, r, ownerID)
	if !ok {
		return
	}

	var in debtInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	d := *existing
	in.apply(&d)
	saved, err := h.Repos.Debts.Update(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	d, ok := h.ownedDebt(w, r, ownerID)
	if !ok {
		return
	}

	if err := h.Repos.Debts.Delete(r.Context(), d.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
