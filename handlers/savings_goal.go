package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

type savingsGoalInput struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      *time.Time      `json:"deadline"`
	Icon          string          `json:"icon"`
	Color         string          `json:"color"`
}

func (in savingsGoalInput) validate() error {
	if in.Name == "" {
		return errors.New("name is required")
	}
	if !in.TargetAmount.IsPositive() {
		return errors.New("targetAmount must be greater than zero")
	}
	if in.CurrentAmount.IsNegative() {
		return errors.New("currentAmount cannot be negative")
	}
	return nil
}

func (in savingsGoalInput) apply(g *models.SavingsGoal) {
	g.Name = in.Name
	g.TargetAmount = in.TargetAmount
	g.CurrentAmount = in.CurrentAmount
	g.Deadline = in.Deadline
	g.Icon = in.Icon
	g.Color = in.Color
}

// savingsGoalView adds the derived progress fields
type savingsGoalView struct {
	models.SavingsGoal
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
}

func viewSavingsGoal(g models.SavingsGoal) savingsGoalView {
	return savingsGoalView{SavingsGoal: g, Progress: g.Progress(), Completed: g.Completed()}
}

func (h *Handler) ownedSavingsGoal(w http.ResponseWriter, r *http.Request, ownerID string) (*models.SavingsGoal, bool) {
	g, err := h.Repos.SavingsGoals.Get(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if g == nil || g.OwnerID != ownerID {
		http.Error(w, "Savings goal not found", http.StatusNotFound)
		return nil, false
	}
	return g, true
}

func (h *Handler) GetSavingsGoals(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	incomplete := boolParam(r, "incomplete")

	goals, err := snapshot(r, func(ctx context.Context) (<-chan []models.SavingsGoal, error) {
		if incomplete {
			return h.Repos.SavingsGoals.ListIncomplete(ctx, ownerID)
		}
		return h.Repos.SavingsGoals.List(ctx, ownerID)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]savingsGoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, viewSavingsGoal(g))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) GetSavingsGoal(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if g, ok := h.ownedSavingsGoal(w, r, ownerID); ok {
		writeJSON(w, http.StatusOK, viewSavingsGoal(*g))
	}
}

func (h *Handler) AddSavingsGoal(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var in savingsGoalInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g := models.SavingsGoal{OwnerID: ownerID}
	in.apply(&g)
	saved, err := h.Repos.SavingsGoals.Add(r.Context(), g)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewSavingsGoal(saved))
}

func (h *Handler) UpdateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	existing, ok := h.ownedSavingsGoal(w, r, ownerID)
	if !ok {
		return
	}

	var in savingsGoalInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g := *existing
	in.apply(&g)
	saved, err := h.Repos.SavingsGoals.Update(r.Context(), g)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewSavingsGoal(saved))
}

func (h *Handler) DeleteSavingsGoal(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	g, ok := h.ownedSavingsGoal(w, r, ownerID)
	if !ok {
		return
	}

	if err := h.Repos.SavingsGoals.Delete(r.Context(), g.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
