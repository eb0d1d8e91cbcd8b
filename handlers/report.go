package handlers

import (
	"context"
	"net/http"

	"github.com/Nyagar-Abraham/Finance-app/models"
	"github.com/Nyagar-Abraham/Finance-app/services"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

// GetSummary reports totals for [from, to). Without parameters it covers
// the current month.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	now := h.now().In(h.location())
	from, to := services.MonthRange(int(now.Month()), now.Year(), h.location())
	if t, err := optionalTimeParam(r, "from", h.location()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if t != nil {
		from = *t
	}
	if t, err := optionalTimeParam(r, "to", h.location()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if t != nil {
		to = *t
	}
	if !to.After(from) {
		http.Error(w, "to must be after from", http.StatusBadRequest)
		return
	}

	transactions, err := h.Repos.Transactions.Find(r.Context(), store.TransactionFilter{
		OwnerID: ownerID,
		From:    &from,
		To:      &to,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	summary := services.Summarize(transactions, from, to)

	categories, err := snapshot(r, func(ctx context.Context) (<-chan []models.Category, error) {
		return h.Repos.Categories.List(ctx, ownerID)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	for i := range summary.ByCategory {
		summary.ByCategory[i].CategoryName = names[summary.ByCategory[i].CategoryID]
	}

	writeJSON(w, http.StatusOK, summary)
}

// GetSyncStats exposes the remote mirror counters
func (h *Handler) GetSyncStats(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOwner(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Repos.Stats.Snapshot())
}
