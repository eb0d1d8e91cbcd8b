package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

type categoryInput struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Kind  string `json:"kind"`
}

func (in categoryInput) validate() error {
	if in.Name == "" {
		return errors.New("name is required")
	}
	if !models.ValidKind(in.Kind) {
		return errors.New("kind must be income or expense")
	}
	return nil
}

// visibleCategory loads the category in the path if the caller can see it:
// their own categories and every default
func (h *Handler) visibleCategory(w http.ResponseWriter, r *http.Request, ownerID string) (*models.Category, bool) {
	c, err := h.Repos.Categories.Get(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if c == nil || (!c.IsDefault && c.OwnerID != ownerID) {
		http.Error(w, "Category not found", http.StatusNotFound)
		return nil, false
	}
	return c, true
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	kind := r.URL.Query().Get("kind")
	if kind != "" && !models.ValidKind(kind) {
		http.Error(w, "Invalid kind "+kind, http.StatusBadRequest)
		return
	}

	categories, err := snapshot(r, func(ctx context.Context) (<-chan []models.Category, error) {
		return h.Repos.Categories.ListByKind(ctx, ownerID, kind)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	if c, ok := h.visibleCategory(w, r, ownerID); ok {
		writeJSON(w, http.StatusOK, c)
	}
}

func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var in categoryInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.Repos.Categories.Add(r.Context(), models.Category{
		Name:    in.Name,
		Icon:    in.Icon,
		Color:   in.Color,
		Kind:    in.Kind,
		OwnerID: ownerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	existing, ok := h.visibleCategory(w, r, ownerID)
	if !ok {
		return
	}
	if existing.IsDefault {
		http.Error(w, "default categories cannot be changed", http.StatusBadRequest)
		return
	}

	var in categoryInput
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := *existing
	c.Name, c.Icon, c.Color, c.Kind = in.Name, in.Icon, in.Color, in.Kind
	saved, err := h.Repos.Categories.Update(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	c, ok := h.visibleCategory(w, r, ownerID)
	if !ok {
		return
	}

	if err := h.Repos.Categories.Delete(r.Context(), c.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// InitializeDefaultCategories seeds the shared defaults if nothing is visible yet
func (h *Handler) InitializeDefaultCategories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	created, err := h.Repos.Categories.InitializeDefaults(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"created": created})
}

