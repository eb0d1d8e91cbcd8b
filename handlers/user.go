package handlers

import (
	"log"
	"net/http"

	"github.com/Nyagar-Abraham/Finance-app/models"
)

type userInput struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoRef    string `json:"photoRef"`
	Currency    string `json:"currency"`
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	u, err := h.Repos.Users.Get(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	if u == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// SyncUser refreshes the caller's cached profile after sign-in and seeds the
// default categories on first use. Firebase profile fields win over the
// request body; empty values keep what is cached.
func (h *Handler) SyncUser(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var in userInput
	if r.ContentLength != 0 {
		if !decodeBody(w, r, &in) {
			return
		}
	}

	u := models.User{ID: ownerID}
	existing, err := h.Repos.Users.Get(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing != nil {
		u = *existing
	}
	u.Email = firstNonEmpty(in.Email, u.Email)
	u.DisplayName = firstNonEmpty(in.DisplayName, u.DisplayName)
	u.PhotoRef = firstNonEmpty(in.PhotoRef, u.PhotoRef)
	u.Currency = firstNonEmpty(in.Currency, u.Currency)

	if h.Profiles != nil {
		record, err := h.Profiles.GetUser(r.Context(), ownerID)
		if err != nil {
			log.Printf("Error fetching Firebase profile for %s: %v", ownerID, err)
		} else {
			u.Email = firstNonEmpty(record.Email, u.Email)
			u.DisplayName = firstNonEmpty(record.DisplayName, u.DisplayName)
			u.PhotoRef = firstNonEmpty(record.PhotoURL, u.PhotoRef)
		}
	}

	saved, err := h.Repos.Users.Save(r.Context(), u)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.Repos.Categories.InitializeDefaults(r.Context(), ownerID); err != nil {
		log.Printf("Error seeding default categories for %s: %v", ownerID, err)
	}
	writeJSON(w, http.StatusOK, saved)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
