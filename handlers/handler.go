package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gorilla/mux"

	"github.com/Nyagar-Abraham/Finance-app/middleware"
	"github.com/Nyagar-Abraham/Finance-app/remote"
	"github.com/Nyagar-Abraham/Finance-app/repository"
	"github.com/Nyagar-Abraham/Finance-app/services"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

// ProfileSource looks up a signed-in user's profile. *auth.Client satisfies it.
type ProfileSource interface {
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

// Handler serves the JSON API. Validation happens here, before anything
// reaches a repository.
type Handler struct {
	Repos     *repository.Repositories
	Scheduler *services.RecurringScheduler
	Monitor   *services.BudgetMonitor
	Blobs     remote.BlobStore
	// Profiles is nil when Firebase auth is off
	Profiles ProfileSource
	Location *time.Location
	Now      func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) location() *time.Location {
	if h.Location != nil {
		return h.Location
	}
	return time.UTC
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// requireOwner returns the authenticated user id or writes a 401
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID := middleware.GetUserIDFromContext(r)
	if ownerID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return "", false
	}
	return ownerID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps repository and store errors to HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, store.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, repository.ErrDefaultCategory):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Error handling request: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// snapshot reads the first emission of a live query
func snapshot[T any](r *http.Request, list func(ctx context.Context) (<-chan []T, error)) ([]T, error) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ch, err := list(ctx)
	if err != nil {
		return nil, err
	}
	select {
	case items, ok := <-ch:
		if !ok {
			return nil, ctx.Err()
		}
		return items, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

// parseTime accepts RFC 3339 timestamps and plain dates
func parseTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return t, nil
}

func optionalTimeParam(r *http.Request, name string, loc *time.Location) (*time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	t, err := parseTime(value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalIntParam(r *http.Request, name string) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return n, nil
}

func boolParam(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

// monthParams reads month and year, defaulting to the current month
func (h *Handler) monthParams(r *http.Request) (int, int, error) {
	now := h.now().In(h.location())
	month, err := optionalIntParam(r, "month")
	if err != nil {
		return 0, 0, err
	}
	year, err := optionalIntParam(r, "year")
	if err != nil {
		return 0, 0, err
	}
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12")
	}
	return month, year, nil
}
