package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/Nyagar-Abraham/Finance-app/database"
	"github.com/Nyagar-Abraham/Finance-app/middleware"
	"github.com/Nyagar-Abraham/Finance-app/notify"
	"github.com/Nyagar-Abraham/Finance-app/remote"
	"github.com/Nyagar-Abraham/Finance-app/repository"
	"github.com/Nyagar-Abraham/Finance-app/services"
	"github.com/Nyagar-Abraham/Finance-app/store"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	h      *Handler
	remote *remote.MemoryStore
	blobs  *remote.MemoryBlobStore
	alerts *notify.Recorder
}

// setupTestEnv wires a Handler over an in-memory database and fakes
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	now := func() time.Time { return testNow }
	rs := remote.NewMemoryStore()
	blobs := remote.NewMemoryBlobStore()
	alerts := &notify.Recorder{}

	repos := repository.New(store.New(db), rs, now)
	h := &Handler{
		Repos:     repos,
		Scheduler: services.NewRecurringScheduler(repos, time.Hour, 0, time.UTC, now),
		Monitor:   services.NewBudgetMonitor(repos, alerts, services.DefaultWarningThreshold, time.UTC),
		Blobs:     blobs,
		Location:  time.UTC,
		Now:       now,
	}
	return &testEnv{h: h, remote: rs, blobs: blobs, alerts: alerts}
}

// newRequest builds a request authenticated as ownerID. id fills the {id}
// route variable when set.
func newRequest(t *testing.T, method, target, ownerID, id string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if ownerID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), ownerID))
	}
	if id != "" {
		req = mux.SetURLVars(req, map[string]string{"id": id})
	}
	return req
}

func serve(fn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	fn(w, req)
	return w
}

func call(t *testing.T, fn http.HandlerFunc, method, target, ownerID, id string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return serve(fn, newRequest(t, method, target, ownerID, id, body))
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
