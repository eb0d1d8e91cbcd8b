package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Nyagar-Abraham/Finance-app/handlers"
	"github.com/Nyagar-Abraham/Finance-app/middleware"
)

// Server represents the API server
type Server struct {
	router  *mux.Router
	handler *handlers.Handler
	auth    *middleware.Auth
	cors    *middleware.CORS
}

// NewServer creates a new API server
func NewServer(h *handlers.Handler, auth *middleware.Auth, cors *middleware.CORS) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		handler: h,
		auth:    auth,
		cors:    cors,
	}
	s.RegisterRoutes()
	return s
}

// RegisterRoutes registers all API routes under both / and /api
func (s *Server) RegisterRoutes() {
	s.registerRoutes(s.router)
	s.registerRoutes(s.router.PathPrefix("/api").Subrouter())
}

func (s *Server) registerRoutes(r *mux.Router) {
	h := s.handler

	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	protected := r.PathPrefix("").Subrouter()
	protected.Use(s.auth.Middleware)

	// Fixed paths go before the {id} routes so mux does not treat them as ids
	protected.HandleFunc("/transactions", h.GetTransactions).Methods("GET")
	protected.HandleFunc("/transactions", h.AddTransaction).Methods("POST")
	protected.HandleFunc("/transactions/stream", h.StreamTransactions).Methods("GET")
	protected.HandleFunc("/transactions/resync", h.ResyncTransactions).Methods("POST")
	protected.HandleFunc("/transactions/{id}", h.GetTransaction).Methods("GET")
	protected.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	protected.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	protected.HandleFunc("/transactions/{id}/receipt", h.UploadReceipt).Methods("POST")

	protected.HandleFunc("/categories", h.GetCategories).Methods("GET")
	protected.HandleFunc("/categories", h.AddCategory).Methods("POST")
	protected.HandleFunc("/categories/defaults", h.InitializeDefaultCategories).Methods("POST")
	protected.HandleFunc("/categories/{id}", h.GetCategory).Methods("GET")
	protected.HandleFunc("/categories/{id}", h.UpdateCategory).Methods("PUT")
	protected.HandleFunc("/categories/{id}", h.DeleteCategory).Methods("DELETE")

	protected.HandleFunc("/budgets", h.GetBudgets).Methods("GET")
	protected.HandleFunc("/budgets", h.AddBudget).Methods("POST")
	protected.HandleFunc("/budgets/status", h.GetBudgetStatus).Methods("GET")
	protected.HandleFunc("/budgets/{id}", h.GetBudget).Methods("GET")
	protected.HandleFunc("/budgets/{id}", h.UpdateBudget).Methods("PUT")
	protected.HandleFunc("/budgets/{id}", h.DeleteBudget).Methods("DELETE")

	protected.HandleFunc("/debts", h.GetDebts).Methods("GET")
	protected.HandleFunc("/debts", h.AddDebt).Methods("POST")
	protected.HandleFunc("/debts/{id}", h.GetDebt).Methods("GET")
	protected.HandleFunc("/debts/{id}", h.UpdateDebt).Methods("PUT")
	protected.HandleFunc("/debts/{id}", h.DeleteDebt).Methods("DELETE")

	protected.HandleFunc("/savings-goals", h.GetSavingsGoals).Methods("GET")
	protected.HandleFunc("/savings-goals", h.AddSavingsGoal).Methods("POST")
	protected.HandleFunc("/savings-goals/{id}", h.GetSavingsGoal).Methods("GET")
	protected.HandleFunc("/savings-goals/{id}", h.UpdateSavingsGoal).Methods("PUT")
	protected.HandleFunc("/savings-goals/{id}", h.DeleteSavingsGoal).Methods("DELETE")

	protected.HandleFunc("/recurring", h.GetRecurringTransactions).Methods("GET")
	protected.HandleFunc("/recurring", h.AddRecurringTransaction).Methods("POST")
	protected.HandleFunc("/recurring/run", h.RunRecurring).Methods("POST")
	protected.HandleFunc("/recurring/{id}", h.GetRecurringTransaction).Methods("GET")
	protected.HandleFunc("/recurring/{id}", h.UpdateRecurringTransaction).Methods("PUT")
	protected.HandleFunc("/recurring/{id}", h.DeleteRecurringTransaction).Methods("DELETE")

	protected.HandleFunc("/users/me", h.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/users/sync", h.SyncUser).Methods("POST")

	protected.HandleFunc("/reports/summary", h.GetSummary).Methods("GET")
	protected.HandleFunc("/sync/stats", h.GetSyncStats).Methods("GET")
}

// Handler returns the HTTP handler for the API server. CORS wraps the
// router so preflight requests are answered even without a matching route.
func (s *Server) Handler() http.Handler {
	if s.cors == nil {
		return s.router
	}
	return s.cors.Middleware(s.router)
}
